package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// Codec names a document encoding.
type Codec string

const (
	CodecJSON Codec = "json"
	CodecYAML Codec = "yaml"
)

// CodecFor returns the codec matching a file extension.
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return CodecJSON, nil
	case ".yaml", ".yml":
		return CodecYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
}

// MarshalJSON returns the compact JSON encoding of doc.
func MarshalJSON(doc *document.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc *document.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes doc as YAML and writes it to w.
func WriteYAML(doc *document.Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Encode writes doc to w using codec.
func Encode(doc *document.Document, codec Codec, w io.Writer) error {
	switch codec {
	case CodecJSON:
		return WriteJSON(doc, w)
	case CodecYAML:
		return WriteYAML(doc, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown codec %q", codec)
}

// ExportFile writes doc to path, choosing the codec by extension. The file
// is written to a temporary sibling first and renamed into place.
func ExportFile(doc *document.Document, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	codec, err := CodecFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(doc, codec, &buf); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
