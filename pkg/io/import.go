package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// ReadJSON decodes a JSON document from r, normalizes and validates it.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*document.Document, error) {
	var doc document.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode JSON")
	}
	return finish(&doc)
}

// UnmarshalJSON decodes a JSON document from data.
func UnmarshalJSON(data []byte) (*document.Document, error) {
	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode JSON")
	}
	return finish(&doc)
}

// ReadYAML decodes a YAML document from r, normalizes and validates it.
// ReadYAML does not close r.
func ReadYAML(r io.Reader) (*document.Document, error) {
	var doc document.Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode YAML")
	}
	return finish(&doc)
}

// Decode reads a document from r using codec.
func Decode(codec Codec, r io.Reader) (*document.Document, error) {
	switch codec {
	case CodecJSON:
		return ReadJSON(r)
	case CodecYAML:
		return ReadYAML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown codec %q", codec)
}

// ImportFile reads the document at path, choosing the codec by extension.
func ImportFile(path string) (*document.Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	codec, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Decode(codec, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func finish(doc *document.Document) (*document.Document, error) {
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}
