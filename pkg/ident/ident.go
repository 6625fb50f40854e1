// Package ident generates identifiers for templates, sections and components.
//
// Identifiers only need to be unique within one document. Three strategies
// are provided:
//   - [UUID]: random v4 UUIDs, the default
//   - [ULID]: lexically sortable ULIDs, handy when stores list by id
//   - [Sequence]: "prefix-1", "prefix-2", ... for deterministic tests
//
// All generators are safe for concurrent use.
package ident

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// Strategy names accepted by [ByName] and the config file.
const (
	StrategyUUID     = "uuid"
	StrategyULID     = "ulid"
	StrategySequence = "sequence"
)

// Generator produces fresh identifiers.
type Generator interface {
	NewID() string
}

// UUID generates random version 4 UUIDs.
type UUID struct{}

// NewID returns a new UUID string.
func (UUID) NewID() string { return uuid.New().String() }

// ULID generates monotonic ULIDs.
type ULID struct{}

// NewID returns a new ULID string.
func (ULID) NewID() string { return ulid.Make().String() }

// Sequence generates "<prefix>-<n>" identifiers starting at 1.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence creates a sequence generator. An empty prefix defaults to "id".
func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = "id"
	}
	return &Sequence{prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	return s.prefix + "-" + strconv.FormatUint(s.n.Add(1), 10)
}

// Default is the generator used when none is configured.
var Default Generator = UUID{}

// ByName returns the generator for a strategy name (case-insensitive).
// An empty name selects [Default].
func ByName(name string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyUUID:
		return UUID{}, nil
	case StrategyULID:
		return ULID{}, nil
	case StrategySequence:
		return NewSequence(""), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown id strategy: %q (want uuid, ulid or sequence)", name)
}
