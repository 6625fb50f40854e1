package document

import (
	"bytes"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Style is an ordered map of CSS-like property names to values.
//
// Keys keep their insertion order; setting an existing key updates the value
// in place without moving it. The zero value is an empty style ready to use.
// Copies of a Style share storage, use [Style.Clone] for an independent one.
type Style struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewStyle builds a style from alternating key/value pairs.
// A trailing key without a value is ignored.
func NewStyle(pairs ...string) Style {
	var s Style
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return s
}

// Set adds or updates a property.
func (s *Style) Set(key, value string) {
	if s.m == nil {
		s.m = orderedmap.New[string, string]()
	}
	s.m.Set(key, value)
}

// Get returns the value for key.
func (s Style) Get(key string) (string, bool) {
	if s.m == nil {
		return "", false
	}
	return s.m.Get(key)
}

// Delete removes key if present.
func (s *Style) Delete(key string) {
	if s.m != nil {
		s.m.Delete(key)
	}
}

// Len returns the number of properties.
func (s Style) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Each calls fn for every property in insertion order.
func (s Style) Each(fn func(key, value string)) {
	if s.m == nil {
		return
	}
	for p := s.m.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// Keys returns the property names in insertion order.
func (s Style) Keys() []string {
	keys := make([]string, 0, s.Len())
	s.Each(func(k, _ string) { keys = append(keys, k) })
	return keys
}

// Clone returns an independent copy.
func (s Style) Clone() Style {
	var out Style
	s.Each(out.Set)
	return out
}

// Merge sets every property of other onto s, in other's order.
func (s *Style) Merge(other Style) {
	other.Each(s.Set)
}

// Equal reports whether both styles hold the same pairs in the same order.
func (s Style) Equal(other Style) bool {
	if s.Len() != other.Len() {
		return false
	}
	a, b := s.pairs(), other.pairs()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s Style) pairs() [][2]string {
	out := make([][2]string, 0, s.Len())
	s.Each(func(k, v string) { out = append(out, [2]string{k, v}) })
	return out
}

// MarshalJSON encodes the style as a JSON object in insertion order.
func (s Style) MarshalJSON() ([]byte, error) {
	if s.m == nil {
		return []byte("{}"), nil
	}
	return s.m.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
func (s *Style) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		s.m = nil
		return nil
	}
	m := orderedmap.New[string, string]()
	if err := m.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	s.m = m
	return nil
}

// MarshalYAML encodes the style as a YAML mapping in insertion order.
func (s Style) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	s.Each(func(k, v string) {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
	})
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, keeping the document's key order.
func (s *Style) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		s.m = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("style: line %d: expected a mapping", value.Line)
	}
	m := orderedmap.New[string, string]()
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("style: line %d: value of %q must be a scalar", v.Line, k.Value)
		}
		m.Set(k.Value, v.Value)
	}
	s.m = m
	return nil
}
