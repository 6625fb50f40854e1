package cache

// ScopedKeyer prefixes another keyer's keys. The CLI scopes by release
// version, so a cache shared across upgrades never mixes serializer output.
//
//	keyer := NewScopedKeyer(nil, "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ExportKey implements Keyer.
func (k *ScopedKeyer) ExportKey(docHash, format string) string {
	return k.prefix + k.inner.ExportKey(docHash, format)
}
