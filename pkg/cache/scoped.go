package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server uses this to keep per-deployment caches separate when
// several instances share a Redis backend.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// InventoryKey generates a prefixed key for parsed inventory caching.
func (k *ScopedKeyer) InventoryKey(contentHash string, opts InventoryKeyOpts) string {
	return k.prefix + k.inner.InventoryKey(contentHash, opts)
}

// ReportKey generates a prefixed key for report row caching.
func (k *ScopedKeyer) ReportKey(inventoryHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(inventoryHash, opts)
}
