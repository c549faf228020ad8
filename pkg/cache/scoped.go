package cache

import "github.com/matzehuels/modorder/pkg/mods"

// ScopedKeyer wraps a Keyer with a prefix so several mod sets can share one
// backend. The server scopes keys by the mods directory it serves.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "server:"+Hash([]byte(dir))[:12]+":")
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

// ResolutionKey generates a prefixed resolution key.
func (k *ScopedKeyer) ResolutionKey(set mods.Set, order, disabled []mods.ID) string {
	return k.prefix + k.inner.ResolutionKey(set, order, disabled)
}
