package cache

import (
	"slices"

	"github.com/matzehuels/modorder/pkg/mods"
)

// Keyer generates cache keys for resolution results.
type Keyer interface {
	// ResolutionKey identifies the result of resolving set against the
	// previous order and disabled list.
	ResolutionKey(set mods.Set, order, disabled []mods.ID) string
}

// keyVersion is bumped whenever the resolver output for identical inputs
// may change, so stale entries stop matching.
const keyVersion = "v1"

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// keyDep and keyMod hold only the fields that influence ordering, so
// editing a description does not invalidate cached results.
type keyDep struct {
	Target   string `json:"t"`
	Optional bool   `json:"o,omitempty"`
	Ordering string `json:"r"`
}

type keyMod struct {
	ID   string   `json:"id"`
	Deps []keyDep `json:"d,omitempty"`
}

// ResolutionKey hashes the sorted mod set, the previous order as given and
// the sorted disabled list.
func (DefaultKeyer) ResolutionKey(set mods.Set, order, disabled []mods.ID) string {
	canonical := make([]keyMod, 0, len(set))
	for _, m := range set.Sorted() {
		km := keyMod{ID: m.ID}
		for _, d := range m.Dependencies {
			km.Deps = append(km.Deps, keyDep{Target: d.Target, Optional: d.Optional, Ordering: d.Ordering.String()})
		}
		canonical = append(canonical, km)
	}

	dis := slices.Clone(disabled)
	slices.Sort(dis)
	dis = slices.Compact(dis)

	if order == nil {
		order = []mods.ID{}
	}
	if dis == nil {
		dis = []mods.ID{}
	}
	return hashKey("resolve", keyVersion, canonical, order, dis)
}
