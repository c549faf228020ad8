package mods

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ID uniquely identifies a mod. IDs are case-sensitive.
type ID = string

// Ordering describes how a dependency constrains the load order.
type Ordering int

const (
	// OrderNone records that the dependency must exist but does not
	// constrain where either mod loads.
	OrderNone Ordering = iota
	// OrderBefore means the declaring mod must load before the target.
	OrderBefore
	// OrderAfter means the declaring mod must load after the target.
	OrderAfter
)

// String returns the manifest spelling of the ordering.
func (o Ordering) String() string {
	switch o {
	case OrderBefore:
		return "before"
	case OrderAfter:
		return "after"
	default:
		return "none"
	}
}

// ParseOrdering converts a manifest value ("before", "after", "none") into an
// Ordering. Matching is case-insensitive and an empty string means OrderNone.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return OrderNone, nil
	case "before":
		return OrderBefore, nil
	case "after":
		return OrderAfter, nil
	}
	return OrderNone, fmt.Errorf("unknown ordering %q (want before, after or none)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Ordering) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so orderings can be
// decoded straight from TOML and JSON.
func (o *Ordering) UnmarshalText(text []byte) error {
	v, err := ParseOrdering(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Dependency is a single declared relationship from one mod to another.
type Dependency struct {
	Target   ID       `toml:"id" json:"id"`
	Optional bool     `toml:"optional" json:"optional,omitempty"`
	Ordering Ordering `toml:"order" json:"order"`
}

// Meta is the metadata of one discovered mod. Only ID and Dependencies affect
// load ordering; the remaining fields are descriptive.
type Meta struct {
	ID           ID           `toml:"id" json:"id"`
	Name         string       `toml:"name" json:"name,omitempty"`
	Version      string       `toml:"version" json:"version,omitempty"`
	Description  string       `toml:"description" json:"description,omitempty"`
	Authors      []string     `toml:"authors" json:"authors,omitempty"`
	Dependencies []Dependency `toml:"dependencies" json:"dependencies,omitempty"`

	// Dir is the directory the manifest was loaded from, if any.
	Dir string `toml:"-" json:"-"`
}

// DisplayName returns Name when set, otherwise the ID.
func (m *Meta) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// Dependency returns the first declared dependency on target.
func (m *Meta) Dependency(target ID) (Dependency, bool) {
	for _, d := range m.Dependencies {
		if d.Target == target {
			return d, true
		}
	}
	return Dependency{}, false
}

// Set maps mod IDs to their metadata. It is the read-only input of the
// resolver and is never modified by it.
type Set map[ID]*Meta

// NewSet builds a Set from a list of metas. Later entries with the same ID
// replace earlier ones.
func NewSet(metas ...*Meta) Set {
	s := make(Set, len(metas))
	for _, m := range metas {
		s[m.ID] = m
	}
	return s
}

// IDs returns all mod IDs in alphabetical order.
func (s Set) IDs() []ID {
	return slices.Sorted(maps.Keys(s))
}

// Has reports whether id is part of the set.
func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the metas ordered by ID.
func (s Set) Sorted() []*Meta {
	out := make([]*Meta, 0, len(s))
	for _, id := range s.IDs() {
		out = append(out, s[id])
	}
	return out
}
