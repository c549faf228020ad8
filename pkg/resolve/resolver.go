package resolve

import (
	"slices"

	"github.com/matzehuels/modorder/pkg/mods"
)

// Result is the outcome of a resolution: the load order to persist and the
// diagnostics gathered while computing it.
type Result struct {
	Order    []mods.ID `json:"order"`
	Warnings []Warning `json:"warnings"`
}

// HasWarnings reports whether resolution produced any diagnostics.
func (r Result) HasWarnings() bool { return len(r.Warnings) > 0 }

// Resolver computes load orders for a fixed set of installed mods.
//
// A Resolver holds no mutable state and may be shared between goroutines as
// long as the mod set is not modified.
type Resolver struct {
	known mods.Set
}

// New returns a Resolver for the installed mods in known.
func New(known mods.Set) *Resolver {
	if known == nil {
		known = mods.Set{}
	}
	return &Resolver{known: known}
}

// ResolveOrder is shorthand for New(known).ResolveOrder(existing, disabled).
func ResolveOrder(known mods.Set, existing, disabled []mods.ID) Result {
	return New(known).ResolveOrder(existing, disabled)
}

// ResolveOrder merges newly installed mods into existing, the order persisted
// by a previous run, and drops mods that are no longer installed.
//
// Disabled mods keep their place in existing but are never added when new,
// and their declarations do not constrain anything. Mods already in existing
// are never reordered relative to each other.
//
// When no new mod is found, the filtered existing order is returned as is
// with no warnings, which makes ResolveOrder idempotent.
func (r *Resolver) ResolveOrder(existing, disabled []mods.ID) Result {
	disabledSet := make(map[mods.ID]bool, len(disabled))
	for _, id := range disabled {
		disabledSet[id] = true
	}

	existingSet := make(map[mods.ID]bool, len(existing))
	validExisting := make([]mods.ID, 0, len(existing))
	for _, id := range existing {
		if existingSet[id] {
			continue
		}
		existingSet[id] = true
		if r.known.Has(id) {
			validExisting = append(validExisting, id)
		}
	}

	var newMods []mods.ID
	for _, id := range r.known.IDs() {
		if !existingSet[id] && !disabledSet[id] {
			newMods = append(newMods, id)
		}
	}

	if len(newMods) == 0 {
		return Result{Order: validExisting, Warnings: []Warning{}}
	}

	g := r.Graph(disabled)

	warnings := []Warning{}
	cycles := FindCycles(g, newMods)
	for _, c := range cycles {
		warnings = append(warnings, NewCircularDependency(slices.Clone(c)))
	}

	order, insertWarnings := InsertNewMods(validExisting, newMods, g, r.known, cycles)
	warnings = append(warnings, insertWarnings...)

	return Result{Order: order, Warnings: warnings}
}

// Graph returns the constraint graph of the mods enabled under disabled. It
// is the same graph ResolveOrder builds internally and is meant for
// inspection and rendering.
func (r *Resolver) Graph(disabled []mods.ID) *Graph {
	enabled := make(mods.Set, len(r.known))
	skip := make(map[mods.ID]bool, len(disabled))
	for _, id := range disabled {
		skip[id] = true
	}
	for id, meta := range r.known {
		if !skip[id] {
			enabled[id] = meta
		}
	}
	return BuildGraph(enabled)
}
