package resolve

import (
	"fmt"
	"slices"

	"github.com/matzehuels/modorder/pkg/mods"
)

// bounds is the legal insertion range [lo, hi] for one mod against an order.
type bounds struct {
	lo, hi   int
	loReason mods.ID // prerequisite that set lo
	hiReason mods.ID // successor that set hi
}

func (b bounds) conflict() bool { return b.lo > b.hi }

// insertBounds computes the slot range for id and the missing-prerequisite
// warnings. Missing successors are deliberately not reported.
func insertBounds(id mods.ID, current []mods.ID, g *Graph, known mods.Set) (bounds, []Warning) {
	pos := make(map[mods.ID]int, len(current))
	for i, m := range current {
		pos[m] = i
	}

	var warnings []Warning
	b := bounds{lo: 0, hi: len(current)}

	for _, p := range g.Before[id] {
		if i, ok := pos[p]; ok {
			if i+1 > b.lo {
				b.lo = i + 1
				b.loReason = p
			}
			continue
		}
		if !known.Has(p) {
			warnings = append(warnings, NewMissingDependency(id, p, isOptional(known[id], p)))
		}
	}

	for _, s := range g.After[id] {
		if i, ok := pos[s]; ok && i < b.hi {
			b.hi = i
			b.hiReason = s
		}
	}

	return b, warnings
}

// isOptional reports whether meta declares its load-after dependency on
// target as optional. A declaration with a different ordering is used only
// when no "after" declaration exists.
func isOptional(meta *mods.Meta, target mods.ID) bool {
	if meta == nil {
		return false
	}
	found, optional := false, false
	for _, d := range meta.Dependencies {
		if d.Target != target {
			continue
		}
		if d.Ordering == mods.OrderAfter {
			return d.Optional
		}
		if !found {
			found, optional = true, d.Optional
		}
	}
	return optional
}

// FindInsertPosition returns the earliest slot in current where id satisfies
// every constraint against mods already in current.
//
// Prerequisites that are neither in current nor installed yield a missing
// dependency warning. When the constraints contradict each other a
// ConflictingConstraints warning is returned together with len(current), so
// the mod is appended.
func FindInsertPosition(id mods.ID, current []mods.ID, g *Graph, known mods.Set) (int, []Warning) {
	b, warnings := insertBounds(id, current, g, known)
	if b.conflict() {
		return len(current), append(warnings, conflictWarning(id, b))
	}
	return b.lo, warnings
}

func conflictWarning(id mods.ID, b bounds) Warning {
	details := fmt.Sprintf("must load after %s (position %d) but before %s (position %d)",
		b.loReason, b.lo-1, b.hiReason, b.hi)
	return NewConflictingConstraints(id, details)
}

// InsertNewMods merges newMods into existing and returns the new order.
// existing is not modified.
//
// Mods outside every cycle are placed one at a time in alphabetical order,
// each against the order built so far, so earlier placements constrain later
// ones. Mods that end up at the front are kept in alphabetical order through
// a running offset. Cycle members are appended last, alphabetically.
func InsertNewMods(existing, newMods []mods.ID, g *Graph, known mods.Set, cycles [][]mods.ID) ([]mods.ID, []Warning) {
	inCycle := make(map[mods.ID]bool)
	for _, c := range cycles {
		for _, id := range c {
			inCycle[id] = true
		}
	}

	var acyclic, cyclic []mods.ID
	for _, id := range newMods {
		if inCycle[id] {
			cyclic = append(cyclic, id)
		} else {
			acyclic = append(acyclic, id)
		}
	}
	slices.Sort(acyclic)
	slices.Sort(cyclic)

	order := make([]mods.ID, len(existing), len(existing)+len(newMods))
	copy(order, existing)

	var warnings []Warning
	insertOffset := 0
	for _, id := range acyclic {
		b, w := insertBounds(id, order, g, known)
		warnings = append(warnings, w...)

		var at int
		switch {
		case b.conflict():
			warnings = append(warnings, conflictWarning(id, b))
			at = len(order)
		case b.lo == 0:
			// Never shift past a successor that is already placed.
			at = min(insertOffset, b.hi)
			insertOffset++
		default:
			at = b.lo
		}
		order = slices.Insert(order, at, id)
	}

	order = append(order, cyclic...)
	return order, warnings
}
