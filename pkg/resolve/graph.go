package resolve

import (
	"slices"

	"github.com/matzehuels/modorder/pkg/mods"
)

// Graph holds the ordering constraints declared by the enabled mods as two
// views of a single edge set.
//
// Before[x] lists the mods x must load after (its prerequisites) and After[x]
// lists the mods x must load before (its successors). A declaration
// "a before b" therefore yields After[a] ∋ b and Before[b] ∋ a, while
// "a after b" yields Before[a] ∋ b and After[b] ∋ a.
//
// Adjacency lists are sorted and free of duplicates. Targets may be ids that
// are disabled or not installed at all.
type Graph struct {
	Before map[mods.ID][]mods.ID
	After  map[mods.ID][]mods.ID

	// Optional records, per declaring mod, whether its dependency on a target
	// was marked optional. Insertion does not consult it; warnings re-derive
	// optionality from the metadata.
	Optional map[mods.ID]map[mods.ID]bool
}

// Edge is a single "From loads before To" constraint.
type Edge struct {
	From mods.ID
	To   mods.ID
}

// BuildGraph converts the dependency declarations of the enabled mods into a
// Graph. Only the declaring mod has to be enabled; the target of a
// declaration is recorded whatever its state. BuildGraph never fails.
func BuildGraph(enabled mods.Set) *Graph {
	g := &Graph{
		Before:   make(map[mods.ID][]mods.ID),
		After:    make(map[mods.ID][]mods.ID),
		Optional: make(map[mods.ID]map[mods.ID]bool),
	}

	for _, id := range enabled.IDs() {
		meta := enabled[id]
		for _, dep := range meta.Dependencies {
			g.markOptional(id, dep.Target, dep.Optional)
			switch dep.Ordering {
			case mods.OrderBefore:
				g.addEdge(id, dep.Target)
			case mods.OrderAfter:
				g.addEdge(dep.Target, id)
			}
		}
	}

	for _, adj := range []map[mods.ID][]mods.ID{g.Before, g.After} {
		for id := range adj {
			slices.Sort(adj[id])
		}
	}
	return g
}

// addEdge records that first must load before second.
func (g *Graph) addEdge(first, second mods.ID) {
	if !slices.Contains(g.After[first], second) {
		g.After[first] = append(g.After[first], second)
	}
	if !slices.Contains(g.Before[second], first) {
		g.Before[second] = append(g.Before[second], first)
	}
}

func (g *Graph) markOptional(from, to mods.ID, optional bool) {
	m, ok := g.Optional[from]
	if !ok {
		m = make(map[mods.ID]bool)
		g.Optional[from] = m
	}
	// A target declared more than once counts as optional only if every
	// declaration says so.
	if prev, seen := m[to]; seen {
		optional = prev && optional
	}
	m[to] = optional
}

// Prerequisites returns the mods id must load after.
func (g *Graph) Prerequisites(id mods.ID) []mods.ID { return g.Before[id] }

// Successors returns the mods id must load before.
func (g *Graph) Successors(id mods.ID) []mods.ID { return g.After[id] }

// Edges returns every constraint as a From-before-To edge, sorted by From and
// then To.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, from := range sortedKeys(g.After) {
		for _, to := range g.After[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// EdgeCount returns the number of distinct ordering constraints.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, to := range g.After {
		n += len(to)
	}
	return n
}

// Violations returns the edges whose endpoints both appear in order but in
// the wrong sequence. Edges touching ids absent from order are ignored.
//
// The resolver never reorders mods it has placed before, so a hand-edited
// order can violate constraints without any warning being produced.
func (g *Graph) Violations(order []mods.ID) []Edge {
	pos := make(map[mods.ID]int, len(order))
	for i, id := range order {
		if _, dup := pos[id]; !dup {
			pos[id] = i
		}
	}

	var out []Edge
	for _, e := range g.Edges() {
		from, ok1 := pos[e.From]
		to, ok2 := pos[e.To]
		if ok1 && ok2 && from > to {
			out = append(out, e)
		}
	}
	return out
}

func sortedKeys(m map[mods.ID][]mods.ID) []mods.ID {
	keys := make([]mods.ID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
