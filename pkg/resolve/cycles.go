package resolve

import (
	"slices"

	"github.com/matzehuels/modorder/pkg/mods"
)

// FindCycles returns the strongly connected components of size two or more
// among the mods in subset, following only prerequisite edges whose target is
// also in subset. Edges leaving subset are ignored: mods outside it are
// already placed and assumed consistent.
//
// Roots are visited in the order of subset, so callers should pass a sorted
// slice for deterministic output. Members of each cycle are sorted.
//
// # Algorithm
//
// Tarjan's algorithm with an explicit work stack instead of recursion. Every
// visited node gets a discovery index and a low-link; when a node finishes
// with low-link equal to its own index, the nodes above it on the component
// stack form one component.
//
// # Performance
//
// O(V + E) over the subgraph induced by subset.
func FindCycles(g *Graph, subset []mods.ID) [][]mods.ID {
	inSubset := make(map[mods.ID]bool, len(subset))
	for _, id := range subset {
		inSubset[id] = true
	}

	type frame struct {
		id   mods.ID
		next int // next prerequisite to examine
	}

	var (
		counter int
		index   = make(map[mods.ID]int, len(subset))
		low     = make(map[mods.ID]int, len(subset))
		onStack = make(map[mods.ID]bool, len(subset))
		stack   []mods.ID
		cycles  [][]mods.ID
	)

	visit := func(id mods.ID) {
		index[id] = counter
		low[id] = counter
		counter++
		stack = append(stack, id)
		onStack[id] = true
	}

	for _, root := range subset {
		if _, seen := index[root]; seen {
			continue
		}

		visit(root)
		work := []frame{{id: root}}

		for len(work) > 0 {
			top := &work[len(work)-1]
			edges := g.Before[top.id]

			if top.next < len(edges) {
				w := edges[top.next]
				top.next++
				if !inSubset[w] {
					continue
				}
				if _, seen := index[w]; !seen {
					visit(w)
					work = append(work, frame{id: w})
				} else if onStack[w] {
					low[top.id] = min(low[top.id], index[w])
				}
				continue
			}

			v := top.id
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1].id
				low[parent] = min(low[parent], low[v])
			}

			if low[v] != index[v] {
				continue
			}
			var component []mods.ID
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			if len(component) > 1 {
				slices.Sort(component)
				cycles = append(cycles, component)
			}
		}
	}

	return cycles
}
