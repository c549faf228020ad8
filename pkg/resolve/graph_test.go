package resolve

import (
	"slices"
	"testing"

	"github.com/matzehuels/modorder/pkg/mods"
)

func TestBuildGraph_SymmetricEdges(t *testing.T) {
	g := BuildGraph(mods.NewSet(
		mod("a", before("b")),
		mod("c", after("a")),
		mod("b"),
	))

	checks := []struct {
		name string
		got  []mods.ID
		want []mods.ID
	}{
		{"After[a]", g.After["a"], []mods.ID{"b", "c"}},
		{"Before[b]", g.Before["b"], []mods.ID{"a"}},
		{"Before[c]", g.Before["c"], []mods.ID{"a"}},
		{"Before[a]", g.Before["a"], nil},
		{"After[c]", g.After["c"], nil},
	}
	for _, c := range checks {
		if !slices.Equal(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestBuildGraph_NoneOrderingAddsNoEdges(t *testing.T) {
	g := BuildGraph(mods.NewSet(
		mod("a", mods.Dependency{Target: "b", Ordering: mods.OrderNone}),
		mod("b"),
	))

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if _, ok := g.Optional["a"]["b"]; !ok {
		t.Error("Optional index should record dependencies without ordering")
	}
}

func TestBuildGraph_UnknownTargetsRecorded(t *testing.T) {
	g := BuildGraph(mods.NewSet(mod("a", after("ghost"))))

	if got := g.Prerequisites("a"); !slices.Equal(got, []mods.ID{"ghost"}) {
		t.Errorf("Prerequisites(a) = %v, want [ghost]", got)
	}
	if got := g.Successors("ghost"); !slices.Equal(got, []mods.ID{"a"}) {
		t.Errorf("Successors(ghost) = %v, want [a]", got)
	}
}

func TestBuildGraph_DuplicateDeclarations(t *testing.T) {
	// Both sides declare the same constraint, plus a repeated declaration.
	g := BuildGraph(mods.NewSet(
		mod("a", before("b"), before("b")),
		mod("b", after("a")),
	))

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if got := g.Before["b"]; !slices.Equal(got, []mods.ID{"a"}) {
		t.Errorf("Before[b] = %v, want [a]", got)
	}
}

func TestBuildGraph_Optional(t *testing.T) {
	g := BuildGraph(mods.NewSet(
		mod("a", optional(after("x")), after("y")),
		mod("b", optional(after("z")), after("z")),
	))

	tests := []struct {
		from, to mods.ID
		want     bool
	}{
		{"a", "x", true},
		{"a", "y", false},
		{"b", "z", false}, // optional only if every declaration is
	}
	for _, tt := range tests {
		if got := g.Optional[tt.from][tt.to]; got != tt.want {
			t.Errorf("Optional[%s][%s] = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestGraph_Edges(t *testing.T) {
	g := BuildGraph(mods.NewSet(
		mod("c", after("b")),
		mod("b", after("a")),
		mod("a", before("c")),
	))

	want := []Edge{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestBuildGraph_Empty(t *testing.T) {
	g := BuildGraph(nil)
	if g.EdgeCount() != 0 || len(g.Edges()) != 0 {
		t.Errorf("empty graph has %d edges", g.EdgeCount())
	}
}

func TestGraph_Violations(t *testing.T) {
	g := BuildGraph(mods.NewSet(
		mod("a"),
		mod("b", after("a")),
		mod("c", after("b"), before("x")),
	))

	tests := []struct {
		name  string
		order []mods.ID
		want  []Edge
	}{
		{"satisfied", []mods.ID{"a", "b", "c"}, nil},
		{"one swapped", []mods.ID{"b", "a", "c"}, []Edge{{From: "a", To: "b"}}},
		{"reversed", []mods.ID{"c", "b", "a"}, []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}}},
		{"absent endpoints ignored", []mods.ID{"c", "a"}, nil},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Violations(tt.order); !slices.Equal(got, tt.want) {
				t.Errorf("Violations(%v) = %v, want %v", tt.order, got, tt.want)
			}
		})
	}
}
