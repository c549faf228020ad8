package resolve_test

import (
	"fmt"

	"github.com/matzehuels/modorder/pkg/mods"
	"github.com/matzehuels/modorder/pkg/resolve"
)

func ExampleResolveOrder() {
	installed := mods.NewSet(
		&mods.Meta{ID: "core"},
		&mods.Meta{ID: "textures"},
		&mods.Meta{ID: "ui-patch", Dependencies: []mods.Dependency{
			{Target: "core", Ordering: mods.OrderAfter},
			{Target: "textures", Ordering: mods.OrderBefore},
		}},
	)

	// The user already has core and textures in their load order.
	res := resolve.ResolveOrder(installed, []mods.ID{"core", "textures"}, nil)

	fmt.Println(res.Order)
	fmt.Println(len(res.Warnings), "warnings")
	// Output:
	// [core ui-patch textures]
	// 0 warnings
}

func ExampleResolver_ResolveOrder_warnings() {
	installed := mods.NewSet(
		&mods.Meta{ID: "a", Dependencies: []mods.Dependency{{Target: "b", Ordering: mods.OrderAfter}}},
		&mods.Meta{ID: "b", Dependencies: []mods.Dependency{{Target: "a", Ordering: mods.OrderAfter}}},
		&mods.Meta{ID: "c", Dependencies: []mods.Dependency{{Target: "maps", Ordering: mods.OrderAfter, Optional: true}}},
	)

	res := resolve.New(installed).ResolveOrder(nil, nil)

	fmt.Println(res.Order)
	for _, w := range res.Warnings {
		fmt.Println(w)
	}
	// Output:
	// [c a b]
	// circular dependency between a, b
	// c: optional dependency maps is not installed
}
