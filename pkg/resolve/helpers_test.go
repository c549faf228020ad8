package resolve

import (
	"github.com/matzehuels/modorder/pkg/mods"
)

func mod(id mods.ID, deps ...mods.Dependency) *mods.Meta {
	return &mods.Meta{ID: id, Dependencies: deps}
}

func after(target mods.ID) mods.Dependency {
	return mods.Dependency{Target: target, Ordering: mods.OrderAfter}
}

func before(target mods.ID) mods.Dependency {
	return mods.Dependency{Target: target, Ordering: mods.OrderBefore}
}

func optional(d mods.Dependency) mods.Dependency {
	d.Optional = true
	return d
}

func indexOf(order []mods.ID, id mods.ID) int {
	for i, o := range order {
		if o == id {
			return i
		}
	}
	return -1
}
