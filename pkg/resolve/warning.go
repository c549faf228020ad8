package resolve

import (
	"fmt"
	"strings"

	"github.com/matzehuels/modorder/pkg/mods"
)

// WarningKind identifies the variant of a Warning.
type WarningKind int

const (
	// CircularDependency: the mods in Warning.Cycle require each other.
	CircularDependency WarningKind = iota
	// MissingOptionalDependency: Warning.ID optionally needs Warning.Missing,
	// which is not installed.
	MissingOptionalDependency
	// MissingRequiredDependency: Warning.ID needs Warning.Missing, which is
	// not installed.
	MissingRequiredDependency
	// ConflictingConstraints: no slot satisfies every constraint of
	// Warning.ID. Warning.Details explains which.
	ConflictingConstraints
)

var warningKindNames = map[WarningKind]string{
	CircularDependency:        "circular_dependency",
	MissingOptionalDependency: "missing_optional_dependency",
	MissingRequiredDependency: "missing_required_dependency",
	ConflictingConstraints:    "conflicting_constraints",
}

// String returns the snake_case name used in JSON output.
func (k WarningKind) String() string {
	if s, ok := warningKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("warning(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *WarningKind) UnmarshalText(text []byte) error {
	for kind, name := range warningKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown warning kind %q", text)
}

// Warning is a diagnostic produced while resolving. Which fields are set
// depends on Kind: Cycle for CircularDependency, ID and Missing for the
// missing-dependency kinds, ID and Details for ConflictingConstraints.
//
// Warnings never abort resolution; the returned order is always usable.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	ID      mods.ID     `json:"id,omitempty"`
	Missing mods.ID     `json:"missing,omitempty"`
	Cycle   []mods.ID   `json:"cycle,omitempty"`
	Details string      `json:"details,omitempty"`
}

// NewCircularDependency reports a group of mutually dependent mods.
func NewCircularDependency(cycle []mods.ID) Warning {
	return Warning{Kind: CircularDependency, Cycle: cycle}
}

// NewMissingDependency reports that id depends on a mod that is not
// installed. The kind depends on whether the dependency was optional.
func NewMissingDependency(id, missing mods.ID, optional bool) Warning {
	kind := MissingRequiredDependency
	if optional {
		kind = MissingOptionalDependency
	}
	return Warning{Kind: kind, ID: id, Missing: missing}
}

// NewConflictingConstraints reports that id could not be placed.
func NewConflictingConstraints(id mods.ID, details string) Warning {
	return Warning{Kind: ConflictingConstraints, ID: id, Details: details}
}

// String renders the warning for humans.
func (w Warning) String() string {
	switch w.Kind {
	case CircularDependency:
		return fmt.Sprintf("circular dependency between %s", strings.Join(w.Cycle, ", "))
	case MissingOptionalDependency:
		return fmt.Sprintf("%s: optional dependency %s is not installed", w.ID, w.Missing)
	case MissingRequiredDependency:
		return fmt.Sprintf("%s: required dependency %s is not installed", w.ID, w.Missing)
	case ConflictingConstraints:
		return fmt.Sprintf("%s: conflicting load order constraints: %s", w.ID, w.Details)
	}
	return w.Kind.String()
}

// Involves reports whether the warning concerns id, either as the subject or
// as a member of a cycle.
func (w Warning) Involves(id mods.ID) bool {
	if w.ID == id {
		return true
	}
	for _, c := range w.Cycle {
		if c == id {
			return true
		}
	}
	return false
}
