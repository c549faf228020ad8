// Package profile persists load orders.
//
// A profile is the previous load order plus the set of mods the user has
// switched off. The resolver consumes both and the pipeline writes the new
// order back. Profiles live in a [Store]:
//
//   - [FileStore]: one TOML file per profile (CLI default)
//   - [MongoStore]: a MongoDB collection, for the shared HTTP server
package profile

import (
	"context"
	"slices"

	"github.com/matzehuels/modorder/pkg/errors"
	"github.com/matzehuels/modorder/pkg/mods"
)

// DefaultName is the profile used when none is specified.
const DefaultName = "default"

// Profile is a saved load order.
type Profile struct {
	Order    []mods.ID `toml:"order" json:"order" bson:"order"`
	Disabled []mods.ID `toml:"disabled" json:"disabled" bson:"disabled"`
}

// Store loads and saves profiles by name.
type Store interface {
	// Load returns the named profile, or an ErrCodeProfileNotFound error.
	Load(ctx context.Context, name string) (*Profile, error)
	// Save creates or replaces the named profile.
	Save(ctx context.Context, name string, p *Profile) error
	// List returns all profile names in alphabetical order.
	List(ctx context.Context) ([]string, error)
	Close() error
}

// LoadOrEmpty loads name from s and treats a missing profile as empty.
func LoadOrEmpty(ctx context.Context, s Store, name string) (*Profile, error) {
	p, err := s.Load(ctx, name)
	if errors.Is(err, errors.ErrCodeProfileNotFound) {
		return &Profile{Order: []mods.ID{}, Disabled: []mods.ID{}}, nil
	}
	return p, err
}

// Validate checks every id in the profile. It does not require the ids to
// be installed.
func (p *Profile) Validate() error {
	for _, id := range p.Order {
		if err := errors.ValidateModID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProfile, err, "order")
		}
	}
	for _, id := range p.Disabled {
		if err := errors.ValidateModID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProfile, err, "disabled")
		}
	}
	return nil
}

// normalize replaces nil slices so encoded profiles always carry both keys.
func (p *Profile) normalize() {
	if p.Order == nil {
		p.Order = []mods.ID{}
	}
	if p.Disabled == nil {
		p.Disabled = []mods.ID{}
	}
}

// IsDisabled reports whether id is in the disabled list.
func (p *Profile) IsDisabled(id mods.ID) bool {
	return slices.Contains(p.Disabled, id)
}

// SetDisabled adds or removes id from the disabled list, keeping it sorted.
func (p *Profile) SetDisabled(id mods.ID, disabled bool) {
	if !slices.IsSorted(p.Disabled) {
		slices.Sort(p.Disabled)
	}
	i, found := slices.BinarySearch(p.Disabled, id)
	switch {
	case disabled && !found:
		p.Disabled = slices.Insert(p.Disabled, i, id)
	case !disabled && found:
		p.Disabled = slices.Delete(p.Disabled, i, i+1)
	}
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	return &Profile{Order: slices.Clone(p.Order), Disabled: slices.Clone(p.Disabled)}
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeProfileNotFound, "profile %q not found", name)
}
