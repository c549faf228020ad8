package mods

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/modorder/pkg/errors"
)

// ManifestFile is the file name looked up in every mod directory.
const ManifestFile = "mod.toml"

// Parse decodes a single mod manifest from r and validates it. Keys that do
// not belong to the manifest format are rejected, so a misspelled "order"
// cannot silently drop a constraint.
func Parse(r io.Reader) (*Meta, error) {
	var m Meta
	md, err := toml.NewDecoder(r).Decode(&m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseFile reads and parses the manifest at path. Dir is set to the
// directory containing the file.
func ParseFile(path string) (*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// Validate checks the mod id and every dependency target.
func (m *Meta) Validate() error {
	if err := errors.ValidateModID(m.ID); err != nil {
		return err
	}
	for _, d := range m.Dependencies {
		if err := errors.ValidateModID(d.Target); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "mod %q: dependency", m.ID)
		}
	}
	return nil
}

// LoadDir discovers mods in the immediate subdirectories of dir. A
// subdirectory without a mod.toml is skipped; two manifests declaring the same
// id are rejected with ErrCodeDuplicateMod.
func LoadDir(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read mods directory")
	}

	set := make(Set)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name(), ManifestFile)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		m, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := set[m.ID]; ok {
			dirs := []string{prev.Dir, m.Dir}
			slices.Sort(dirs)
			return nil, errors.New(errors.ErrCodeDuplicateMod, "mod %q declared in both %s and %s", m.ID, dirs[0], dirs[1])
		}
		set[m.ID] = m
	}
	return set, nil
}
