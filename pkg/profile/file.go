package profile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/modorder/pkg/errors"
)

const fileExt = ".toml"

// FileStore keeps each profile in <dir>/<name>.toml.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file backing the named profile.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

func (s *FileStore) Load(ctx context.Context, name string) (*Profile, error) {
	if err := errors.ValidateProfileName(name); err != nil {
		return nil, err
	}
	path := s.Path(name)

	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(name)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "%s", path)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.normalize()
	return &p, nil
}

func (s *FileStore) Save(ctx context.Context, name string, p *Profile) error {
	if err := errors.ValidateProfileName(name); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	out := p.Clone()
	out.normalize()

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*")
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(tmp).Encode(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path(name))
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, fileExt))
	}
	slices.Sort(names)
	return names, nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
