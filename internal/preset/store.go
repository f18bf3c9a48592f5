// Package preset stores named countdown durations.
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fakeyudi/tempo/internal/timer"
)

// ErrNotFound is returned by Get and Remove for an unknown preset name.
var ErrNotFound = errors.New("preset not found")

// Preset is a named countdown length.
type Preset struct {
	Name    string `yaml:"name"`
	Seconds int    `yaml:"seconds"`
}

// Store persists presets.
type Store interface {
	List() ([]Preset, error)
	Get(name string) (Preset, error) // returns ErrNotFound if absent
	Put(p Preset) error
	Remove(name string) error // returns ErrNotFound if absent
}

type file struct {
	Presets []Preset `yaml:"presets"`
}

// diskStore keeps presets in a single YAML file.
type diskStore struct {
	path string // full path to presets.yaml
}

// NewStore returns a Store backed by the XDG data directory.
// Path: $XDG_DATA_HOME/tempo/presets.yaml or ~/.local/share/tempo/presets.yaml
func NewStore() (Store, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &diskStore{path: filepath.Join(dir, "presets.yaml")}, nil
}

func dataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "tempo"), nil
}

// Validate checks the name and that Seconds is a legal countdown length.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset name must not be empty")
	}
	if strings.ContainsAny(p.Name, " \t\n") {
		return fmt.Errorf("preset name %q must not contain whitespace", p.Name)
	}
	if _, err := timer.NewCountdown(nil, p.Seconds); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return nil
}

// List returns presets sorted by name. A missing file yields none.
func (d *diskStore) List() ([]Preset, error) {
	f, err := d.read()
	if err != nil {
		return nil, err
	}
	return f.Presets, nil
}

func (d *diskStore) Get(name string) (Preset, error) {
	f, err := d.read()
	if err != nil {
		return Preset{}, err
	}
	for _, p := range f.Presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Put adds p or replaces the preset with the same name.
func (d *diskStore) Put(p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f, err := d.read()
	if err != nil {
		return err
	}
	replaced := false
	for i := range f.Presets {
		if f.Presets[i].Name == p.Name {
			f.Presets[i] = p
			replaced = true
		}
	}
	if !replaced {
		f.Presets = append(f.Presets, p)
	}
	return d.write(f)
}

func (d *diskStore) Remove(name string) error {
	f, err := d.read()
	if err != nil {
		return err
	}
	kept := f.Presets[:0]
	for _, p := range f.Presets {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(f.Presets) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	f.Presets = kept
	return d.write(f)
}

func (d *diskStore) read() (*file, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &file{}, nil
		}
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets %s: %w", d.path, err)
	}
	sort.Slice(f.Presets, func(i, j int) bool { return f.Presets[i].Name < f.Presets[j].Name })
	return &f, nil
}

// write marshals f to YAML and replaces the file atomically via a temp file + os.Rename.
func (d *diskStore) write(f *file) (err error) {
	sort.Slice(f.Presets, func(i, j int) bool { return f.Presets[i].Name < f.Presets[j].Name })
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to persist presets: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), "presets-*.yaml.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist presets: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist presets: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist presets: %w", err)
	}
	if err = os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("failed to persist presets: %w", err)
	}
	return nil
}
