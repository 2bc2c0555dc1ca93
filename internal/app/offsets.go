package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/trackermeta/internal/modarchive"
)

// OffsetStore persists the three layout offsets in a YAML or JSON file.
type OffsetStore struct {
	Fs   afero.Fs
	Path string
}

// NewOffsetStore returns a store backed by the OS filesystem.
func NewOffsetStore(path string) *OffsetStore {
	return &OffsetStore{Fs: afero.NewOsFs(), Path: path}
}

// offsetFile uses pointers so that a file can override a subset of offsets.
type offsetFile struct {
	StatOffset      *int `yaml:"statOffset" json:"statOffset"`
	SpotlitShift    *int `yaml:"spotlitShift" json:"spotlitShift"`
	InstrumentBlock *int `yaml:"instrumentBlock" json:"instrumentBlock"`
}

// Load overlays the stored offsets onto base. A missing file yields base
// unchanged.
func (s *OffsetStore) Load(base modarchive.Offsets) (modarchive.Offsets, error) {
	b, err := afero.ReadFile(s.Fs, s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read offsets: %w", err)
	}
	var f offsetFile
	if filepath.Ext(s.Path) == ".json" {
		err = json.Unmarshal(b, &f)
	} else {
		err = yaml.Unmarshal(b, &f)
	}
	if err != nil {
		return base, fmt.Errorf("parse offsets %s: %w", s.Path, err)
	}
	out := base
	if f.StatOffset != nil {
		out.StatOffset = *f.StatOffset
	}
	if f.SpotlitShift != nil {
		out.SpotlitShift = *f.SpotlitShift
	}
	if f.InstrumentBlock != nil {
		if *f.InstrumentBlock < 0 {
			return base, fmt.Errorf("parse offsets %s: instrumentBlock must not be negative", s.Path)
		}
		out.InstrumentBlock = *f.InstrumentBlock
	}
	return out, nil
}

// Save writes o to the store, creating parent directories as needed.
func (s *OffsetStore) Save(o modarchive.Offsets) error {
	var (
		b   []byte
		err error
	)
	if filepath.Ext(s.Path) == ".json" {
		b, err = json.MarshalIndent(o, "", "  ")
	} else {
		b, err = yaml.Marshal(o)
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := s.Fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create offsets dir: %w", err)
		}
	}
	return afero.WriteFile(s.Fs, s.Path, b, 0o644)
}
