package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/taigrr/findr/internal/types"
	"gopkg.in/yaml.v3"
)

// File is the YAML form of a saved search.
type File struct {
	Paths    []string `yaml:"paths"`
	Names    []string `yaml:"names"`
	Types    []string `yaml:"types"`
	Exclude  []string `yaml:"exclude"`
	MaxDepth *int     `yaml:"maxDepth"`
}

// LoadFile reads a saved search. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %s - %w", path, err)
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %s - %w", path, err)
	}

	return &file, nil
}

func (f *File) entryTypes() ([]types.EntryType, error) {
	var out []types.EntryType
	for _, token := range f.Types {
		t, err := types.ParseEntryType(token)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
