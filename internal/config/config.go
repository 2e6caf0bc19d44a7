// Package config builds the validated search configuration from command-line options.
package config

import (
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/taigrr/findr/internal/types"
)

// UnlimitedDepth disables the depth limit.
const UnlimitedDepth = -1

// Options contains the raw, unvalidated inputs of a search.
type Options struct {
	Paths       []string
	Names       []string
	Types       TypeSet
	Exclude     []string
	MaxDepth    int
	MaxDepthSet bool
	ConfigFile  string
}

// Config is the validated configuration of a search. It is not modified after Build.
type Config struct {
	Paths    []string
	Filter   types.PathFilterConfig
	MaxDepth int
}

// PatternError reports a pattern that failed to compile.
type PatternError struct {
	Flag    string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s \"%s\": %v", e.Flag, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Build validates opts and compiles its patterns.
func Build(opts Options) (*Config, error) {
	var file *File
	if opts.ConfigFile != "" {
		var err error
		file, err = LoadFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{MaxDepth: UnlimitedDepth}

	var names, exclude []string
	var entryTypes []types.EntryType
	if file != nil {
		fileTypes, err := file.entryTypes()
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", opts.ConfigFile, err)
		}
		names = append(names, file.Names...)
		exclude = append(exclude, file.Exclude...)
		entryTypes = append(entryTypes, fileTypes...)
		if file.MaxDepth != nil {
			cfg.MaxDepth = *file.MaxDepth
		}
	}
	names = append(names, opts.Names...)
	exclude = append(exclude, opts.Exclude...)
	entryTypes = append(entryTypes, opts.Types...)
	if opts.MaxDepthSet {
		cfg.MaxDepth = opts.MaxDepth
	}
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = UnlimitedDepth
	}

	switch {
	case len(opts.Paths) > 0:
		cfg.Paths = append([]string(nil), opts.Paths...)
	case file != nil && len(file.Paths) > 0:
		cfg.Paths = append([]string(nil), file.Paths...)
	default:
		cfg.Paths = []string{"."}
	}

	for _, name := range names {
		re, err := regexp.Compile(name)
		if err != nil {
			return nil, &PatternError{Flag: "--name", Pattern: name, Err: err}
		}
		cfg.Filter.Names = append(cfg.Filter.Names, re)
	}

	for _, glob := range exclude {
		if !doublestar.ValidatePattern(glob) {
			return nil, &PatternError{Flag: "--exclude", Pattern: glob, Err: doublestar.ErrBadPattern}
		}
	}
	cfg.Filter.Exclude = exclude
	cfg.Filter.Types = entryTypes

	return cfg, nil
}
