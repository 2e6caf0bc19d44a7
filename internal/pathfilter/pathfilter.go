// Package pathfilter decides which traversed entries are reported.
package pathfilter

import (
	"path"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/taigrr/findr/internal/types"
)

// PathFilter filters entries by type, base name and exclude globs.
type PathFilter struct {
	entryTypes []types.EntryType
	names      []*regexp.Regexp
	exclude    []string
}

// New creates a new PathFilter with the given configuration. A nil or empty
// configuration allows everything.
func New(config *types.PathFilterConfig) *PathFilter {
	pf := &PathFilter{}
	if config != nil {
		pf.entryTypes = slices.Clone(config.Types)
		pf.names = slices.Clone(config.Names)
		pf.exclude = slices.Clone(config.Exclude)
	}
	return pf
}

// IsAllowed reports whether an entry at path with the given kind passes both
// the type filter and the name filter. Each filter allows everything when it
// is empty. Names are matched against the base name of path, for every kind.
func (pf *PathFilter) IsAllowed(path string, kind types.Kind) bool {
	return pf.allowsKind(kind) && pf.allowsName(filepath.Base(path))
}

func (pf *PathFilter) allowsKind(kind types.Kind) bool {
	if len(pf.entryTypes) == 0 {
		return true
	}
	return slices.ContainsFunc(pf.entryTypes, func(t types.EntryType) bool {
		return t.Matches(kind)
	})
}

func (pf *PathFilter) allowsName(base string) bool {
	if len(pf.names) == 0 {
		return true
	}
	return slices.ContainsFunc(pf.names, func(re *regexp.Regexp) bool {
		return re.MatchString(base)
	})
}

// IsExcluded reports whether relPath, a slash-separated path relative to a
// search root, matches an exclude glob. Globs are tried against the whole
// relative path and against its last element.
func (pf *PathFilter) IsExcluded(relPath string) bool {
	if relPath == "." || relPath == "" {
		return false
	}
	base := path.Base(relPath)
	for _, pattern := range pf.exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// HasExcludes reports whether any exclude globs are configured.
func (pf *PathFilter) HasExcludes() bool {
	return len(pf.exclude) > 0
}
