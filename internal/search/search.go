// Package search walks the configured roots and reports matching entries.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"

	krfs "github.com/kr/fs"
	"github.com/rs/zerolog"
	"github.com/taigrr/findr/internal/config"
	"github.com/taigrr/findr/internal/filesystem"
	"github.com/taigrr/findr/internal/pathfilter"
	"github.com/taigrr/findr/internal/types"
)

// DefaultLimit bounds Find when no limit is given.
const DefaultLimit = 1000

var errLimitReached = errors.New("limit reached")

// Service walks every configured root and filters what it finds.
type Service struct {
	paths      []string
	maxDepth   int
	pathFilter *pathfilter.PathFilter
	fileSystem krfs.FileSystem
	log        zerolog.Logger
}

// New creates a new search Service for cfg.
func New(cfg *config.Config, logger zerolog.Logger) *Service {
	return &Service{
		paths:      cfg.Paths,
		maxDepth:   cfg.MaxDepth,
		pathFilter: pathfilter.New(&cfg.Filter),
		log:        logger,
	}
}

// Walk calls visit for every matching entry and every traversal error, root
// by root in configuration order. Traversal errors do not stop the walk; an
// error returned by visit or a cancelled ctx does.
func (s *Service) Walk(ctx context.Context, visit func(path string, err error) error) error {
	opts := filesystem.WalkOptions{
		MaxDepth:   s.maxDepth,
		FileSystem: s.fileSystem,
	}
	if s.pathFilter.HasExcludes() {
		opts.Prune = func(e filesystem.Entry) bool {
			return s.pathFilter.IsExcluded(e.RelPath)
		}
	}

	for _, root := range s.paths {
		var matched, failed int
		s.log.Debug().Str("root", root).Msg("walking")

		for entry, err := range filesystem.Walk(root, opts) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if err != nil {
				failed++
				if verr := visit(entry.Path, err); verr != nil {
					return verr
				}
				continue
			}

			if !s.pathFilter.IsAllowed(entry.Path, entry.Kind) {
				continue
			}
			matched++
			if verr := visit(entry.Path, nil); verr != nil {
				return verr
			}
		}

		s.log.Debug().Str("root", root).Int("matched", matched).Int("errors", failed).Msg("walked")
	}

	return nil
}

// Run streams one line per match to stdout and one line per traversal error
// to stderr. It fails only if stdout cannot be written or ctx is cancelled.
func (s *Service) Run(ctx context.Context, stdout, stderr io.Writer) error {
	return s.Walk(ctx, func(path string, err error) error {
		if err != nil {
			fmt.Fprintln(stderr, err)
			return nil
		}
		if _, err := fmt.Fprintln(stdout, path); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

// Find collects up to limit matches along with the traversal errors seen
// before the limit was reached.
func (s *Service) Find(ctx context.Context, limit int) (types.FindResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := types.FindResult{Matches: []string{}}
	err := s.Walk(ctx, func(path string, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			return nil
		}
		if len(result.Matches) == limit {
			result.Truncated = true
			return errLimitReached
		}
		result.Matches = append(result.Matches, path)
		return nil
	})
	if err != nil && !errors.Is(err, errLimitReached) {
		return result, err
	}

	return result, nil
}
