// Package filesystem enumerates directory trees depth-first.
package filesystem

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	krfs "github.com/kr/fs"
	"github.com/taigrr/findr/internal/types"
)

// Entry is one item yielded by Walk.
type Entry struct {
	// Path is the root joined with the entry's name components, as displayed.
	Path string
	// RelPath is the slash-separated path relative to the root ("." for the root).
	RelPath string
	Depth   int
	Kind    types.Kind
	Info    os.FileInfo
}

// WalkOptions configures Walk.
type WalkOptions struct {
	// MaxDepth limits descent below the root. Negative means unlimited.
	MaxDepth int
	// Prune reports entries to leave out. A pruned directory is not descended.
	// It is never called for the root.
	Prune func(Entry) bool
	// FileSystem overrides the host filesystem.
	FileSystem krfs.FileSystem
}

// Walk returns a lazy depth-first sequence over the tree rooted at root,
// starting with root itself. Symbolic links below the root are reported, not
// followed. A root that is a symbolic link to a directory is descended into
// but still yielded with KindSymlink.
// Entries that cannot be read are yielded with a non-nil error and the walk
// continues with the next entry. The sequence can be consumed only once.
func Walk(root string, opts WalkOptions) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		fileSystem := opts.FileSystem
		if fileSystem == nil {
			fileSystem = hostFS{}
		}

		rootLink := rootSymlink(root, fileSystem)
		if rootLink != nil {
			fileSystem = followRootFS{FileSystem: fileSystem, root: root}
		}

		walker := krfs.WalkFS(root, fileSystem)
		for walker.Step() {
			if err := walker.Err(); err != nil {
				if !yield(Entry{Path: walker.Path()}, err) {
					return
				}
				continue
			}

			entry := newEntry(root, walker.Path(), walker.Stat())
			isDir := entry.Kind == types.KindDirectory
			if entry.Depth == 0 && rootLink != nil {
				entry.Kind = types.KindSymlink
				entry.Info = rootLink
			}

			if entry.Depth > 0 && opts.Prune != nil && opts.Prune(entry) {
				if isDir {
					walker.SkipDir()
				}
				continue
			}
			if isDir && opts.MaxDepth >= 0 && entry.Depth >= opts.MaxDepth {
				walker.SkipDir()
			}

			if !yield(entry, nil) {
				return
			}
		}
	}
}

// rootSymlink returns the Lstat info of root when root is a symbolic link
// that resolves to a directory, and nil otherwise.
func rootSymlink(root string, fileSystem krfs.FileSystem) os.FileInfo {
	info, err := fileSystem.Lstat(root)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	target, err := os.Stat(root)
	if err != nil || !target.IsDir() {
		return nil
	}
	return info
}

// followRootFS resolves the root through its symbolic link so the walker
// descends into the target directory.
type followRootFS struct {
	krfs.FileSystem
	root string
}

func (f followRootFS) Lstat(name string) (os.FileInfo, error) {
	if name == f.root {
		return os.Stat(name)
	}
	return f.FileSystem.Lstat(name)
}

func newEntry(root, path string, info os.FileInfo) Entry {
	entry := Entry{
		Path:    path,
		RelPath: ".",
		Info:    info,
		Kind:    types.KindOf(info.Mode()),
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return entry
	}
	entry.RelPath = filepath.ToSlash(rel)
	entry.Depth = strings.Count(entry.RelPath, "/") + 1
	return entry
}
