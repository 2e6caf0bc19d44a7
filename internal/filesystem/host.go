package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	krfs "github.com/kr/fs"
)

var _ krfs.FileSystem = hostFS{}

// hostFS is the operating system's filesystem. Join does not clean its
// result, so a root of "." yields "./name" and "dir/" yields "dir/name".
type hostFS struct{}

func (hostFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, ok := entryInfo(entry)
		if !ok {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// entryInfo returns the Lstat info of entry. When that fails, the type bits
// from the directory listing stand in, so one unreadable child does not hide
// its siblings. Entries removed since the listing are dropped.
func entryInfo(entry fs.DirEntry) (os.FileInfo, bool) {
	info, err := entry.Info()
	if err == nil {
		return info, true
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false
	}
	return direntInfo{entry}, true
}

// direntInfo is an os.FileInfo carrying only a name and type bits.
type direntInfo struct {
	entry fs.DirEntry
}

func (d direntInfo) Name() string       { return d.entry.Name() }
func (d direntInfo) Size() int64        { return 0 }
func (d direntInfo) Mode() fs.FileMode  { return d.entry.Type() }
func (d direntInfo) ModTime() time.Time { return time.Time{} }
func (d direntInfo) IsDir() bool        { return d.entry.IsDir() }
func (d direntInfo) Sys() any           { return nil }

func (hostFS) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

func (hostFS) Join(elem ...string) string {
	var b strings.Builder
	for i, e := range elem {
		if i > 0 && b.Len() > 0 && !os.IsPathSeparator(b.String()[b.Len()-1]) {
			b.WriteByte(os.PathSeparator)
		}
		b.WriteString(e)
	}
	return b.String()
}
