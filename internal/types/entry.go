package types

import (
	"fmt"
	"io/fs"
)

// EntryType is a value accepted by --type.
type EntryType int

const (
	Directory EntryType = iota
	RegularFile
	SymbolicLink
)

// ParseEntryType parses one of the tokens "d", "f" or "l".
func ParseEntryType(token string) (EntryType, error) {
	switch token {
	case "d":
		return Directory, nil
	case "f":
		return RegularFile, nil
	case "l":
		return SymbolicLink, nil
	}
	return 0, fmt.Errorf("invalid entry type %q (want one of f, d, l)", token)
}

// String returns the command-line token for t.
func (t EntryType) String() string {
	switch t {
	case Directory:
		return "d"
	case RegularFile:
		return "f"
	case SymbolicLink:
		return "l"
	}
	return fmt.Sprintf("EntryType(%d)", int(t))
}

// Matches reports whether an entry of kind k satisfies t.
func (t EntryType) Matches(k Kind) bool {
	switch t {
	case Directory:
		return k == KindDirectory
	case RegularFile:
		return k == KindRegularFile
	case SymbolicLink:
		return k == KindSymlink
	}
	return false
}

// Kind classifies a traversed entry.
type Kind int

const (
	KindOther Kind = iota
	KindDirectory
	KindRegularFile
	KindSymlink
)

// KindOf classifies a mode as returned by Lstat.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindRegularFile
	}
	return KindOther
}

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindRegularFile:
		return "file"
	case KindSymlink:
		return "symlink"
	}
	return "other"
}
