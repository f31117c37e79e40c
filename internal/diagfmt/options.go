package diagfmt

import (
	"fmt"
	"strings"

	"darwin/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // as given on the command line
	PathModeAbsolute
	PathModeRelative // relative to FileSet.BaseDir
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// ParsePathMode converts a flag value to PathMode.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("invalid path mode: %q (expected: auto|absolute|relative|basename)", s)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	return f.FormatPath(mode.String(), fs.BaseDir())
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowLine  bool // исходная строка и подчёркивание ^~~~
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// TokenOpts configures token listings.
type TokenOpts struct {
	Color    bool
	PathMode PathMode
	// MaxTextWidth truncates token text to this many terminal columns;
	// 0 means no limit.
	MaxTextWidth int
}
