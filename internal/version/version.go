package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the darwin CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders v with major, minor and patch in their own colours.
// Anything after the patch number ("-dev", "+build") stays plain. A string
// that is not "X.Y.Z..." comes back unchanged.
func Colored(v string) string {
	major, rest, ok := strings.Cut(v, ".")
	if !ok {
		return v
	}
	minor, rest, ok := strings.Cut(rest, ".")
	if !ok {
		return v
	}
	end := strings.IndexAny(rest, "-+")
	if end < 0 {
		end = len(rest)
	}
	patch, tail := rest[:end], rest[end:]
	return versionMajorColor.Sprint(major) + "." +
		versionMinorColor.Sprint(minor) + "." +
		versionPatchColor.Sprint(patch) + tail
}
