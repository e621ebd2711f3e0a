// Package version records the build fingerprint of the slate binary. The
// release scripts stamp the variables through -ldflags; a source build keeps
// the -dev defaults.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colorized renders Version with each semver component in its own color.
// Anything past the patch component (a pre-release suffix, or a version that
// is not dotted semver at all) passes through unstyled.
func Colorized() string {
	head, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(head, ".")
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." +
		minorColor.Sprint(parts[1]) + "." +
		patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
