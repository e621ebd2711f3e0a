package engine

import (
	"path/filepath"
	"strings"
)

// ResolveModuleName resolves one import specifier against containingFile
// under the given options, using host for existence checks.
//
// Relative specifiers ("./x", "../x") resolve against the containing file's
// directory only. Bare specifiers try the containing directory, then the
// project base path, then the default library location. Each candidate
// location is probed with the source extension first, then the declaration
// extension.
func ResolveModuleName(specifier, containingFile string, opts Options, host Host) (string, bool) {
	if specifier == "" {
		return "", false
	}

	spec := filepath.FromSlash(specifier)
	var bases []string
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		bases = []string{filepath.Dir(containingFile)}
	} else {
		bases = []string{filepath.Dir(containingFile), opts.BasePath, host.DefaultLibDir()}
	}

	for _, base := range bases {
		for _, ext := range []string{SourceExt, DeclExt} {
			candidate := filepath.Join(base, spec+ext)
			if host.FileExists(candidate) {
				abs, err := filepath.Abs(candidate)
				if err != nil {
					return candidate, true
				}
				return abs, true
			}
		}
	}
	return "", false
}
