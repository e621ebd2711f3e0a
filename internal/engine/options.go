package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"slate/internal/diag"
)

const (
	// SourceExt is the extension of compilable units.
	SourceExt = ".sl"
	// DeclExt marks declaration-only units, exempt from preprocessing and emission.
	DeclExt = ".d.sl"
	// OutExt is the extension of emitted artifacts.
	OutExt = ".out"
)

// IsDeclarationPath reports whether path names a declaration-only unit.
func IsDeclarationPath(path string) bool {
	return strings.HasSuffix(path, DeclExt)
}

// Options are the resolved engine-level options for one run.
type Options struct {
	// BasePath is the absolute project root all relative paths resolve against.
	BasePath string
	// OutDir is the absolute output directory for emitted artifacts.
	OutDir string
	// LibDir is the default library location for bare import specifiers.
	LibDir string
	// NewLine is the line-ending convention for emitted artifacts.
	NewLine string
	// CaseSensitive reflects the host file system's name handling.
	CaseSensitive bool
	// ResolutionCache enables the persistent module-resolution cache.
	ResolutionCache bool
}

// BuildConfig is the engine-relevant part of the project descriptor, already
// stripped of the extensions block.
type BuildConfig struct {
	Inputs  []string `toml:"inputs"`
	OutDir  string   `toml:"out_dir"`
	LibDir  string   `toml:"lib_dir"`
	NewLine string   `toml:"newline"`
}

// ResolveOptions validates a BuildConfig against basePath and returns the
// resolved options, the absolute root input list, and any option-level
// diagnostics. Diagnostics do not stop resolution; the caller decides when to
// abort.
func ResolveOptions(cfg BuildConfig, basePath string) (Options, []string, []diag.Diagnostic) {
	var diags []diag.Diagnostic

	opts := Options{
		BasePath:      basePath,
		NewLine:       "\n",
		CaseSensitive: runtime.GOOS != "windows" && runtime.GOOS != "darwin",
	}

	switch cfg.NewLine {
	case "", "lf":
	case "crlf":
		opts.NewLine = "\r\n"
	default:
		diags = append(diags, diag.NewError(diag.OptInvalidValue,
			fmt.Sprintf("newline must be \"lf\" or \"crlf\", got %q", cfg.NewLine)))
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	if filepath.IsAbs(outDir) {
		diags = append(diags, diag.NewError(diag.OptBadOutDir,
			fmt.Sprintf("out_dir must be relative to the project root, got %q", outDir)))
	}
	opts.OutDir = filepath.Join(basePath, outDir)

	libDir := cfg.LibDir
	if libDir == "" {
		libDir = "lib"
	}
	opts.LibDir = filepath.Join(basePath, libDir)

	if len(cfg.Inputs) == 0 {
		diags = append(diags, diag.NewError(diag.CfgNoInputs, "descriptor declares no inputs"))
	}

	inputs := make([]string, 0, len(cfg.Inputs))
	for _, in := range cfg.Inputs {
		abs := in
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(basePath, filepath.FromSlash(in))
		}
		if _, err := os.Stat(abs); err != nil {
			diags = append(diags, diag.NewError(diag.OptInputNotFound,
				fmt.Sprintf("input %q does not exist", in)))
			continue
		}
		inputs = append(inputs, abs)
	}

	return opts, inputs, diags
}
