// Package diagfmt renders accumulated diagnostics for humans. The pipeline
// calls it once per abort with everything pending at that point.
package diagfmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"slate/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
)

// Pretty formats diagnostics into one human-readable block.
// Expects bag.Sort() beforehand for deterministic output. Each diagnostic
// prints as:
//
//	<path>:<line>:<col>: <SEVERITY> [<ID>]: <message>
//
// File-less (global) diagnostics omit the anchor. A trailing summary line
// counts errors and warnings.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		fmt.Fprintln(w, formatOne(d, opts))
	}
	// counts come from the bag, not the stored items: diagnostics past the
	// cap are dropped from display but still counted
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", n)
	}
	errs, warns := bag.ErrorCount(), bag.WarningCount()
	if errs > 0 || warns > 0 {
		fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errs, warns)
	}
}

func formatOne(d diag.Diagnostic, opts PrettyOpts) string {
	sev := d.Severity.String()
	if opts.Color {
		switch d.Severity {
		case diag.SevError:
			sev = errColor.Sprint(sev)
		case diag.SevWarning:
			sev = warnColor.Sprint(sev)
		default:
			sev = infoColor.Sprint(sev)
		}
	}
	body := fmt.Sprintf("%s [%s]: %s", sev, d.Code.ID(), d.Message)
	switch {
	case d.Anchored():
		return fmt.Sprintf("%s:%d:%d: %s", displayPath(d.File, opts), d.Pos.Line, d.Pos.Col, body)
	case d.File != "":
		return fmt.Sprintf("%s: %s", displayPath(d.File, opts), body)
	default:
		return body
	}
}

func displayPath(path string, opts PrettyOpts) string {
	switch opts.PathMode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path

	case PathModeRelative:
		base := opts.BaseDir
		if base == "" {
			if wd, err := os.Getwd(); err == nil {
				base = wd
			}
		}
		if rel, err := filepath.Rel(base, path); err == nil {
			return rel
		}
		return path

	case PathModeBasename:
		return filepath.Base(path)

	default:
		// auto: short or relative paths as-is, long absolute ones by basename
		if len(path) < 40 || !filepath.IsAbs(path) {
			return path
		}
		return filepath.Base(path)
	}
}
