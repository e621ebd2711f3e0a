package engine

import (
	"fmt"
	"strings"

	"slate/internal/diag"
	"slate/internal/source"
)

// Unit is one compilation unit: a canonical path, its current text, and the
// structural representation produced by parsing that text. Units are
// immutable after ParseUnit; preprocessing produces a fresh Unit.
type Unit struct {
	Path        string
	Text        string
	Imports     []Import
	Syntax      []diag.Diagnostic
	Declaration bool
	HadBOM      bool

	lineIdx []uint32
}

// Import is a single import statement with the position of its specifier.
type Import struct {
	Specifier string
	Pos       source.LineCol
}

// Pos converts a byte offset in the unit's text to a line/column pair.
func (u *Unit) Pos(off uint32) source.LineCol {
	f := source.File{LineIdx: u.lineIdx}
	return f.Pos(off)
}

// ParseUnit builds the structural representation of text. The scanner
// recognizes lines of the form
//
//	import "specifier"
//
// with an optional trailing semicolon; everything else is opaque content.
// Malformed import lines become syntax diagnostics on the unit.
func ParseUnit(path, text string) *Unit {
	u := &Unit{
		Path:        path,
		Text:        text,
		Declaration: IsDeclarationPath(path),
	}

	lineNo := uint32(0)
	for line := range strings.Lines(text) {
		lineNo++
		trimmed := strings.TrimRight(line, "\n")
		stripped := strings.TrimSpace(trimmed)
		if !strings.HasPrefix(stripped, "import") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(stripped, "import"))
		rest = strings.TrimSuffix(rest, ";")
		rest = strings.TrimSpace(rest)

		indent := uint32(len(trimmed) - len(strings.TrimLeft(trimmed, " \t")))
		pos := source.LineCol{Line: lineNo, Col: indent + 1}

		if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
			u.Syntax = append(u.Syntax, diag.NewError(diag.SynMalformedImport,
				fmt.Sprintf("import requires a quoted specifier: %s", stripped)).At(path, pos))
			continue
		}
		spec := rest[1 : len(rest)-1]
		if spec == "" {
			u.Syntax = append(u.Syntax, diag.NewError(diag.SynEmptyImport,
				"import specifier is empty").At(path, pos))
			continue
		}
		u.Imports = append(u.Imports, Import{Specifier: spec, Pos: pos})
	}

	u.lineIdx = lineIndex(text)
	return u
}

func lineIndex(text string) []uint32 {
	idx := make([]uint32, 0, 16)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			idx = append(idx, uint32(i))
		}
	}
	return idx
}
