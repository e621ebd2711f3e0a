package diag

import (
	"slate/internal/source"
)

// Diagnostic is a severity-tagged message, optionally anchored to a file
// position. File == "" marks a global (option-level) diagnostic; Pos is
// meaningful only when File is set and Pos.Line > 0.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     string
	Pos      source.LineCol
}

// Anchored reports whether the diagnostic points at a file position.
func (d Diagnostic) Anchored() bool {
	return d.File != "" && d.Pos.Line > 0
}

func New(sev Severity, code Code, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: msg}
}

func NewError(code Code, msg string) Diagnostic {
	return New(SevError, code, msg)
}

func NewWarning(code Code, msg string) Diagnostic {
	return New(SevWarning, code, msg)
}

// At anchors the diagnostic to a 1-based position in file.
func (d Diagnostic) At(file string, pos source.LineCol) Diagnostic {
	d.File = file
	d.Pos = pos
	return d
}

// In attaches a file without a position (file-scoped, not line-anchored).
func (d Diagnostic) In(file string) Diagnostic {
	d.File = file
	d.Pos = source.LineCol{}
	return d
}
