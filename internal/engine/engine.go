package engine

import "slate/internal/diag"

// Host is the environment capability bundle a Program needs. The driver
// decorates the default host to splice extensions into source retrieval,
// output writing, and module resolution.
type Host interface {
	// GetUnit retrieves and parses the unit at path.
	GetUnit(path string) (*Unit, error)
	// FileExists reports whether path names an existing file.
	FileExists(path string) bool
	// DefaultLibDir returns the default library location for bare specifiers.
	DefaultLibDir() string
	// CurrentDirectory returns the directory relative paths resolve against.
	CurrentDirectory() string
	// UseCaseSensitiveFileNames reports the file system's name handling.
	UseCaseSensitiveFileNames() bool
	// NewLine returns the line-ending convention for emitted artifacts.
	NewLine() string
	// Trace emits a host-level trace message.
	Trace(msg string)
	// WriteFile persists an emitted artifact, creating parent directories.
	WriteFile(path string, data []byte, writeBOM bool) error
	// ResolveModuleNames resolves import specifiers relative to
	// containingFile. Unresolvable specifiers are dropped, so the result may
	// be shorter than the request; callers must tolerate this.
	ResolveModuleNames(specifiers []string, containingFile string) []ResolvedModule
}

// ResolvedModule pairs a requested specifier with the absolute path it
// resolved to.
type ResolvedModule struct {
	Specifier string
	Path      string
}

// Program is the closed set of units reachable from the root inputs. The
// engine owns and computes it; the driver only queries.
type Program interface {
	// Units lists every unit in the program in deterministic order.
	Units() []*Unit
	// OptionDiagnostics returns option-level diagnostics captured at
	// construction.
	OptionDiagnostics() []diag.Diagnostic
	// GlobalDiagnostics returns program-level diagnostics not tied to a
	// single unit (e.g. unreadable roots).
	GlobalDiagnostics() []diag.Diagnostic
	// PreEmitDiagnostics returns syntax and semantic diagnostics for one
	// unit, or for the whole program when unit is nil.
	PreEmitDiagnostics(unit *Unit) []diag.Diagnostic
	// Emit writes the artifact for one unit through the host, or for every
	// unit when unit is nil.
	Emit(unit *Unit) EmitResult
}

// EmitResult carries emission diagnostics and whether emission was skipped.
type EmitResult struct {
	Diagnostics []diag.Diagnostic
	Skipped     bool
}
