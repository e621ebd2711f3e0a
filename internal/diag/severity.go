package diag

// Severity ranks a diagnostic by its effect on the run. The pipeline aborts
// at the first step that sees a fatal diagnostic pending; info and warning
// diagnostics are reported but never stop a run on their own.
type Severity uint8

const (
	// SevInfo carries context (e.g. a preprocessor noting what it changed).
	SevInfo Severity = iota
	// SevWarning flags something degraded that the run survives, like a
	// skipped extension.
	SevWarning
	// SevError aborts the run at the next step boundary.
	SevError
)

// Fatal reports whether a diagnostic at this severity aborts the run.
func (s Severity) Fatal() bool {
	return s >= SevError
}

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
