// Package extension defines the plugin model: a capability bundle with up to
// four optional hooks around the compilation pipeline, plus the registry and
// loader that turn descriptor entries into live extensions.
package extension

import (
	"slate/internal/diag"
	"slate/internal/engine"
)

// Config is the per-extension configuration bag from the project descriptor.
type Config map[string]any

// GenDir returns the configured output directory for generated sources, or
// "" when the extension did not set one.
func (c Config) GenDir() string {
	if v, ok := c["genDir"].(string); ok {
		return v
	}
	return ""
}

// String returns the string value for key, or "" when absent or not a string.
func (c Config) String(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the integer value for key. TOML decodes integers as int64.
func (c Config) Int(key string, def int) int {
	switch v := c[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// PreProcessResult is what a preProcess hook returns: the rewritten source
// text and any diagnostics the rewrite produced.
type PreProcessResult struct {
	Content     string
	Diagnostics []diag.Diagnostic
}

// WriteFunc is the callback handed to codegen hooks. The path is relative to
// the extension's generation directory; the write is synchronous.
type WriteFunc func(relPath, content string) error

// Hooks holds an extension's hook implementations. Every field is optional;
// a nil field means the capability is absent.
type Hooks struct {
	// PreProcess rewrites unit source text before parsing. The unit is the
	// base host's parse of the in-progress text; prog is the surrounding
	// program and may be consulted but not mutated.
	PreProcess func(prog engine.Program, unit *engine.Unit) PreProcessResult
	// PostProcess rewrites emitted artifact text before it is persisted.
	PostProcess func(destPath, content string) string
	// Codegen produces new input artifacts through write, outside normal
	// emission.
	Codegen func(write WriteFunc) error
	// Check runs extra static analysis. It has no return value; a fatal
	// condition is signaled by panicking, which aborts the run.
	Check func()
}

// Caps records which hooks an extension implements. Capabilities are fixed
// at load time and checked once per pipeline phase, never per call.
type Caps struct {
	PreProcess  bool
	PostProcess bool
	Codegen     bool
	Check       bool
}

// Extension is one loaded plugin: identity, configuration, capabilities, and
// hooks. Extensions live for the process lifetime.
type Extension struct {
	Name   string
	Path   string // resolved load location, "builtin:<name>" for built-ins
	Config Config
	Caps   Caps

	hooks Hooks
}

// New builds an Extension from its hooks, deriving the capability flags.
func New(name, path string, cfg Config, hooks Hooks) *Extension {
	if cfg == nil {
		cfg = Config{}
	}
	return &Extension{
		Name:   name,
		Path:   path,
		Config: cfg,
		Caps: Caps{
			PreProcess:  hooks.PreProcess != nil,
			PostProcess: hooks.PostProcess != nil,
			Codegen:     hooks.Codegen != nil,
			Check:       hooks.Check != nil,
		},
		hooks: hooks,
	}
}

// PreProcess invokes the preProcess hook. Caller must have checked Caps.
func (e *Extension) PreProcess(prog engine.Program, unit *engine.Unit) PreProcessResult {
	return e.hooks.PreProcess(prog, unit)
}

// PostProcess invokes the postProcess hook. Caller must have checked Caps.
func (e *Extension) PostProcess(destPath, content string) string {
	return e.hooks.PostProcess(destPath, content)
}

// Codegen invokes the codegen hook. Caller must have checked Caps.
func (e *Extension) Codegen(write WriteFunc) error {
	return e.hooks.Codegen(write)
}

// Check invokes the check hook. Caller must have checked Caps.
func (e *Extension) Check() {
	e.hooks.Check()
}
