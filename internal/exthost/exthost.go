package exthost

import (
	"slate/internal/diag"
	"slate/internal/engine"
	"slate/internal/extension"
)

// Host is the extension-aware engine.Host. It owns the run's preProcess
// diagnostic accumulator and the reverse module map; nothing else reads or
// writes them while a run is in flight.
//
// The Program slot resolves the circular construction dependency: the engine
// needs the host to build the Program, while preProcess hooks need the
// Program. The orchestrator builds the host, builds the Program through it,
// then calls SetProgram exactly once. Hooks firing during initial program
// construction see a nil program.
type Host struct {
	*DelegatingHost

	exts []*extension.Extension
	bag  *diag.Bag

	// reverse maps a resolved unit path back to the specifier that most
	// recently resolved to it. Last writer wins.
	reverse map[string]string

	prog    engine.Program
	progSet bool
}

// New wraps base with the given extensions. maxDiags caps the host-owned
// diagnostic accumulator.
func New(base engine.Host, exts []*extension.Extension, maxDiags int) *Host {
	return &Host{
		DelegatingHost: NewDelegating(base),
		exts:           exts,
		bag:            diag.NewBag(maxDiags),
		reverse:        make(map[string]string),
	}
}

// SetProgram assigns the program slot. Calling it twice, or with nil, is a
// programming error.
func (h *Host) SetProgram(p engine.Program) {
	if h.progSet {
		panic("exthost: program already set")
	}
	if p == nil {
		panic("exthost: SetProgram(nil)")
	}
	h.prog = p
	h.progSet = true
}

// Program returns the assigned program. Reading the slot before SetProgram
// is a programming error.
func (h *Host) Program() engine.Program {
	if !h.progSet {
		panic("exthost: program read before it was set")
	}
	return h.prog
}

// Diagnostics returns the preProcess diagnostics accumulated so far.
func (h *Host) Diagnostics() []diag.Diagnostic {
	return h.bag.Items()
}

// Bag returns the host-owned accumulator. The pipeline merges it into the
// run's bag so severity counts survive even past the storage cap.
func (h *Host) Bag() *diag.Bag {
	return h.bag
}

// LookupSpecifier returns the specifier that last resolved to path.
func (h *Host) LookupSpecifier(path string) (string, bool) {
	spec, ok := h.reverse[path]
	return spec, ok
}

// GetUnit retrieves a unit and threads its text through every
// preProcess-capable extension in declared order. Each extension receives
// the unit parsed from the previous extension's content and returns new
// content plus diagnostics; diagnostics from every extension accumulate, and
// the final content is re-parsed as the unit the engine sees. Declaration
// units bypass the chain entirely.
func (h *Host) GetUnit(path string) (*engine.Unit, error) {
	unit, err := h.base.GetUnit(path)
	if err != nil || unit.Declaration {
		return unit, err
	}

	current := unit
	for _, ext := range h.exts {
		if !ext.Caps.PreProcess {
			continue
		}
		res := ext.PreProcess(h.prog, current)
		h.bag.AddAll(res.Diagnostics)
		next := engine.ParseUnit(path, res.Content)
		next.HadBOM = unit.HadBOM
		current = next
	}
	return current, nil
}

// WriteFile threads content through every postProcess-capable extension,
// each consuming the previous one's output, then forwards the final content
// to the base host with the path and BOM flag untouched.
func (h *Host) WriteFile(path string, data []byte, writeBOM bool) error {
	content := string(data)
	for _, ext := range h.exts {
		if !ext.Caps.PostProcess {
			continue
		}
		content = ext.PostProcess(path, content)
	}
	return h.base.WriteFile(path, []byte(content), writeBOM)
}

// ResolveModuleNames resolves through the base host and records each
// resolution in the reverse module map. When two specifiers resolve to the
// same path, the later one overwrites the earlier entry.
func (h *Host) ResolveModuleNames(specifiers []string, containingFile string) []engine.ResolvedModule {
	resolved := h.base.ResolveModuleNames(specifiers, containingFile)
	for _, r := range resolved {
		h.reverse[r.Path] = r.Specifier
	}
	return resolved
}
