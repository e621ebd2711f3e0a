package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"slate/internal/diag"
)

type program struct {
	opts        Options
	host        Host
	units       []*Unit
	byPath      map[string]*Unit
	optionDiags []diag.Diagnostic
	globalDiags []diag.Diagnostic
	semantic    map[string][]diag.Diagnostic // unit path -> resolution diagnostics
}

// NewProgram computes the closed set of units reachable from the root inputs.
// Every source retrieval and module resolution goes through host, so a
// decorated host sees every unit exactly once. Option-level diagnostics are
// captured for later retrieval via OptionDiagnostics.
func NewProgram(inputs []string, opts Options, host Host, optionDiags []diag.Diagnostic) Program {
	p := &program{
		opts:        opts,
		host:        host,
		byPath:      make(map[string]*Unit),
		optionDiags: optionDiags,
		semantic:    make(map[string][]diag.Diagnostic),
	}

	queue := make([]string, 0, len(inputs))
	queued := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			abs = in
		}
		if !queued[abs] {
			queue = append(queue, abs)
			queued[abs] = true
		}
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		unit, err := host.GetUnit(path)
		if err != nil {
			p.globalDiags = append(p.globalDiags, diag.NewError(diag.IOLoadFileError,
				fmt.Sprintf("failed to load %q: %v", path, err)).In(path))
			continue
		}
		p.units = append(p.units, unit)
		p.byPath[path] = unit

		if len(unit.Imports) == 0 {
			continue
		}
		specs := make([]string, 0, len(unit.Imports))
		for _, imp := range unit.Imports {
			specs = append(specs, imp.Specifier)
		}
		resolved := host.ResolveModuleNames(specs, path)
		bySpec := make(map[string]string, len(resolved))
		for _, r := range resolved {
			bySpec[r.Specifier] = r.Path
		}
		for _, imp := range unit.Imports {
			target, ok := bySpec[imp.Specifier]
			if !ok {
				p.semantic[path] = append(p.semantic[path], diag.NewError(diag.SemUnresolvedImport,
					fmt.Sprintf("cannot resolve import %q", imp.Specifier)).At(path, imp.Pos))
				continue
			}
			if !queued[target] {
				queue = append(queue, target)
				queued[target] = true
			}
		}
	}

	return p
}

func (p *program) Units() []*Unit {
	return p.units
}

func (p *program) OptionDiagnostics() []diag.Diagnostic {
	return p.optionDiags
}

func (p *program) GlobalDiagnostics() []diag.Diagnostic {
	return p.globalDiags
}

func (p *program) PreEmitDiagnostics(unit *Unit) []diag.Diagnostic {
	if unit != nil {
		return p.unitDiagnostics(unit)
	}
	var all []diag.Diagnostic
	for _, u := range p.units {
		all = append(all, p.unitDiagnostics(u)...)
	}
	return all
}

func (p *program) unitDiagnostics(u *Unit) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(u.Syntax)+len(p.semantic[u.Path]))
	out = append(out, u.Syntax...)
	out = append(out, p.semantic[u.Path]...)
	return out
}

// Emit writes the artifact for unit through the host. Declaration units
// produce no artifact. A unit with pending error diagnostics is skipped.
func (p *program) Emit(unit *Unit) EmitResult {
	if unit == nil {
		var result EmitResult
		for _, u := range p.units {
			res := p.Emit(u)
			result.Diagnostics = append(result.Diagnostics, res.Diagnostics...)
			result.Skipped = result.Skipped || res.Skipped
		}
		return result
	}

	if unit.Declaration {
		return EmitResult{}
	}
	for _, d := range p.unitDiagnostics(unit) {
		if d.Severity.Fatal() {
			return EmitResult{Skipped: true}
		}
	}

	outPath := p.OutputPath(unit)
	content := unit.Text
	if p.opts.NewLine != "\n" {
		content = strings.ReplaceAll(content, "\n", p.opts.NewLine)
	}
	if err := p.host.WriteFile(outPath, []byte(content), unit.HadBOM); err != nil {
		return EmitResult{Diagnostics: []diag.Diagnostic{
			diag.NewError(diag.EmitFailed, err.Error()).In(unit.Path),
		}}
	}
	return EmitResult{}
}

// OutputPath maps a unit to its artifact location under OutDir, mirroring
// the unit's position relative to the project base path.
func (p *program) OutputPath(unit *Unit) string {
	rel, err := filepath.Rel(p.opts.BasePath, unit.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(unit.Path)
	}
	rel = strings.TrimSuffix(rel, SourceExt) + OutExt
	return filepath.Join(p.opts.OutDir, rel)
}
