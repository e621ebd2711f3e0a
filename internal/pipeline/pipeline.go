package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"slate/internal/diag"
	"slate/internal/diagfmt"
	"slate/internal/engine"
	"slate/internal/extension"
	"slate/internal/exthost"
	"slate/internal/project"
	"slate/internal/trace"
)

// DefaultMaxDiagnostics caps the run's diagnostic accumulators when the
// caller does not set a limit.
const DefaultMaxDiagnostics = 256

// Request configures one pipeline run.
type Request struct {
	// Project is a descriptor file path or a directory containing slate.toml.
	Project string
	// BasePath overrides the project root; defaults to the descriptor's
	// directory.
	BasePath string
	// MaxDiagnostics caps diagnostic accumulation; 0 means
	// DefaultMaxDiagnostics.
	MaxDiagnostics int

	Stderr io.Writer

	// Tracer receives phase and host trace events; nil means no tracing.
	Tracer trace.Tracer
	// Progress receives stage events; nil means no progress reporting.
	Progress ProgressSink

	// Color enables ANSI colors in diagnostic output.
	Color bool
	// PathMode controls how file paths render in diagnostics.
	PathMode diagfmt.PathMode
	// ResolutionCache enables the persistent module-resolution cache.
	ResolutionCache bool
}

// Result is the outcome of one run.
type Result struct {
	ExitCode    int
	Timings     Timings
	EmitSkipped bool
}

type run struct {
	req    Request
	stderr io.Writer
	sink   ProgressSink
	tracer trace.Tracer
	bag    *diag.Bag
	tim    Timings
}

// Run executes one full compilation run. Every step is synchronous; the
// first error-severity diagnostic aborts the run after reporting everything
// pending. A panic escaping any extension hook is caught here, logged with
// its stack, and mapped to a non-zero exit.
func Run(req Request) (result Result) {
	if req.Stderr == nil {
		req.Stderr = os.Stderr
	}
	if req.MaxDiagnostics <= 0 {
		req.MaxDiagnostics = DefaultMaxDiagnostics
	}
	r := &run{
		req:    req,
		stderr: req.Stderr,
		sink:   req.Progress,
		tracer: req.Tracer,
		bag:    diag.NewBag(req.MaxDiagnostics),
	}
	if r.sink == nil {
		r.sink = nopSink{}
	}
	if r.tracer == nil {
		r.tracer = trace.Nop
	}

	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(r.stderr, "fatal: %v\n%s", rec, debug.Stack())
			result = Result{ExitCode: 1, Timings: r.tim}
		}
	}()

	return r.execute()
}

func (r *run) execute() Result {
	// Steps 1-2: locate and parse the descriptor; the engine never sees the
	// extensions block.
	stop := r.begin(StageConfig)
	descPath, err := project.FindDescriptor(r.req.Project)
	if err != nil {
		r.bag.Add(diag.NewError(diag.CfgNotFound, err.Error()))
		return r.abort(StageConfig)
	}
	desc, err := project.LoadDescriptor(descPath)
	if err != nil {
		r.bag.Add(diag.NewError(diag.CfgParseError, err.Error()))
		return r.abort(StageConfig)
	}

	// Step 4 (before 3 only in code order: option resolution does not depend
	// on extensions, and config diagnostics belong to the config stage).
	basePath := r.req.BasePath
	if basePath == "" {
		basePath = desc.Root
	}
	opts, inputs, optDiags := engine.ResolveOptions(desc.Build, basePath)
	opts.ResolutionCache = r.req.ResolutionCache
	stop()

	// Step 3: load extensions. Load failures degrade the list, never abort.
	stop = r.begin(StageExtensions)
	exts := extension.Load(desc.Extensions, r.stderr)
	trace.Point(r.tracer, trace.ScopePhase, "extensions",
		fmt.Sprintf("%d loaded", len(exts)))
	stop()

	// Steps 5-6: base host, extension-aware host, program, then close the
	// circular dependency by assigning the program slot exactly once.
	stop = r.begin(StageProgram)
	base := engine.NewHost(opts, r.tracer)
	host := exthost.New(base, exts, r.req.MaxDiagnostics)
	prog := engine.NewProgram(inputs, opts, host, optDiags)
	host.SetProgram(prog)

	// Step 7: option-level validation.
	r.bag.AddAll(prog.OptionDiagnostics())
	if r.bag.HasErrors() {
		return r.abort(StageProgram)
	}
	stop()

	// Step 8: codegen hooks. Output bypasses the postProcess chain; it is
	// not part of program emission.
	stop = r.begin(StageCodegen)
	for _, ext := range exts {
		if !ext.Caps.Codegen {
			continue
		}
		trace.Point(r.tracer, trace.ScopeExtension, "codegen", ext.Name)
		if err := ext.Codegen(r.codegenWriter(ext, opts)); err != nil {
			r.bag.Add(diag.NewError(diag.ExtCodegen,
				fmt.Sprintf("extension %q codegen failed: %v", ext.Name, err)))
			return r.abort(StageCodegen)
		}
	}

	// Step 9: global-level validation (unreadable roots and the like).
	r.bag.AddAll(prog.GlobalDiagnostics())
	if r.bag.HasErrors() {
		return r.abort(StageCodegen)
	}
	stop()

	// Steps 10-11: per-unit pre-emission diagnostics for every unit,
	// unconditionally, plus the host's accumulated preProcess diagnostics.
	stop = r.begin(StageCheck)
	for _, unit := range prog.Units() {
		r.bag.AddAll(prog.PreEmitDiagnostics(unit))
	}
	r.bag.Merge(host.Bag())
	if r.bag.HasErrors() {
		return r.abort(StageCheck)
	}

	// Step 12: check hooks. Return values do not exist; a fatal condition
	// surfaces as a panic caught at the Run boundary.
	for _, ext := range exts {
		if !ext.Caps.Check {
			continue
		}
		trace.Point(r.tracer, trace.ScopeExtension, "check", ext.Name)
		ext.Check()
	}
	stop()

	// Step 13: emission. Each emitted artifact flows through the host's
	// write hook and therefore the postProcess chain.
	stop = r.begin(StageEmit)
	skipped := false
	for _, unit := range prog.Units() {
		start := time.Now()
		res := prog.Emit(unit)
		r.bag.AddAll(res.Diagnostics)
		skipped = skipped || res.Skipped
		status := StatusDone
		if res.Skipped {
			status = StatusError
		}
		r.sink.OnEvent(Event{File: unit.Path, Stage: StageEmit, Status: status, Elapsed: time.Since(start)})
	}

	// Step 14: emission diagnostics abort; otherwise a skipped emission is
	// itself a failure.
	if r.bag.HasErrors() {
		return r.abort(StageEmit)
	}
	stop()

	r.report()
	exit := 0
	if skipped {
		fmt.Fprintln(r.stderr, "error: emission skipped for at least one unit")
		exit = 1
	}
	return Result{ExitCode: exit, Timings: r.tim, EmitSkipped: skipped}
}

// codegenWriter builds the write callback for one codegen-capable extension:
// relative paths land under the extension's genDir when configured, else
// under the engine's output directory.
func (r *run) codegenWriter(ext *extension.Extension, opts engine.Options) extension.WriteFunc {
	dir := opts.OutDir
	if g := ext.Config.GenDir(); g != "" {
		dir = filepath.Join(opts.BasePath, filepath.FromSlash(g))
	}
	return func(relPath, content string) error {
		dest := filepath.Join(dir, filepath.FromSlash(relPath))
		trace.Point(r.tracer, trace.ScopeExtension, "codegen-write", dest)
		if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
			return fmt.Errorf("failed to create %q: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, []byte(content), 0o600); err != nil {
			return fmt.Errorf("failed to write %q: %w", dest, err)
		}
		return nil
	}
}

// begin marks a stage as working and returns a stop function recording its
// duration and done event.
func (r *run) begin(stage Stage) func() {
	start := time.Now()
	r.sink.OnEvent(Event{Stage: stage, Status: StatusWorking})
	trace.Point(r.tracer, trace.ScopePhase, string(stage), "start")
	return func() {
		elapsed := time.Since(start)
		r.tim.Set(stage, elapsed)
		r.sink.OnEvent(Event{Stage: stage, Status: StatusDone, Elapsed: elapsed})
		trace.Point(r.tracer, trace.ScopePhase, string(stage), "done")
	}
}

// abort reports every pending diagnostic as one block and terminates the run.
func (r *run) abort(stage Stage) Result {
	r.report()
	r.sink.OnEvent(Event{Stage: stage, Status: StatusError})
	return Result{ExitCode: 1, Timings: r.tim}
}

func (r *run) report() {
	if r.bag.Len() == 0 {
		return
	}
	r.bag.Sort()
	diagfmt.Pretty(r.stderr, r.bag, diagfmt.PrettyOpts{
		Color:    r.req.Color,
		PathMode: r.req.PathMode,
		BaseDir:  r.req.BasePath,
	})
}
