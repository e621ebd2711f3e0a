// Package pipeline drives one full compilation run: descriptor resolution,
// extension loading, host and program construction, codegen, the staged
// diagnostic checks, extension checks, and emission.
package pipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageConfig covers descriptor location and option resolution.
	StageConfig Stage = "config"
	// StageExtensions covers extension loading.
	StageExtensions Stage = "extensions"
	// StageProgram covers host and program construction.
	StageProgram Stage = "program"
	// StageCodegen covers the codegen hooks.
	StageCodegen Stage = "codegen"
	// StageCheck covers diagnostic collection and the check hooks.
	StageCheck Stage = "check"
	// StageEmit covers artifact emission.
	StageEmit Stage = "emit"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusWorking indicates the stage is in progress.
	StatusWorking Status = "working"
	// StatusDone indicates the stage completed.
	StatusDone Status = "done"
	// StatusError indicates the stage aborted the run.
	StatusError Status = "error"
)

// Event reports progress for a stage (or for one unit when File is set).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations for one run.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}

// Stages lists every stage in pipeline order.
func Stages() []Stage {
	return []Stage{StageConfig, StageExtensions, StageProgram, StageCodegen, StageCheck, StageEmit}
}
