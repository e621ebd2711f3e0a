// Package trace provides lightweight tracing for the slate driver.
//
// The pipeline emits phase-boundary events and the compilation host emits
// host-level events (source reads, writes, module resolution). Tracing is off
// by default and enabled via the --trace flag:
//
//	slate build --trace=- --trace-level=phase
//
// Two implementations exist: Nop (zero overhead when disabled) and
// StreamTracer (immediate line-oriented writes to a file or stderr).
package trace
