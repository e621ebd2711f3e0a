// Package engine provides the compilation engine contract the slate driver
// orchestrates around: a Host capability bundle, a Program over a closed set
// of units, module-name resolution, and emission.
//
// The reference implementation here is deliberately small. Units are scanned
// line by line for import statements; emission copies unit text into the
// output directory. The driver's value is in the hosts and the pipeline, not
// in language semantics.
package engine
