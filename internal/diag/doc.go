// Package diag defines the diagnostic model shared by the engine, the
// extension-aware host, and the pipeline: severity-tagged messages with an
// optional file anchor, accumulated in a Bag until the driver reports them.
package diag
