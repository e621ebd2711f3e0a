// Package exthost decorates an engine.Host so that loaded extensions are
// spliced into source retrieval, artifact writing, and module resolution.
// DelegatingHost is the pure composition seam; Host layers the extension
// behavior on top of it.
package exthost

import "slate/internal/engine"

// DelegatingHost forwards every engine.Host operation to a base host,
// unchanged. Specializations embed it and override only the operations they
// care about.
type DelegatingHost struct {
	base engine.Host
}

// NewDelegating wraps base. A nil base is a programming error.
func NewDelegating(base engine.Host) *DelegatingHost {
	if base == nil {
		panic("exthost: nil base host")
	}
	return &DelegatingHost{base: base}
}

// Base returns the wrapped host.
func (d *DelegatingHost) Base() engine.Host { return d.base }

func (d *DelegatingHost) GetUnit(path string) (*engine.Unit, error) {
	return d.base.GetUnit(path)
}

func (d *DelegatingHost) FileExists(path string) bool {
	return d.base.FileExists(path)
}

func (d *DelegatingHost) DefaultLibDir() string {
	return d.base.DefaultLibDir()
}

func (d *DelegatingHost) CurrentDirectory() string {
	return d.base.CurrentDirectory()
}

func (d *DelegatingHost) UseCaseSensitiveFileNames() bool {
	return d.base.UseCaseSensitiveFileNames()
}

func (d *DelegatingHost) NewLine() string {
	return d.base.NewLine()
}

func (d *DelegatingHost) Trace(msg string) {
	d.base.Trace(msg)
}

func (d *DelegatingHost) WriteFile(path string, data []byte, writeBOM bool) error {
	return d.base.WriteFile(path, data, writeBOM)
}

func (d *DelegatingHost) ResolveModuleNames(specifiers []string, containingFile string) []engine.ResolvedModule {
	return d.base.ResolveModuleNames(specifiers, containingFile)
}
