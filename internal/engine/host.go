package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"slate/internal/source"
	"slate/internal/trace"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CompilerHost is the default Host over the local file system.
type CompilerHost struct {
	opts   Options
	files  *source.FileSet
	tracer trace.Tracer
	cache  *ResolutionCache
}

// NewHost builds the default host for the given options.
func NewHost(opts Options, tracer trace.Tracer) *CompilerHost {
	if tracer == nil {
		tracer = trace.Nop
	}
	h := &CompilerHost{
		opts:   opts,
		files:  source.NewFileSetWithBase(opts.BasePath),
		tracer: tracer,
	}
	if opts.ResolutionCache {
		cache, err := OpenResolutionCache("slate")
		if err != nil {
			h.Trace(fmt.Sprintf("resolution cache unavailable: %v", err))
		} else {
			h.cache = cache
		}
	}
	return h
}

// GetUnit loads path from disk, normalizes BOM/CRLF, and parses it.
func (h *CompilerHost) GetUnit(path string) (*Unit, error) {
	trace.Point(h.tracer, trace.ScopeHost, "read", path)
	id, err := h.files.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	f := h.files.Get(id)
	u := ParseUnit(path, string(f.Content))
	u.HadBOM = f.HadBOM()
	return u, nil
}

// FileExists reports whether path names an existing regular file.
func (h *CompilerHost) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DefaultLibDir returns the configured library location.
func (h *CompilerHost) DefaultLibDir() string {
	return h.opts.LibDir
}

// CurrentDirectory returns the project base path.
func (h *CompilerHost) CurrentDirectory() string {
	return h.opts.BasePath
}

// UseCaseSensitiveFileNames reports the platform's file name handling.
func (h *CompilerHost) UseCaseSensitiveFileNames() bool {
	return h.opts.CaseSensitive
}

// NewLine returns the configured line-ending convention.
func (h *CompilerHost) NewLine() string {
	return h.opts.NewLine
}

// Trace forwards msg to the host tracer.
func (h *CompilerHost) Trace(msg string) {
	trace.Point(h.tracer, trace.ScopeHost, "trace", msg)
}

// WriteFile persists data at path, creating parent directories and
// prepending a UTF-8 BOM when requested.
func (h *CompilerHost) WriteFile(path string, data []byte, writeBOM bool) error {
	trace.Point(h.tracer, trace.ScopeHost, "write", path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create output dir for %q: %w", path, err)
	}
	out := data
	if writeBOM {
		out = make([]byte, 0, len(utf8BOM)+len(data))
		out = append(out, utf8BOM...)
		out = append(out, data...)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// ResolveModuleNames resolves each specifier relative to containingFile.
// Unresolvable specifiers are dropped from the result.
func (h *CompilerHost) ResolveModuleNames(specifiers []string, containingFile string) []ResolvedModule {
	resolved := make([]ResolvedModule, 0, len(specifiers))
	for _, spec := range specifiers {
		path, ok := h.resolveOne(spec, containingFile)
		if !ok {
			trace.Point(h.tracer, trace.ScopeHost, "resolve-miss", spec)
			continue
		}
		trace.Point(h.tracer, trace.ScopeHost, "resolve", spec+" -> "+path)
		resolved = append(resolved, ResolvedModule{Specifier: spec, Path: path})
	}
	return resolved
}

func (h *CompilerHost) resolveOne(spec, containingFile string) (string, bool) {
	if h.cache != nil {
		if path, ok := h.cache.Get(spec, containingFile, h.opts.BasePath); ok && h.FileExists(path) {
			return path, true
		}
	}
	path, ok := ResolveModuleName(spec, containingFile, h.opts, h)
	if ok && h.cache != nil {
		if err := h.cache.Put(spec, containingFile, h.opts.BasePath, path); err != nil {
			h.Trace(fmt.Sprintf("resolution cache write failed: %v", err))
		}
	}
	return path, ok
}
