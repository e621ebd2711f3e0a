// Package project locates and parses the slate.toml project descriptor.
// The descriptor is the engine's standard build configuration plus one
// additional top-level [extensions] table; that table is extracted here and
// never reaches the engine's option resolver.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"slate/internal/engine"
)

// DescriptorName is the fixed descriptor file name inside a project directory.
const DescriptorName = "slate.toml"

// Descriptor is a parsed slate.toml with the extensions block split off.
type Descriptor struct {
	Path       string
	Root       string
	Build      engine.BuildConfig
	Extensions []ExtensionDecl
}

// ExtensionDecl is one entry of the [extensions] table, in declaration order.
type ExtensionDecl struct {
	Name   string
	Config map[string]any
}

type rawDescriptor struct {
	Build      engine.BuildConfig        `toml:"build"`
	Extensions map[string]map[string]any `toml:"extensions"`
}

// FindDescriptor resolves a project location to a descriptor file: a file
// path is taken as-is, a directory must contain slate.toml.
func FindDescriptor(location string) (string, error) {
	if location == "" {
		location = "."
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project location: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("project location %q does not exist", location)
		}
		return "", fmt.Errorf("failed to stat %q: %w", location, err)
	}
	if !info.IsDir() {
		return abs, nil
	}
	candidate := filepath.Join(abs, DescriptorName)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no %s found in %q", DescriptorName, location)
		}
		return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
	}
	return candidate, nil
}

// LoadDescriptor parses the descriptor at path. The [extensions] table is
// extracted in declaration order; the remaining configuration is what the
// engine sees.
func LoadDescriptor(path string) (*Descriptor, error) {
	var raw rawDescriptor
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("build") {
		return nil, fmt.Errorf("%s: missing [build]", path)
	}

	desc := &Descriptor{
		Path:  path,
		Root:  filepath.Dir(path),
		Build: raw.Build,
	}
	for _, name := range extensionOrder(meta) {
		cfg := raw.Extensions[name]
		if cfg == nil {
			cfg = map[string]any{}
		}
		desc.Extensions = append(desc.Extensions, ExtensionDecl{Name: name, Config: cfg})
	}
	return desc, nil
}

// extensionOrder recovers the declaration order of [extensions] subtables
// from TOML metadata. Extensions apply in exactly this order.
func extensionOrder(meta toml.MetaData) []string {
	var order []string
	seen := make(map[string]bool)
	for _, key := range meta.Keys() {
		if len(key) < 2 || key[0] != "extensions" {
			continue
		}
		name := key[1]
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	return order
}
