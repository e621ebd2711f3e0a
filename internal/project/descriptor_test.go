package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDescriptor(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DescriptorName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindDescriptor(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, "[build]\ninputs = [\"main.sl\"]\n")

	t.Run("directory resolves to fixed name", func(t *testing.T) {
		got, err := FindDescriptor(dir)
		if err != nil {
			t.Fatal(err)
		}
		if got != path {
			t.Errorf("FindDescriptor(dir) = %q, want %q", got, path)
		}
	})

	t.Run("file taken as-is", func(t *testing.T) {
		got, err := FindDescriptor(path)
		if err != nil {
			t.Fatal(err)
		}
		if got != path {
			t.Errorf("FindDescriptor(file) = %q, want %q", got, path)
		}
	})

	t.Run("missing descriptor", func(t *testing.T) {
		if _, err := FindDescriptor(t.TempDir()); err == nil {
			t.Error("expected error for directory without descriptor")
		}
	})
}

func TestLoadDescriptor_StripsExtensionsInOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, `
[build]
inputs = ["main.sl"]
out_dir = "dist"

[extensions.zeta]
genDir = "gen/zeta"

[extensions.alpha]
mode = "fast"
`)

	desc, err := LoadDescriptor(path)
	if err != nil {
		t.Fatal(err)
	}
	if desc.Build.OutDir != "dist" {
		t.Errorf("OutDir = %q", desc.Build.OutDir)
	}
	if len(desc.Extensions) != 2 {
		t.Fatalf("got %d extensions, want 2", len(desc.Extensions))
	}
	// declaration order, not lexical order
	if desc.Extensions[0].Name != "zeta" || desc.Extensions[1].Name != "alpha" {
		t.Errorf("order = [%s %s], want [zeta alpha]",
			desc.Extensions[0].Name, desc.Extensions[1].Name)
	}
	if desc.Extensions[0].Config["genDir"] != "gen/zeta" {
		t.Errorf("zeta config = %+v", desc.Extensions[0].Config)
	}
	if desc.Extensions[1].Config["mode"] != "fast" {
		t.Errorf("alpha config = %+v", desc.Extensions[1].Config)
	}
}

func TestLoadDescriptor_MissingBuild(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, "[extensions.x]\n")
	if _, err := LoadDescriptor(path); err == nil {
		t.Error("expected error for descriptor without [build]")
	}
}
