package engine

import (
	"os"
	"path/filepath"
	"testing"

	"slate/internal/diag"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func testOptions(root string) Options {
	return Options{
		BasePath: root,
		OutDir:   filepath.Join(root, "out"),
		LibDir:   filepath.Join(root, "lib"),
		NewLine:  "\n",
	}
}

func TestNewProgram_ReachableClosure(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.sl":   "import \"util\"\nlet a = 1\n",
		"util.sl":   "import \"./deep/leaf\"\nlet u = 2\n",
		"deep/leaf.sl": "let l = 3\n",
		"orphan.sl": "let o = 4\n",
	})

	host := NewHost(testOptions(root), nil)
	prog := NewProgram([]string{filepath.Join(root, "main.sl")}, testOptions(root), host, nil)

	units := prog.Units()
	if len(units) != 3 {
		t.Fatalf("got %d units, want 3 (orphan must be excluded)", len(units))
	}
	if filepath.Base(units[0].Path) != "main.sl" {
		t.Errorf("units[0] = %s, want main.sl first", units[0].Path)
	}
	if len(prog.PreEmitDiagnostics(nil)) != 0 {
		t.Errorf("unexpected diagnostics: %+v", prog.PreEmitDiagnostics(nil))
	}
}

func TestNewProgram_UnresolvedImport(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.sl": "import \"missing\"\n",
	})

	opts := testOptions(root)
	host := NewHost(opts, nil)
	prog := NewProgram([]string{filepath.Join(root, "main.sl")}, opts, host, nil)

	diags := prog.PreEmitDiagnostics(nil)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Code != diag.SemUnresolvedImport {
		t.Errorf("code = %v, want SemUnresolvedImport", diags[0].Code)
	}
	if diags[0].Pos.Line != 1 {
		t.Errorf("diagnostic anchored at line %d, want 1", diags[0].Pos.Line)
	}
}

func TestResolveModuleName_DeclarationFallback(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.sl":       "",
		"types.d.sl":    "",
		"lib/std.sl":    "",
	})

	opts := testOptions(root)
	host := NewHost(opts, nil)
	containing := filepath.Join(root, "main.sl")

	if path, ok := ResolveModuleName("types", containing, opts, host); !ok || filepath.Base(path) != "types.d.sl" {
		t.Errorf("types -> %q, %v; want types.d.sl", path, ok)
	}
	if path, ok := ResolveModuleName("std", containing, opts, host); !ok || filepath.Base(path) != "std.sl" {
		t.Errorf("std -> %q, %v; want lib/std.sl", path, ok)
	}
	if _, ok := ResolveModuleName("./std", containing, opts, host); ok {
		t.Error("relative specifier must not fall back to the lib dir")
	}
}

func TestEmit_WritesArtifactsAndSkipsOnErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.sl": "let a = 1\n",
		"src/b.sl": "import broken\n",
		"types.d.sl": "let t = 0\n",
	})

	opts := testOptions(root)
	host := NewHost(opts, nil)
	inputs := []string{
		filepath.Join(root, "src/a.sl"),
		filepath.Join(root, "src/b.sl"),
		filepath.Join(root, "types.d.sl"),
	}
	prog := NewProgram(inputs, opts, host, nil)

	res := prog.Emit(nil)
	if !res.Skipped {
		t.Error("emission of unit with syntax errors must be skipped")
	}

	aOut := filepath.Join(opts.OutDir, "src", "a.out")
	data, err := os.ReadFile(aOut)
	if err != nil {
		t.Fatalf("expected artifact %s: %v", aOut, err)
	}
	if string(data) != "let a = 1\n" {
		t.Errorf("artifact content = %q", data)
	}

	if _, err := os.Stat(filepath.Join(opts.OutDir, "src", "b.out")); err == nil {
		t.Error("skipped unit must not produce an artifact")
	}
	if _, err := os.Stat(filepath.Join(opts.OutDir, "types.out")); err == nil {
		t.Error("declaration unit must not produce an artifact")
	}
}

func TestEmit_CRLFConvention(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.sl": "x\ny\n"})

	opts := testOptions(root)
	opts.NewLine = "\r\n"
	host := NewHost(opts, nil)
	prog := NewProgram([]string{filepath.Join(root, "a.sl")}, opts, host, nil)

	if res := prog.Emit(nil); res.Skipped || len(res.Diagnostics) != 0 {
		t.Fatalf("emit failed: %+v", res)
	}
	data, err := os.ReadFile(filepath.Join(opts.OutDir, "a.out"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x\r\ny\r\n" {
		t.Errorf("artifact = %q, want CRLF line endings", data)
	}
}
