package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slate/internal/diag"
	"slate/internal/engine"
	"slate/internal/extension"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func runQuiet(t *testing.T, root string) (Result, string) {
	t.Helper()
	var errBuf strings.Builder
	res := Run(Request{Project: root, Stderr: &errBuf})
	return res, errBuf.String()
}

func TestRun_CleanProject(t *testing.T) {
	root := writeProject(t, map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\n",
		"main.sl":    "import \"util\"\nlet a = 1\n",
		"util.sl":    "let u = 2\n",
	})

	res, out := runQuiet(t, root)
	if res.ExitCode != 0 {
		t.Fatalf("exit = %d, output:\n%s", res.ExitCode, out)
	}
	if res.EmitSkipped {
		t.Error("nothing should be skipped")
	}
	for _, want := range []string{"out/main.out", "out/util.out"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(want))); err != nil {
			t.Errorf("missing artifact %s: %v", want, err)
		}
	}
}

func TestRun_SyntaxErrorAborts(t *testing.T) {
	root := writeProject(t, map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\n",
		"main.sl":    "import util\n",
	})

	res, out := runQuiet(t, root)
	if res.ExitCode != 1 {
		t.Fatalf("exit = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(out, "SYN") {
		t.Errorf("diagnostics not reported:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "out", "main.out")); err == nil {
		t.Error("no artifact may be emitted after an abort")
	}
}

func TestRun_MissingDescriptor(t *testing.T) {
	res, out := runQuiet(t, t.TempDir())
	if res.ExitCode != 1 {
		t.Fatalf("exit = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(out, "CFG") {
		t.Errorf("missing config diagnostic:\n%s", out)
	}
}

func TestRun_UnknownExtensionDegrades(t *testing.T) {
	root := writeProject(t, map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\n\n[extensions.does-not-exist]\n",
		"main.sl":    "let a = 1\n",
	})

	res, out := runQuiet(t, root)
	if res.ExitCode != 0 {
		t.Fatalf("unknown extension must not abort; exit = %d:\n%s", res.ExitCode, out)
	}
	if !strings.Contains(out, "does-not-exist") {
		t.Errorf("missing load warning:\n%s", out)
	}
}

func TestRun_PreProcessRewriteReachesArtifact(t *testing.T) {
	extension.Register("pipeline-test-rewrite", func(extension.Config) (extension.Hooks, error) {
		return extension.Hooks{
			PreProcess: func(_ engine.Program, unit *engine.Unit) extension.PreProcessResult {
				return extension.PreProcessResult{
					Content: strings.ReplaceAll(unit.Text, "old", "new"),
				}
			},
		}, nil
	})

	root := writeProject(t, map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\n\n[extensions.pipeline-test-rewrite]\n",
		"main.sl":    "let old = 1\n",
	})

	res, out := runQuiet(t, root)
	if res.ExitCode != 0 {
		t.Fatalf("exit = %d:\n%s", res.ExitCode, out)
	}
	data, err := os.ReadFile(filepath.Join(root, "out", "main.out"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "let new = 1\n" {
		t.Errorf("artifact = %q, want preprocessed content", data)
	}
}

func TestRun_CheckHookPanicExitsOne(t *testing.T) {
	extension.Register("pipeline-test-fatal-check", func(extension.Config) (extension.Hooks, error) {
		return extension.Hooks{
			Check: func() { panic("policy violation") },
		}, nil
	})

	root := writeProject(t, map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\n\n[extensions.pipeline-test-fatal-check]\n",
		"main.sl":    "let a = 1\n",
	})

	res, out := runQuiet(t, root)
	if res.ExitCode != 1 {
		t.Fatalf("exit = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(out, "policy violation") {
		t.Errorf("panic message not logged:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "out", "main.out")); err == nil {
		t.Error("no emission may occur after a fatal check")
	}
}

func TestRun_CodegenGenDir(t *testing.T) {
	extension.Register("pipeline-test-codegen", func(extension.Config) (extension.Hooks, error) {
		return extension.Hooks{
			Codegen: func(write extension.WriteFunc) error {
				return write("nested/gen.sl", "let g = 1\n")
			},
		}, nil
	})

	root := writeProject(t, map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\nout_dir = \"dist\"\n\n" +
			"[extensions.pipeline-test-codegen]\ngenDir = \"generated\"\n",
		"main.sl": "let a = 1\n",
	})

	res, out := runQuiet(t, root)
	if res.ExitCode != 0 {
		t.Fatalf("exit = %d:\n%s", res.ExitCode, out)
	}
	// genDir wins over the engine's out_dir
	gen := filepath.Join(root, "generated", "nested", "gen.sl")
	data, err := os.ReadFile(gen)
	if err != nil {
		t.Fatalf("missing generated file: %v", err)
	}
	if string(data) != "let g = 1\n" {
		t.Errorf("generated content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(root, "dist", "nested", "gen.sl")); err == nil {
		t.Error("generated file must not land under out_dir when genDir is set")
	}
}

func TestRun_PostProcessAppliesToEmission(t *testing.T) {
	extension.Register("pipeline-test-post", func(extension.Config) (extension.Hooks, error) {
		return extension.Hooks{
			PostProcess: func(_ string, content string) string {
				return "// header\n" + content
			},
		}, nil
	})

	root := writeProject(t, map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\n\n[extensions.pipeline-test-post]\n",
		"main.sl":    "let a = 1\n",
	})

	res, out := runQuiet(t, root)
	if res.ExitCode != 0 {
		t.Fatalf("exit = %d:\n%s", res.ExitCode, out)
	}
	data, err := os.ReadFile(filepath.Join(root, "out", "main.out"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "// header\n") {
		t.Errorf("artifact = %q, want postprocessed content", data)
	}
}

func TestRun_EmitErrorPastDiagnosticCap(t *testing.T) {
	extension.Register("pipeline-test-noisy", func(extension.Config) (extension.Hooks, error) {
		return extension.Hooks{
			PreProcess: func(_ engine.Program, unit *engine.Unit) extension.PreProcessResult {
				return extension.PreProcessResult{
					Content: unit.Text,
					Diagnostics: []diag.Diagnostic{
						diag.New(diag.SevInfo, diag.ExtPreProcess, "note one").In(unit.Path),
						diag.New(diag.SevInfo, diag.ExtPreProcess, "note two").In(unit.Path),
					},
				}
			},
		}, nil
	})

	root := writeProject(t, map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\n\n[extensions.pipeline-test-noisy]\n",
		"main.sl":    "let a = 1\n",
		// a file where the output directory should be makes emission fail
		"out": "not a directory\n",
	})

	var errBuf strings.Builder
	res := Run(Request{Project: root, Stderr: &errBuf, MaxDiagnostics: 2})
	// the info diagnostics saturate the cap before the emission error
	// arrives; the run must still fail
	if res.ExitCode != 1 {
		t.Fatalf("exit = %d, want 1:\n%s", res.ExitCode, errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "1 error(s)") {
		t.Errorf("summary must count the dropped emission error:\n%s", errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "not shown") {
		t.Errorf("drop notice missing:\n%s", errBuf.String())
	}
}

func TestRun_Timings(t *testing.T) {
	root := writeProject(t, map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\n",
		"main.sl":    "let a = 1\n",
	})

	var events []Event
	ch := make(chan Event, 64)
	done := make(chan struct{})
	go func() {
		for ev := range ch {
			events = append(events, ev)
		}
		close(done)
	}()

	var errBuf strings.Builder
	res := Run(Request{Project: root, Stderr: &errBuf, Progress: ChannelSink{Ch: ch}})
	close(ch)
	<-done

	if res.ExitCode != 0 {
		t.Fatalf("exit = %d:\n%s", res.ExitCode, errBuf.String())
	}
	seen := map[Stage]bool{}
	for _, ev := range events {
		if ev.Status == StatusDone && ev.File == "" {
			seen[ev.Stage] = true
		}
	}
	for _, stage := range Stages() {
		if !seen[stage] {
			t.Errorf("no done event for stage %s", stage)
		}
	}
}
