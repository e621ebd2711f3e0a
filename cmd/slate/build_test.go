package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildCmd_FailedRunStillFlushesTrace(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"slate.toml": "[build]\ninputs = [\"main.sl\"]\n",
		// malformed import keeps the run from reaching emission
		"main.sl": "import util\n",
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(root, rel), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	traceFile := filepath.Join(root, "build.trace")

	defer rootCmd.SetArgs(nil)
	rootCmd.SetArgs([]string{
		"build",
		"--project", root,
		"--trace", traceFile,
		"--trace-level", "phase",
	})

	// the failing run must surface as an error return, not a process exit,
	// so the deferred trace cleanup gets to run
	err := rootCmd.Execute()
	if !errors.Is(err, errBuildFailed) {
		t.Fatalf("Execute() = %v, want errBuildFailed", err)
	}

	data, err := os.ReadFile(traceFile)
	if err != nil {
		t.Fatalf("trace file not written: %v", err)
	}
	if !strings.Contains(string(data), "config") {
		t.Errorf("trace output missing phase events:\n%s", data)
	}
}
