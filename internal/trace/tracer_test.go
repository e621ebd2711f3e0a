package trace

import (
	"strings"
	"testing"
	"time"
)

func TestLevel_ShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeHost, false},
		{LevelHost, ScopeHost, true},
		{LevelHost, ScopeExtension, false},
		{LevelDebug, ScopeExtension, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("host"); err != nil || lvl != LevelHost {
		t.Errorf("ParseLevel(host) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) should fail")
	}
}

func TestStreamTracer_FiltersByScope(t *testing.T) {
	var sb strings.Builder
	tr := NewStreamTracer(&sb, LevelPhase)

	tr.Emit(Event{Time: time.Now(), Scope: ScopePhase, Name: "emit"})
	tr.Emit(Event{Time: time.Now(), Scope: ScopeHost, Name: "resolve", Detail: "./util"})

	out := sb.String()
	if !strings.Contains(out, "phase emit") {
		t.Errorf("phase event missing from output: %q", out)
	}
	if strings.Contains(out, "resolve") {
		t.Errorf("host event should be filtered at phase level: %q", out)
	}
}
