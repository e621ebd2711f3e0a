package engine

import (
	"testing"

	"slate/internal/diag"
	"slate/internal/source"
)

func TestParseUnit_Imports(t *testing.T) {
	text := "import \"util\"\nlet a = 1\n  import \"./sub/helper\";\n"
	u := ParseUnit("/p/main.sl", text)

	if len(u.Syntax) != 0 {
		t.Fatalf("unexpected syntax diagnostics: %+v", u.Syntax)
	}
	if len(u.Imports) != 2 {
		t.Fatalf("got %d imports, want 2", len(u.Imports))
	}
	if u.Imports[0].Specifier != "util" {
		t.Errorf("imports[0] = %q", u.Imports[0].Specifier)
	}
	if u.Imports[0].Pos != (source.LineCol{Line: 1, Col: 1}) {
		t.Errorf("imports[0].Pos = %+v", u.Imports[0].Pos)
	}
	if u.Imports[1].Specifier != "./sub/helper" {
		t.Errorf("imports[1] = %q", u.Imports[1].Specifier)
	}
	if u.Imports[1].Pos != (source.LineCol{Line: 3, Col: 3}) {
		t.Errorf("imports[1].Pos = %+v", u.Imports[1].Pos)
	}
}

func TestParseUnit_SyntaxDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantCode diag.Code
	}{
		{name: "unquoted specifier", text: "import util\n", wantCode: diag.SynMalformedImport},
		{name: "missing specifier", text: "import\n", wantCode: diag.SynMalformedImport},
		{name: "empty specifier", text: "import \"\"\n", wantCode: diag.SynEmptyImport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ParseUnit("/p/main.sl", tt.text)
			if len(u.Imports) != 0 {
				t.Errorf("malformed import produced %d imports", len(u.Imports))
			}
			if len(u.Syntax) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(u.Syntax))
			}
			d := u.Syntax[0]
			if d.Code != tt.wantCode {
				t.Errorf("code = %v, want %v", d.Code, tt.wantCode)
			}
			if d.Severity != diag.SevError {
				t.Errorf("severity = %v, want error", d.Severity)
			}
			if !d.Anchored() || d.Pos.Line != 1 {
				t.Errorf("diagnostic not anchored to line 1: %+v", d)
			}
		})
	}
}

func TestParseUnit_DeclarationSuffix(t *testing.T) {
	if !ParseUnit("/p/types.d.sl", "").Declaration {
		t.Error("types.d.sl should be a declaration unit")
	}
	if ParseUnit("/p/types.sl", "").Declaration {
		t.Error("types.sl should not be a declaration unit")
	}
}
