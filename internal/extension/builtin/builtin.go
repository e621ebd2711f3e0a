// Package builtin registers the extensions that ship with the compiler.
// Importing the package for side effects makes them loadable by name from
// the project descriptor.
package builtin

import (
	"fmt"
	"strings"

	"slate/internal/diag"
	"slate/internal/engine"
	"slate/internal/extension"
)

func init() {
	extension.Register("pragma-strip", newPragmaStrip)
	extension.Register("banner", newBanner)
	extension.Register("scaffold", newScaffold)
}

// pragma-strip removes tool-directive lines before parsing. Lines whose
// trimmed form starts with the configured prefix (default "#") are replaced
// by empty lines so positions in later diagnostics stay stable.
func newPragmaStrip(cfg extension.Config) (extension.Hooks, error) {
	prefix := cfg.String("prefix")
	if prefix == "" {
		prefix = "#"
	}
	return extension.Hooks{
		PreProcess: func(_ engine.Program, unit *engine.Unit) extension.PreProcessResult {
			var out strings.Builder
			stripped := 0
			for line := range strings.Lines(unit.Text) {
				if strings.HasPrefix(strings.TrimSpace(line), prefix) {
					stripped++
					if strings.HasSuffix(line, "\n") {
						out.WriteByte('\n')
					}
					continue
				}
				out.WriteString(line)
			}
			res := extension.PreProcessResult{Content: out.String()}
			if stripped > 0 {
				res.Diagnostics = append(res.Diagnostics, diag.New(diag.SevInfo,
					diag.ExtPreProcess,
					fmt.Sprintf("stripped %d pragma line(s)", stripped)).In(unit.Path))
			}
			return res
		},
	}, nil
}

// banner prepends a comment line to every emitted artifact.
func newBanner(cfg extension.Config) (extension.Hooks, error) {
	text := cfg.String("text")
	if text == "" {
		text = "generated by slate"
	}
	return extension.Hooks{
		PostProcess: func(_ string, content string) string {
			return "// " + text + "\n" + content
		},
	}, nil
}

// scaffold writes one configured file during codegen. It exists mainly to
// seed generated-source directories from the descriptor.
func newScaffold(cfg extension.Config) (extension.Hooks, error) {
	file := cfg.String("file")
	if file == "" {
		return extension.Hooks{}, fmt.Errorf("scaffold: missing required %q config key", "file")
	}
	content := cfg.String("content")
	return extension.Hooks{
		Codegen: func(write extension.WriteFunc) error {
			return write(file, content)
		},
	}, nil
}
