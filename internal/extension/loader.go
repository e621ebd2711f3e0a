package extension

import (
	"fmt"
	"io"

	"slate/internal/project"
)

// Load turns descriptor declarations into live extensions, preserving
// declaration order. A declaration naming an unregistered extension, or a
// factory that fails, is reported to warn and skipped; loading never aborts
// the run, it only degrades the extension list.
func Load(decls []project.ExtensionDecl, warn io.Writer) []*Extension {
	if warn == nil {
		warn = io.Discard
	}
	exts := make([]*Extension, 0, len(decls))
	for _, decl := range decls {
		factory, ok := lookup(decl.Name)
		if !ok {
			fmt.Fprintf(warn, "warning: unknown extension %q, skipping\n", decl.Name)
			continue
		}
		hooks, err := factory(Config(decl.Config))
		if err != nil {
			fmt.Fprintf(warn, "warning: failed to load extension %q: %v\n", decl.Name, err)
			continue
		}
		exts = append(exts, New(decl.Name, "builtin:"+decl.Name, Config(decl.Config), hooks))
	}
	return exts
}
