package extension

import (
	"fmt"
	"sort"
)

// Factory builds the hooks for one extension instance from its descriptor
// configuration. A factory error fails that extension's load only.
type Factory func(cfg Config) (Hooks, error)

var registry = map[string]Factory{}

// Register installs a factory under name. Registration happens from init
// functions before any load; a duplicate name is a programming error.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		panic("extension: Register with empty name or nil factory")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("extension: duplicate registration of %q", name))
	}
	registry[name] = f
}

// Registered lists the registered extension names, sorted.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (Factory, bool) {
	f, ok := registry[name]
	return f, ok
}
