package tools

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Registry is an immutable name-keyed set of tools.
type Registry struct {
	ordered []Tool
	byName  map[string]Tool
}

// NewRegistry indexes tools by name. Empty and duplicate names are rejected.
func NewRegistry(tools ...Tool) (*Registry, error) {
	for _, t := range tools {
		if t == nil {
			return nil, errors.New("tool is nil")
		}
		if t.Definition().Name == "" {
			return nil, errors.New("tool name is empty")
		}
	}
	name := func(t Tool) string { return t.Definition().Name }
	if dups := lo.FindDuplicatesBy(tools, name); len(dups) > 0 {
		return nil, fmt.Errorf("tool %s already registered", name(dups[0]))
	}
	return &Registry{
		ordered: tools,
		byName:  lo.KeyBy(tools, name),
	}, nil
}

// Default returns the registry wired for the agent: read_file, list_files, edit_file.
func Default() *Registry {
	r, err := NewRegistry(ReadFile{}, ListFiles{}, EditFile{})
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Definitions returns the tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	return lo.Map(r.ordered, func(t Tool, _ int) Definition { return t.Definition() })
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.ordered) }
