package dsl

import (
	"fmt"

	"github.com/aretw0/mold/pkg/registry"
)

// Builder declares named types in Go with the same expressions definition
// files use.
type Builder struct {
	types map[string]*TypeBuilder
	order []string
}

// New creates a new type builder.
func New() *Builder {
	return &Builder{
		types: make(map[string]*TypeBuilder),
	}
}

// Add starts the declaration of a named type.
// If the name was already added, it returns the existing builder.
func (b *Builder) Add(name string) *TypeBuilder {
	if tb, ok := b.types[name]; ok {
		return tb
	}
	tb := &TypeBuilder{name: name}
	b.types[name] = tb
	b.order = append(b.order, name)
	return tb
}

// Build compiles every declared type into a registry. References between
// declared types are checked before anything is registered.
func (b *Builder) Build(opts ...Option) (*registry.Registry, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	c := newCompilation(cfg)
	for _, name := range b.order {
		if err := c.begin(name); err != nil {
			return nil, err
		}
		t, err := b.types[name].build(c)
		if err != nil {
			return nil, fmt.Errorf("failed to build type %s: %w", name, err)
		}
		c.finish(name, t)
	}
	if err := c.commit(); err != nil {
		return nil, err
	}
	return cfg.registry, nil
}
