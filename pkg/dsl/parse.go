package dsl

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/aretw0/mold/internal/compiler"
	"github.com/aretw0/mold/internal/logging"
	"github.com/aretw0/mold/pkg/callable"
	"github.com/aretw0/mold/pkg/registry"
)

// Format identifies the encoding of a definition document.
type Format = compiler.Format

const (
	FormatYAML = compiler.FormatYAML
	FormatJSON = compiler.FormatJSON
)

// Option configures how definitions are compiled.
type Option func(*config)

type config struct {
	registry   *registry.Registry
	predicates map[string]callable.Predicate
	logger     *slog.Logger
	err        error
}

// WithRegistry adds the compiled types to reg instead of a new registry.
// Definitions may then refer to types already registered in reg.
func WithRegistry(reg *registry.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithPredicate makes fn available to {predicate: name} validators. fn may
// be a callable.Predicate or any function accepted by callable.PredicateOf.
func WithPredicate(name string, fn any) Option {
	return func(c *config) {
		p, err := callable.PredicateOf(fn)
		if err != nil {
			c.err = fmt.Errorf("predicate %s: %w", name, err)
			return
		}
		c.predicates[name] = p
	}
}

// WithLogger sets the logger used to trace compilation.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{
		predicates: make(map[string]callable.Predicate),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.registry == nil {
		c.registry = registry.New(registry.WithLogger(c.logger))
	}
	return c, nil
}

// Parse compiles a definition document and returns the registry holding its
// types. Either every type is registered or none is.
func Parse(data []byte, format Format, opts ...Option) (*registry.Registry, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	doc, err := compiler.NewParser().Parse(data, format)
	if err != nil {
		return nil, err
	}

	c := newCompilation(cfg)
	names := make([]string, 0, len(doc.Types))
	for name := range doc.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.define(name, doc.Types[name]); err != nil {
			return nil, err
		}
	}
	if err := c.commit(); err != nil {
		return nil, err
	}
	return cfg.registry, nil
}

// Load reads and compiles a definition file. Files ending in .json are
// parsed as JSON, anything else as YAML.
func Load(path string, opts ...Option) (*registry.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	reg, err := Parse(data, compiler.FormatOf(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}
