package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/mold/internal/logging"
	"github.com/aretw0/mold/pkg/schema"
)

var (
	// ErrAlreadyRegistered is returned when a name is added twice.
	ErrAlreadyRegistered = errors.New("type already registered")
	// ErrNotRegistered is returned when a reference is resolved before its
	// name has been added.
	ErrNotRegistered = errors.New("type not registered")
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to trace registrations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Registry stores named types so schemas can refer to each other before
// either is fully built.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]schema.Type
	logger *slog.Logger
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		types:  make(map[string]schema.Type),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers t under name and returns t, so a definition can be assigned
// and registered in one statement. A name can only be added once.
func (r *Registry) Add(name string, t schema.Type) (schema.Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.types[name] = t
	r.logger.Debug("type registered", "name", name, "type", t.Name())
	return t, nil
}

// MustAdd is like Add but panics on a duplicate name.
func (r *Registry) MustAdd(name string, t schema.Type) schema.Type {
	t, err := r.Add(name, t)
	if err != nil {
		panic(err)
	}
	return t
}

// Get returns a reference to name. The name does not need to be registered
// yet; it is looked up when the reference is first used.
func (r *Registry) Get(name string) *TypeRef {
	return NewTypeRef(name, func() (schema.Type, error) {
		t, ok := r.Lookup(name)
		if !ok {
			r.logger.Debug("unresolved type reference", "name", name)
			return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
		}
		return t, nil
	})
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (schema.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
