package registry

import (
	"sync/atomic"

	"github.com/aretw0/mold/pkg/schema"
)

// ResolveFunc produces the target of a TypeRef.
type ResolveFunc func() (schema.Type, error)

// TypeRef is a Type standing in for another one that may not exist yet.
// The target is resolved on first use and kept from then on.
type TypeRef struct {
	name    string
	resolve ResolveFunc
	target  atomic.Pointer[target]
}

type target struct {
	t schema.Type
}

// NewTypeRef creates a reference whose target is produced by resolve.
func NewTypeRef(name string, resolve ResolveFunc) *TypeRef {
	return &TypeRef{name: name, resolve: resolve}
}

// Resolve returns the target type. Concurrent first calls may all run the
// resolver, but only the first published result is ever returned. A failed
// resolution is not remembered.
func (r *TypeRef) Resolve() (schema.Type, error) {
	if p := r.target.Load(); p != nil {
		return p.t, nil
	}
	t, err := r.resolve()
	if err != nil {
		return nil, err
	}
	r.target.CompareAndSwap(nil, &target{t: t})
	return r.target.Load().t, nil
}

// Ref returns the name the reference was created with.
func (r *TypeRef) Ref() string { return r.name }

// Name returns the target's name, or the reference name while the target
// cannot be resolved.
func (r *TypeRef) Name() string {
	t, err := r.Resolve()
	if err != nil {
		return r.name
	}
	return t.Name()
}

func (r *TypeRef) Load(data any, vctx any) (any, error) {
	t, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	return t.Load(data, vctx)
}

func (r *TypeRef) Dump(value any, vctx any) (any, error) {
	t, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	return t.Dump(value, vctx)
}
