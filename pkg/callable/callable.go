package callable

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotCallable is returned when a value cannot be invoked.
var ErrNotCallable = errors.New("value is not callable")

// Predicate is a check on a value that may consult the validation context.
type Predicate interface {
	Test(value any, vctx any) bool
}

// PredicateFunc is a Predicate that never sees the context.
type PredicateFunc func(value any) bool

func (f PredicateFunc) Test(value any, _ any) bool {
	return f(value)
}

// ContextPredicateFunc is a Predicate that receives the context.
type ContextPredicateFunc func(value any, vctx any) bool

func (f ContextPredicateFunc) Test(value any, vctx any) bool {
	return f(value, vctx)
}

// ArgCount reports the number of parameters fn declares. Method values are
// already bound, so their receiver is not counted. Values that are not
// functions are inspected through their Call method, if they have one.
func ArgCount(fn any) (int, bool) {
	v, ok := function(fn)
	if !ok {
		return 0, false
	}
	return v.Type().NumIn(), true
}

func function(fn any) (reflect.Value, bool) {
	if fn == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(fn)
	if v.Kind() == reflect.Func {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		return v, true
	}
	if m := v.MethodByName("Call"); m.IsValid() {
		return m, true
	}
	return reflect.Value{}, false
}

// Func is a callable normalized to always accept a trailing context argument.
type Func struct {
	fn          reflect.Value
	withContext bool
}

// MakeContextAware adapts fn, which the caller intends to invoke with
// numArgs arguments plus a context. When fn declares no more than numArgs
// parameters the context is dropped at call time; otherwise fn receives it.
// If fn's arity cannot be determined it is assumed not to want the context.
func MakeContextAware(fn any, numArgs int) Func {
	v, _ := function(fn)
	arity := numArgs
	if v.IsValid() {
		arity = v.Type().NumIn()
	}
	return Func{fn: v, withContext: arity > numArgs}
}

// WantsContext reports whether the wrapped callable receives the context.
func (f Func) WantsContext() bool {
	return f.withContext
}

// Call invokes the callable. The last argument is the context.
func (f Func) Call(args ...any) ([]any, error) {
	if !f.fn.IsValid() {
		return nil, ErrNotCallable
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("call: missing context argument")
	}
	if !f.withContext {
		args = args[:len(args)-1]
	}

	in, err := arguments(f.fn.Type(), args)
	if err != nil {
		return nil, err
	}
	out := f.fn.Call(in)
	results := make([]any, len(out))
	for i, r := range out {
		results[i] = r.Interface()
	}
	return results, nil
}

// CallWithContext adapts fn for len(args) arguments and invokes it, passing
// vctx only if fn accepts it.
func CallWithContext(fn any, vctx any, args ...any) ([]any, error) {
	all := make([]any, 0, len(args)+1)
	all = append(all, args...)
	return MakeContextAware(fn, len(args)).Call(append(all, vctx)...)
}

func arguments(t reflect.Type, args []any) ([]reflect.Value, error) {
	n := t.NumIn()
	if t.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("call: want at least %d arguments, got %d", n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("call: want %d arguments, got %d", n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= n-1 {
			pt = t.In(n - 1).Elem()
		} else {
			pt = t.In(i)
		}
		if a == nil {
			switch pt.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
				in[i] = reflect.Zero(pt)
				continue
			}
			return nil, fmt.Errorf("call: argument %d: cannot use nil as %s", i, pt)
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("call: argument %d: cannot use %s as %s", i, av.Type(), pt)
		}
		in[i] = av
	}
	return in, nil
}

// PredicateOf turns fn into a Predicate. fn may already be a Predicate, or
// any function of one or two parameters returning bool. A one-parameter
// function never sees the context.
//
// A value whose type does not match fn's parameter fails the predicate.
func PredicateOf(fn any) (Predicate, error) {
	switch f := fn.(type) {
	case Predicate:
		return f, nil
	case func(any) bool:
		return PredicateFunc(f), nil
	case func(any, any) bool:
		return ContextPredicateFunc(f), nil
	}

	v, ok := function(fn)
	if !ok {
		return nil, fmt.Errorf("predicate %T: %w", fn, ErrNotCallable)
	}
	t := v.Type()
	if t.NumIn() < 1 || t.NumIn() > 2 || t.IsVariadic() {
		return nil, fmt.Errorf("predicate %T: want one or two parameters, got %d", fn, t.NumIn())
	}
	if t.NumOut() != 1 || t.Out(0).Kind() != reflect.Bool {
		return nil, fmt.Errorf("predicate %T: must return a single bool", fn)
	}
	return adapted{MakeContextAware(fn, 1)}, nil
}

type adapted struct {
	fn Func
}

func (a adapted) Test(value any, vctx any) bool {
	out, err := a.fn.Call(value, vctx)
	if err != nil {
		return false
	}
	return reflect.ValueOf(out[0]).Bool()
}
