package callable_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mold/pkg/callable"
)

type greeter struct{ greeting string }

func (g greeter) Greet(name string) string { return g.greeting + " " + name }

type adder struct{}

func (adder) Call(a, b int) int { return a + b }

func TestArgCount(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		want int
		ok   bool
	}{
		{"no args", func() {}, 0, true},
		{"two args", func(a, b int) {}, 2, true},
		{"variadic", func(a int, rest ...int) {}, 2, true},
		{"method value", greeter{"hi"}.Greet, 1, true},
		{"call method", adder{}, 2, true},
		{"not callable", 42, 0, false},
		{"nil", nil, 0, false},
		{"nil func", (func())(nil), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := callable.ArgCount(tt.fn)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestMakeContextAware(t *testing.T) {
	t.Run("drops the context when not declared", func(t *testing.T) {
		f := callable.MakeContextAware(func(s string) string { return strings.ToUpper(s) }, 1)
		assert.False(t, f.WantsContext())

		out, err := f.Call("abc", "ignored")
		require.NoError(t, err)
		assert.Equal(t, []any{"ABC"}, out)
	})

	t.Run("passes the context when declared", func(t *testing.T) {
		f := callable.MakeContextAware(func(s string, ctx any) string { return s + ctx.(string) }, 1)
		assert.True(t, f.WantsContext())

		out, err := f.Call("abc", "!")
		require.NoError(t, err)
		assert.Equal(t, []any{"abc!"}, out)
	})

	t.Run("nil context for an interface parameter", func(t *testing.T) {
		f := callable.MakeContextAware(func(v int, ctx any) bool { return ctx == nil }, 1)
		out, err := f.Call(1, nil)
		require.NoError(t, err)
		assert.Equal(t, []any{true}, out)
	})

	t.Run("bound method", func(t *testing.T) {
		f := callable.MakeContextAware(greeter{"hello"}.Greet, 1)
		out, err := f.Call("ada", nil)
		require.NoError(t, err)
		assert.Equal(t, []any{"hello ada"}, out)
	})

	t.Run("value with a Call method", func(t *testing.T) {
		f := callable.MakeContextAware(adder{}, 2)
		out, err := f.Call(2, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, []any{5}, out)
	})

	t.Run("not callable", func(t *testing.T) {
		f := callable.MakeContextAware("nope", 1)
		assert.False(t, f.WantsContext())
		_, err := f.Call(1, nil)
		assert.ErrorIs(t, err, callable.ErrNotCallable)
	})

	t.Run("argument type mismatch", func(t *testing.T) {
		f := callable.MakeContextAware(func(n int) int { return n }, 1)
		_, err := f.Call("x", nil)
		assert.ErrorContains(t, err, "cannot use string as int")
	})

	t.Run("argument count mismatch", func(t *testing.T) {
		f := callable.MakeContextAware(func(a, b int) int { return a + b }, 2)
		_, err := f.Call(1, nil)
		assert.ErrorContains(t, err, "want 2 arguments, got 1")
	})

	t.Run("missing context", func(t *testing.T) {
		f := callable.MakeContextAware(func() {}, 0)
		_, err := f.Call()
		assert.Error(t, err)
	})
}

func TestCallWithContext(t *testing.T) {
	out, err := callable.CallWithContext(func(a, b int, ctx any) int { return a*b + ctx.(int) }, 1, 6, 7)
	require.NoError(t, err)
	assert.Equal(t, []any{43}, out)

	out, err = callable.CallWithContext(func(a int) int { return -a }, "unused", 4)
	require.NoError(t, err)
	assert.Equal(t, []any{-4}, out)
}

func TestPredicateOf(t *testing.T) {
	t.Run("plain function", func(t *testing.T) {
		p, err := callable.PredicateOf(func(v any) bool { return v == "yes" })
		require.NoError(t, err)
		assert.True(t, p.Test("yes", nil))
		assert.False(t, p.Test("no", nil))
	})

	t.Run("function with context", func(t *testing.T) {
		p, err := callable.PredicateOf(func(v any, ctx any) bool { return v == ctx })
		require.NoError(t, err)
		assert.True(t, p.Test(1, 1))
		assert.False(t, p.Test(1, 2))
	})

	t.Run("typed parameter", func(t *testing.T) {
		p, err := callable.PredicateOf(func(s string) bool { return s != "" })
		require.NoError(t, err)
		assert.True(t, p.Test("x", nil))
		assert.False(t, p.Test("", nil))
		assert.False(t, p.Test(42, nil), "mismatched types fail the predicate")
	})

	t.Run("typed context", func(t *testing.T) {
		p, err := callable.PredicateOf(func(n int, limit int) bool { return n <= limit })
		require.NoError(t, err)
		assert.True(t, p.Test(3, 5))
		assert.False(t, p.Test(6, 5))
	})

	t.Run("existing predicate", func(t *testing.T) {
		in := callable.PredicateFunc(func(any) bool { return true })
		p, err := callable.PredicateOf(in)
		require.NoError(t, err)
		assert.True(t, p.Test(nil, nil))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := callable.PredicateOf(3)
		assert.ErrorIs(t, err, callable.ErrNotCallable)

		_, err = callable.PredicateOf(func() bool { return true })
		assert.Error(t, err)

		_, err = callable.PredicateOf(func(a, b, c any) bool { return true })
		assert.Error(t, err)

		_, err = callable.PredicateOf(func(v any) string { return "" })
		assert.ErrorContains(t, err, "must return a single bool")
	})
}
