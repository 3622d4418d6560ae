package validators_test

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mold/pkg/callable"
	"github.com/aretw0/mold/pkg/schema"
	"github.com/aretw0/mold/pkg/validators"
)

func messages(t *testing.T, err error) any {
	t.Helper()
	require.Error(t, err)
	ve, ok := schema.AsValidationError(err)
	require.True(t, ok, "want *schema.ValidationError, got %T", err)
	return ve.Messages
}

func TestPredicate(t *testing.T) {
	v := validators.Predicate(callable.PredicateFunc(func(value any) bool { return value != nil }))
	assert.NoError(t, v.Validate("x", nil))
	assert.Equal(t, "Invalid data", messages(t, v.Validate(nil, nil)))

	custom := validators.Predicate(
		callable.PredicateFunc(func(value any) bool { return value.(int)%2 == 0 }),
		validators.WithError("{data} is odd"),
	)
	assert.Equal(t, "3 is odd", messages(t, custom.Validate(3, nil)))
}

func TestPredicateContext(t *testing.T) {
	owner := validators.Predicate(callable.ContextPredicateFunc(func(value, vctx any) bool {
		return value == vctx
	}))
	assert.NoError(t, owner.Validate("ada", "ada"))
	assert.Error(t, owner.Validate("ada", "grace"))
}

func TestRange(t *testing.T) {
	tests := []struct {
		name  string
		v     *validators.RangeValidator
		value any
		want  any
	}{
		{"within", validators.Range(validators.Min(1), validators.Max(10)), 5, nil},
		{"at min", validators.Range(validators.Min(1), validators.Max(10)), 1, nil},
		{"at max", validators.Range(validators.Min(1), validators.Max(10)), 10, nil},
		{"below", validators.Range(validators.Min(1), validators.Max(10)), 0, "Value should be at least 1 and at most 10"},
		{"above", validators.Range(validators.Min(1), validators.Max(10)), 11, "Value should be at least 1 and at most 10"},
		{"min only", validators.Range(validators.Min(1)), 0, "Value should be at least 1"},
		{"max only", validators.Range(validators.Max(1)), 2, "Value should be at most 1"},
		{"no bounds", validators.Range(), -100, nil},
		{"float against int", validators.Range(validators.Min(1)), 0.5, "Value should be at least 1"},
		{"int64 against float", validators.Range(validators.Max(2.5)), int64(2), nil},
		{"unsigned", validators.Range(validators.Min(-1)), uint8(0), nil},
		{"strings", validators.Range(validators.Min("b")), "a", "Value should be at least b"},
		{"not comparable", validators.Range(validators.Min(1)), "x", "Value is not comparable"},
		{"nan below min", validators.Range(validators.Min(0)), math.NaN(), "Value is not comparable"},
		{"nan above max", validators.Range(validators.Max(0)), math.NaN(), "Value is not comparable"},
		{"nan bound", validators.Range(validators.Min(math.NaN())), 1, "Value is not comparable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate(tt.value, nil)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, messages(t, err))
		})
	}
}

func TestRangeTimes(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v := validators.Range(validators.Min(start))

	assert.NoError(t, v.Validate(start.Add(time.Hour), nil))
	assert.Error(t, v.Validate(start.Add(-time.Hour), nil))
	assert.Equal(t, "Value is not comparable", messages(t, v.Validate(42, nil)))
}

func TestRangeMessages(t *testing.T) {
	v := validators.Range(validators.Min(0), validators.Max(5), validators.WithError("{data} is out of bounds"))
	assert.Equal(t, "9 is out of bounds", messages(t, v.Validate(9, nil)))
	// WithError does not cover values that cannot be compared at all.
	assert.Equal(t, "Value is not comparable", messages(t, v.Validate("x", nil)))

	v = validators.Range(validators.Min(0), validators.WithMessages(map[string]string{"min": "{data} < {min}"}))
	assert.Equal(t, "-1 < 0", messages(t, v.Validate(-1, nil)))
}

func TestLength(t *testing.T) {
	tests := []struct {
		name  string
		v     *validators.LengthValidator
		value any
		want  any
	}{
		{"exact", validators.Length(validators.Exact(3)), "abc", nil},
		{"exact counts runes", validators.Length(validators.Exact(3)), "héé", nil},
		{"exact mismatch", validators.Length(validators.Exact(3)), "ab", "Length should be 3"},
		{"exact wins", validators.Length(validators.Exact(2), validators.MinLength(5)), "ab", nil},
		{"min", validators.Length(validators.MinLength(2)), []int{1}, "Length should be at least 2"},
		{"max", validators.Length(validators.MaxLength(1)), map[string]int{"a": 1, "b": 2}, "Length should be at most 1"},
		{"range", validators.Length(validators.MinLength(1), validators.MaxLength(2)), "", "Length should be at least 1 and at most 2"},
		{"range ok", validators.Length(validators.MinLength(1), validators.MaxLength(2)), [2]string{}, nil},
		{"no length", validators.Length(validators.MinLength(1)), 42, "Value has no length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate(tt.value, nil)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, messages(t, err))
		})
	}
}

func TestLengthSubstitutions(t *testing.T) {
	v := validators.Length(validators.MinLength(2), validators.WithMessages(map[string]string{
		"min": "{data} has {length}, want {min}",
	}))
	assert.Equal(t, "a has 1, want 2", messages(t, v.Validate("a", nil)))
}

func TestNoneOf(t *testing.T) {
	v := validators.NoneOf([]any{"root", "admin", 0})

	assert.NoError(t, v.Validate("ada", nil))
	assert.Equal(t, "Invalid data", messages(t, v.Validate("root", nil)))
	assert.Error(t, v.Validate(0.0, nil), "numbers compare across types")

	v = validators.NoneOf([]any{"root"}, validators.WithError("{data} is reserved"))
	assert.Equal(t, "root is reserved", messages(t, v.Validate("root", nil)))
}

func TestAnyOf(t *testing.T) {
	v := validators.AnyOf([]any{"a", "b"})

	assert.NoError(t, v.Validate("a", nil))
	assert.Equal(t, "Invalid choice", messages(t, v.Validate("c", nil)))

	v = validators.AnyOf([]any{"a", "b"}, validators.WithError("{data} not in {choices}"))
	assert.Equal(t, "c not in [a b]", messages(t, v.Validate("c", nil)))

	nums := validators.AnyOf([]any{1, 2})
	assert.NoError(t, nums.Validate(int64(2), nil))
	assert.NoError(t, nums.Validate(2.0, nil))
}

func TestRegexp(t *testing.T) {
	v := validators.MustRegexp(`\d+`)

	assert.Equal(t, `\d+`, v.Pattern())
	assert.NoError(t, v.Validate("123", nil))
	assert.NoError(t, v.Validate("12a", nil), "only the start of the string is anchored")
	assert.Equal(t, "String does not match expected pattern", messages(t, v.Validate("a12", nil)))
	assert.Error(t, v.Validate("", nil))
	assert.Error(t, v.Validate(123, nil), "non-strings never match")
}

func TestRegexpAlternationStaysAnchored(t *testing.T) {
	v := validators.MustRegexp(`a|b`)
	assert.NoError(t, v.Validate("bz", nil))
	assert.Error(t, v.Validate("zb", nil))
}

func TestRegexpFlags(t *testing.T) {
	v := validators.MustRegexp("abc", validators.Flags(validators.IgnoreCase))
	assert.NoError(t, v.Validate("ABCd", nil))

	v = validators.MustRegexp("a.c", validators.Flags(validators.DotAll))
	assert.NoError(t, v.Validate("a\nc", nil))

	v = validators.MustRegexp("a.c")
	assert.Error(t, v.Validate("a\nc", nil))
}

func TestRegexpErrors(t *testing.T) {
	_, err := validators.Regexp("(")
	assert.Error(t, err)
	assert.Panics(t, func() { validators.MustRegexp("(") })

	v := validators.MustRegexp(`[a-z]+`, validators.WithError("{data} does not match {regexp}"))
	assert.Equal(t, "9 does not match [a-z]+", messages(t, v.Validate("9", nil)))
}

func TestRegexpFrom(t *testing.T) {
	v := validators.RegexpFrom(regexp.MustCompile(`[a-z]+`))
	assert.NoError(t, v.Validate("abc1", nil))
	assert.Error(t, v.Validate("9a", nil))
}

func TestUnique(t *testing.T) {
	v := validators.Unique()

	assert.NoError(t, v.Validate([]int{1, 2, 3}, nil))
	assert.NoError(t, v.Validate([]any{}, nil))
	assert.Equal(t, "Values are not unique", messages(t, v.Validate([]any{1, 2, 1}, nil)))
	assert.Error(t, v.Validate([]any{1, 1.0}, nil), "numbers compare across types")
	assert.Error(t, v.Validate([]any{[]int{1}, []int{1}}, nil), "unhashable items compare deeply")
	assert.NoError(t, v.Validate([]any{[]int{1}, []int{2}, nil}, nil))
	assert.Equal(t, "Value should be collection", messages(t, v.Validate("aba", nil)))
}

func TestUniqueKey(t *testing.T) {
	v := validators.Unique(
		validators.Key(func(item any) any { return item.(map[string]any)["id"] }),
		validators.WithError("Duplicate id {key}"),
	)
	items := []any{
		map[string]any{"id": 1, "name": "a"},
		map[string]any{"id": 2, "name": "b"},
		map[string]any{"id": 1, "name": "c"},
		map[string]any{"id": 2, "name": "d"},
	}
	// Only the first duplicate is reported.
	assert.Equal(t, "Duplicate id 1", messages(t, v.Validate(items, nil)))
}

func TestUniqueKeyHoldingSlice(t *testing.T) {
	type wrap struct{ V any }
	v := validators.Unique(validators.Key(func(item any) any { return wrap{item} }))

	// The key type is comparable, but its interface field holds a slice.
	assert.NotPanics(t, func() {
		assert.Equal(t, "Values are not unique", messages(t, v.Validate([]any{[]int{1}, []int{1}}, nil)))
	})
	assert.NotPanics(t, func() {
		assert.NoError(t, v.Validate([]any{[]int{1}, []int{2}, 3, "3"}, nil))
	})
	assert.Error(t, v.Validate([]any{"a", []int{1}, "a"}, nil))
}

func TestEach(t *testing.T) {
	v := validators.Each(validators.Range(validators.Min(0)))

	assert.NoError(t, v.Validate([]int{0, 1, 2}, nil))
	want := schema.Tree{
		1: []string{"Value should be at least 0"},
		3: []string{"Value should be at least 0"},
	}
	assert.Equal(t, want, messages(t, v.Validate([]any{1, -1, 2, -3}, nil)))
	assert.Equal(t, "Value should be collection", messages(t, v.Validate(5, nil)))
}

func TestEachAccumulatesPerItem(t *testing.T) {
	v := validators.Each(validators.Length(validators.MaxLength(1)), validators.MustRegexp(`\d`))
	want := schema.Tree{
		0: []string{"Length should be at most 1", "String does not match expected pattern"},
	}
	assert.Equal(t, want, messages(t, v.Validate([]string{"ab", "1"}, nil)))
}

func TestEachPassesContext(t *testing.T) {
	v := validators.Each(validators.Predicate(callable.ContextPredicateFunc(func(value, vctx any) bool {
		return value == vctx
	})))
	assert.Equal(t, schema.Tree{1: []string{"Invalid data"}}, messages(t, v.Validate([]any{1, 2}, 1)))
}

func TestValidatorsAreReusable(t *testing.T) {
	vs := []schema.Validator{
		validators.Range(validators.Min(0)),
		validators.Length(validators.MinLength(1)),
		validators.Unique(),
		validators.Each(validators.Range(validators.Max(0))),
	}
	for _, v := range vs {
		first := v.Validate([]any{1, 1}, nil)
		second := v.Validate([]any{1, 1}, nil)
		assert.Equal(t, first, second)
	}
}

func TestTag(t *testing.T) {
	v := validators.Tag("email")
	assert.Equal(t, "email", v.Tag())
	assert.NoError(t, v.Validate("ada@example.com", nil))
	assert.Equal(t, `Value does not satisfy "email"`, messages(t, v.Validate("ada", nil)))

	v = validators.Tag("required,hexcolor", validators.WithMessages(map[string]string{
		"invalid": "{data} fails {rule}",
	}))
	assert.NoError(t, v.Validate("#fff", nil))
	assert.Equal(t, "#ggg fails hexcolor", messages(t, v.Validate("#ggg", nil)))
	assert.Equal(t, " fails required", messages(t, v.Validate("", nil)))
}

func TestTagNumbers(t *testing.T) {
	v := validators.Tag("gte=3")
	assert.NoError(t, v.Validate(5, nil))
	assert.Error(t, v.Validate(2, nil))
}

func TestParseTag(t *testing.T) {
	v, err := validators.ParseTag("uuid4")
	require.NoError(t, err)
	assert.Error(t, v.Validate("not-a-uuid", nil))

	_, err = validators.ParseTag("no_such_rule")
	assert.Error(t, err)
}

func TestValidatorsOnSchemaTypes(t *testing.T) {
	tags := schema.List(schema.String(), schema.WithValidators(
		validators.Unique(),
		validators.Each(validators.Length(validators.MinLength(2))),
	))

	_, err := tags.Load([]any{"go", "x", "go"}, nil)
	want := schema.Tree{
		schema.SchemaKey: "Values are not unique",
		1:                []string{"Length should be at least 2"},
	}
	assert.Equal(t, want, messages(t, err))
}
