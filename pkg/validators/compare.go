package validators

import (
	"cmp"
	"math"
	"reflect"
	"time"
	"unicode/utf8"
)

type numKind int

const (
	notNumber numKind = iota
	signed
	unsigned
	floating
)

type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func asNumber(v any) number {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: signed, i: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: unsigned, u: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return number{kind: floating, f: rv.Float()}
	}
	return number{}
}

func (n number) float() float64 {
	switch n.kind {
	case signed:
		return float64(n.i)
	case unsigned:
		return float64(n.u)
	}
	return n.f
}

func (n number) isNaN() bool { return n.kind == floating && math.IsNaN(n.f) }

func compareNumbers(a, b number) int {
	switch {
	case a.kind == signed && b.kind == signed:
		return cmp.Compare(a.i, b.i)
	case a.kind == unsigned && b.kind == unsigned:
		return cmp.Compare(a.u, b.u)
	case a.kind == signed && b.kind == unsigned:
		if a.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.i), b.u)
	case a.kind == unsigned && b.kind == signed:
		return -compareNumbers(b, a)
	}
	return cmp.Compare(a.float(), b.float())
}

// compare orders two values. Numbers of any Go numeric type compare with
// each other; strings, times and durations compare with their own kind.
// NaN has no order and is not comparable.
func compare(a, b any) (int, bool) {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return ta.Compare(tb), true
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		if !ok {
			return 0, false
		}
		return cmp.Compare(sa, sb), true
	}
	na, nb := asNumber(a), asNumber(b)
	if na.kind == notNumber || nb.kind == notNumber || na.isNaN() || nb.isNaN() {
		return 0, false
	}
	return compareNumbers(na, nb), true
}

// equal is membership equality: numbers equal across types, everything else
// by deep equality.
func equal(a, b any) bool {
	na, nb := asNumber(a), asNumber(b)
	if na.kind != notNumber && nb.kind != notNumber {
		return compareNumbers(na, nb) == 0
	}
	return reflect.DeepEqual(a, b)
}

func contains(list []any, v any) bool {
	for _, item := range list {
		if equal(item, v) {
			return true
		}
	}
	return false
}

// length returns the rune count of strings and the element count of
// collections.
func length(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	}
	return 0, false
}

func sequence(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true
	}
	return reflect.Value{}, false
}

// hashKey canonicalizes numbers so 1, int64(1) and 1.0 collide.
func hashKey(v any) any {
	n := asNumber(v)
	switch n.kind {
	case signed:
		return n.i
	case unsigned:
		if n.u <= math.MaxInt64 {
			return int64(n.u)
		}
		return n.u
	case floating:
		if n.f == math.Trunc(n.f) && math.Abs(n.f) < 1<<63 {
			return int64(n.f)
		}
		return n.f
	}
	return v
}
