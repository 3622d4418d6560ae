package validators

import "github.com/aretw0/mold/pkg/schema"

// KeyFunc extracts the uniqueness key of an item.
type KeyFunc func(item any) any

// RegexpFlag alters how a Regexp pattern is compiled.
type RegexpFlag int

const (
	// IgnoreCase matches letters case-insensitively.
	IgnoreCase RegexpFlag = 1 << iota
	// Multiline lets ^ and $ match at line boundaries.
	Multiline
	// DotAll lets . match newlines.
	DotAll
)

// Option configures a validator. Options a validator does not use are ignored.
type Option func(*options)

type options struct {
	min, max       any
	exact          *int
	minLen, maxLen *int
	err            string
	messages       map[string]string
	key            KeyFunc
	flags          RegexpFlag
}

// Min sets the lower bound of Range.
func Min(v any) Option {
	return func(o *options) {
		o.min = v
	}
}

// Max sets the upper bound of Range.
func Max(v any) Option {
	return func(o *options) {
		o.max = v
	}
}

// Exact requires an exact length. It takes priority over MinLength and
// MaxLength.
func Exact(n int) Option {
	return func(o *options) {
		o.exact = &n
	}
}

// MinLength sets the minimum length checked by Length.
func MinLength(n int) Option {
	return func(o *options) {
		o.minLen = &n
	}
}

// MaxLength sets the maximum length checked by Length.
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLen = &n
	}
}

// WithError replaces the message of every key the validator lets a single
// override cover.
func WithError(msg string) Option {
	return func(o *options) {
		o.err = msg
	}
}

// WithMessages replaces messages by key.
func WithMessages(messages map[string]string) Option {
	return func(o *options) {
		if o.messages == nil {
			o.messages = make(map[string]string, len(messages))
		}
		for k, v := range messages {
			o.messages[k] = v
		}
	}
}

// Key sets how Unique derives the uniqueness key of each item.
func Key(fn KeyFunc) Option {
	return func(o *options) {
		o.key = fn
	}
}

// Flags sets Regexp compile flags.
func Flags(f RegexpFlag) Option {
	return func(o *options) {
		o.flags = f
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// table builds the message table: defaults, then WithError routed to
// errorKeys, then WithMessages.
func (o options) table(defaults map[string]string, errorKeys ...string) schema.ErrorMessages {
	var routed map[string]string
	if o.err != "" {
		routed = make(map[string]string, len(errorKeys))
		for _, k := range errorKeys {
			routed[k] = o.err
		}
	}
	return schema.NewErrorMessages(defaults, routed, o.messages)
}
