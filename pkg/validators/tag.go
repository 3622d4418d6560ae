package validators

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/mold/pkg/schema"
)

var engine = validator.New(validator.WithRequiredStructEnabled())

// TagValidator checks a value against a go-playground validation tag such as
// "email", "uuid4" or "hexcolor,len=7".
type TagValidator struct {
	tag      string
	messages schema.ErrorMessages
}

// Tag returns a validator for tag. A tag naming an unknown rule fails every
// value; use ParseTag for tags that come from user input.
func Tag(tag string, opts ...Option) *TagValidator {
	o := newOptions(opts)
	return &TagValidator{
		tag:      tag,
		messages: o.table(map[string]string{"invalid": `Value does not satisfy "{tag}"`}, "invalid"),
	}
}

// ParseTag is like Tag but reports unknown rules as an error.
func ParseTag(tag string, opts ...Option) (v *TagValidator, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("tag %q: %v", tag, r)
		}
	}()
	// Tags are parsed on first use, so one dry run surfaces unknown rules.
	_ = engine.Var("", tag)
	return Tag(tag, opts...), nil
}

// Tag returns the tag being checked.
func (v *TagValidator) Tag() string { return v.tag }

func (v *TagValidator) Validate(value any, _ any) (err error) {
	defer func() {
		// Rules panic on field kinds they do not support.
		if r := recover(); r != nil {
			err = v.fail(value, "")
		}
	}()

	verr := engine.Var(value, v.tag)
	if verr == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(verr, &fieldErrs) && len(fieldErrs) > 0 {
		return v.fail(value, fieldErrs[0].Tag())
	}
	return v.fail(value, "")
}

func (v *TagValidator) fail(value any, rule string) error {
	return v.messages.Fail("invalid", map[string]any{
		"data": value,
		"tag":  v.tag,
		"rule": rule,
	})
}
