package schema

// Validator checks an already converted value. It returns a *ValidationError
// when the value violates the rule and nil otherwise. vctx is the ambient
// validation context and may be nil.
type Validator interface {
	Validate(value any, vctx any) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(value any, vctx any) error

func (f ValidatorFunc) Validate(value any, vctx any) error {
	return f(value, vctx)
}

// RunValidators invokes every validator in order and merges all of their
// failures into a single error.
func RunValidators(validators []Validator, value any, vctx any) error {
	var b ErrorBuilder
	for _, v := range validators {
		if err := b.Collect(v.Validate(value, vctx)); err != nil {
			return err
		}
	}
	return b.Err()
}
