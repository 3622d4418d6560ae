package schema

// ErrorBuilder accumulates failures from the parts of one composite value so
// they can be reported together. Use one builder per validation call.
type ErrorBuilder struct {
	messages any
}

// Add records messages under a path segment. Flat messages are stored as a
// list so repeated failures at the same segment accumulate.
func (b *ErrorBuilder) Add(key any, messages any) {
	if isEmpty(messages) {
		return
	}
	if _, ok := messages.(Tree); !ok {
		messages = asList(messages)
	}
	b.messages = MergeMessages(b.messages, Tree{key: messages})
}

// AddErrors merges messages at the root of the payload.
func (b *ErrorBuilder) AddErrors(messages any) {
	b.messages = MergeMessages(b.messages, messages)
}

// CollectAt records err under key when it is a *ValidationError. Any other
// non-nil error is returned untouched so the caller can propagate it.
func (b *ErrorBuilder) CollectAt(key any, err error) error {
	if err == nil {
		return nil
	}
	ve, ok := AsValidationError(err)
	if !ok {
		return err
	}
	b.Add(key, ve.Messages)
	return nil
}

// Collect is CollectAt for failures of the composite value itself.
func (b *ErrorBuilder) Collect(err error) error {
	if err == nil {
		return nil
	}
	ve, ok := AsValidationError(err)
	if !ok {
		return err
	}
	b.AddErrors(ve.Messages)
	return nil
}

// HasErrors reports whether anything has been recorded.
func (b *ErrorBuilder) HasErrors() bool {
	return !isEmpty(b.messages)
}

// Err returns one *ValidationError carrying everything recorded, or nil.
func (b *ErrorBuilder) Err() error {
	if !b.HasErrors() {
		return nil
	}
	return &ValidationError{Messages: b.messages}
}
