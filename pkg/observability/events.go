package observability

import (
	"context"
	"time"

	"github.com/aretw0/mold/pkg/schema"
)

// Op names the direction of a conversion.
type Op string

const (
	OpLoad Op = "load"
	OpDump Op = "dump"
)

// Outcome classifies how an operation ended.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeInvalid Outcome = "invalid"
	OutcomeError   Outcome = "error"
)

// Event describes one finished load or dump.
type Event struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      string        `json:"type"`
	Op        Op            `json:"op"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// Outcome reports whether the operation succeeded, was rejected by
// validation, or failed for another reason.
func (e *Event) Outcome() Outcome {
	if e.Err == nil {
		return OutcomeOK
	}
	if _, ok := schema.AsValidationError(e.Err); ok {
		return OutcomeInvalid
	}
	return OutcomeError
}

// Hooks are callbacks invoked after each operation. Nil fields are skipped.
type Hooks struct {
	OnLoad func(context.Context, *Event)
	OnDump func(context.Context, *Event)
}

// Emit dispatches e to the hook matching its Op.
func (h Hooks) Emit(ctx context.Context, e *Event) {
	switch e.Op {
	case OpLoad:
		if h.OnLoad != nil {
			h.OnLoad(ctx, e)
		}
	case OpDump:
		if h.OnDump != nil {
			h.OnDump(ctx, e)
		}
	}
}

// Chain returns Hooks calling each of hooks in order.
func Chain(hooks ...Hooks) Hooks {
	return Hooks{
		OnLoad: func(ctx context.Context, e *Event) {
			for _, h := range hooks {
				if h.OnLoad != nil {
					h.OnLoad(ctx, e)
				}
			}
		},
		OnDump: func(ctx context.Context, e *Event) {
			for _, h := range hooks {
				if h.OnDump != nil {
					h.OnDump(ctx, e)
				}
			}
		},
	}
}
