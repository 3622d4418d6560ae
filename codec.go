package mold

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/mold/internal/logging"
	"github.com/aretw0/mold/pkg/observability"
	"github.com/aretw0/mold/pkg/schema"
)

// Codec pairs a Type with the ambient pieces every conversion needs: a
// validation context, a logger and observability hooks.
type Codec struct {
	typ    schema.Type
	vctx   any
	hooks  observability.Hooks
	logger *slog.Logger
}

// Option defines a functional option for configuring a Codec.
type Option func(*Codec)

// WithLogger sets a custom structured logger for the codec.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks observability.Hooks) Option {
	return func(c *Codec) {
		c.hooks = hooks
	}
}

// WithContext sets the validation context passed to types and validators.
func WithContext(vctx any) Option {
	return func(c *Codec) {
		c.vctx = vctx
	}
}

// New creates a Codec for t.
func New(t schema.Type, opts ...Option) *Codec {
	c := &Codec{typ: t}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c
}

// Type returns the type the codec converts with.
func (c *Codec) Type() schema.Type { return c.typ }

// Load converts a plain representation into a native value.
func (c *Codec) Load(ctx context.Context, data any) (any, error) {
	return c.run(ctx, observability.OpLoad, func() (any, error) {
		return c.typ.Load(data, c.vctx)
	})
}

// Dump converts a native value into its plain representation.
func (c *Codec) Dump(ctx context.Context, value any) (any, error) {
	return c.run(ctx, observability.OpDump, func() (any, error) {
		return c.typ.Dump(value, c.vctx)
	})
}

// LoadJSON decodes a JSON document and loads it.
func (c *Codec) LoadJSON(ctx context.Context, raw []byte) (any, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	return c.Load(ctx, data)
}

// LoadYAML decodes a YAML document and loads it.
func (c *Codec) LoadYAML(ctx context.Context, raw []byte) (any, error) {
	var data any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	return c.Load(ctx, data)
}

// DumpJSON dumps value and encodes the result as JSON.
func (c *Codec) DumpJSON(ctx context.Context, value any) ([]byte, error) {
	out, err := c.Dump(ctx, value)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return raw, nil
}

// DumpYAML dumps value and encodes the result as YAML.
func (c *Codec) DumpYAML(ctx context.Context, value any) ([]byte, error) {
	out, err := c.Dump(ctx, value)
	if err != nil {
		return nil, err
	}
	raw, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return raw, nil
}

func (c *Codec) run(ctx context.Context, op observability.Op, fn func() (any, error)) (any, error) {
	start := time.Now()
	out, err := fn()

	e := &observability.Event{
		Timestamp: start,
		Type:      c.typ.Name(),
		Op:        op,
		Duration:  time.Since(start),
		Err:       err,
	}
	switch e.Outcome() {
	case observability.OutcomeInvalid:
		ve, _ := schema.AsValidationError(err)
		c.logger.Debug("validation failed", "type", e.Type, "op", op, "errors", ve.Flatten())
	case observability.OutcomeError:
		c.logger.Warn("conversion failed", "type", e.Type, "op", op, "error", err)
	}
	c.hooks.Emit(ctx, e)

	if err != nil {
		return nil, err
	}
	return out, nil
}
