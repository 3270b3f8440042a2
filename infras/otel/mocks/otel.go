package mocks

import (
	"context"

	"trekking/infras/otel"
)

type otelImpl struct {
}

// NewScope implements otel.Otel.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

// NewOtel returns a tracer that records nothing.
func NewOtel() otel.Otel {
	return &otelImpl{}
}
