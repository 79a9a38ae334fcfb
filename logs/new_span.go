package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan starts a span for one run of source. A span already in ctx is
// logged as the parent.
type NewSpan func(ctx context.Context, source string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, source string) (context.Context, Span) {
		args := []any{"source", source}
		if parent, ok := ctx.Value(SpanKey).(Span); ok {
			args = append(args, "parent", parent)
		}
		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)
		logger.InfoContext(ctx, "new span", args...)
		return ctx, span
	}
}
