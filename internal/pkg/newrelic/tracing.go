package newrelic

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// StartSegment creates a new segment for the transaction carried by ctx.
// Returns nil if no transaction is available.
func StartSegment(ctx context.Context, name string) *newrelic.Segment {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}
	return txn.StartSegment(name)
}

// WithSegmentAndReturn executes fn within a New Relic segment and returns its value
func WithSegmentAndReturn[T any](ctx context.Context, segmentName string, fn func() (T, error)) (T, error) {
	if segment := StartSegment(ctx, segmentName); segment != nil {
		defer segment.End()
	}
	return fn()
}

// TraceUseCase wraps a use case method with automatic segment creation
func TraceUseCase(ctx context.Context, useCaseName string, fn func(context.Context) error) error {
	if segment := StartSegment(ctx, useCaseName); segment != nil {
		defer segment.End()
	}
	return fn(ctx)
}
