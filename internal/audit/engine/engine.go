package engine

import (
	"context"
	"errors"
	"fmt"

	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/models"
)

var (
	ErrEngineInvocationFailed = errors.New("ENGINE_INVOCATION_FAILED")
	ErrEngineTimeout          = errors.New("ENGINE_TIMEOUT")
)

// Response is the raw engine output. Text is expected to hold one JSON object,
// possibly fenced in a markdown code block.
type Response struct {
	Text      string            `json:"text"`
	Citations []models.Citation `json:"citations,omitempty"`
}

// Invoker sends one instruction payload to the reasoning engine. A call is a
// single attempt; implementations never retry.
type Invoker interface {
	Invoke(ctx context.Context, payload *bundle.Payload) (*Response, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, payload *bundle.Payload) (*Response, error)

func (f InvokerFunc) Invoke(ctx context.Context, payload *bundle.Payload) (*Response, error) {
	return f(ctx, payload)
}

// wrapError tags a transport failure as a timeout when the context expired,
// otherwise as a generic invocation failure.
func wrapError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrEngineTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrEngineInvocationFailed, err)
}

// dedupeCitations drops citations without a URI and repeated URIs, keeping
// first-seen order.
func dedupeCitations(in []models.Citation) []models.Citation {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]models.Citation, 0, len(in))
	for _, c := range in {
		if c.URI == "" || seen[c.URI] {
			continue
		}
		seen[c.URI] = true
		out = append(out, c)
	}
	return out
}
