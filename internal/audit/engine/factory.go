package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"docushield-workers/internal/common/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderHTTP   = "http"
)

// Settings selects and configures an invoker.
type Settings struct {
	Provider       string
	APIKey         string
	BaseURL        string
	Model          string
	ThinkingBudget int32
	CacheTTL       time.Duration
}

// New builds the configured invoker, wrapped in a Redis cache when rdb is
// set and CacheTTL is positive.
func New(ctx context.Context, s Settings, rdb redis.Cmdable, log logger.Logger) (Invoker, error) {
	var inv Invoker

	switch s.Provider {
	case ProviderGemini, "":
		g, err := NewGeminiInvoker(ctx, GeminiOptions{
			APIKey:         s.APIKey,
			Model:          s.Model,
			ThinkingBudget: s.ThinkingBudget,
		})
		if err != nil {
			return nil, err
		}
		inv = g
	case ProviderHTTP:
		if s.BaseURL == "" {
			return nil, fmt.Errorf("http engine requires a base URL")
		}
		inv = NewHTTPInvoker(HTTPOptions{
			BaseURL:        s.BaseURL,
			APIKey:         s.APIKey,
			Model:          s.Model,
			ThinkingBudget: s.ThinkingBudget,
		}, nil)
	default:
		return nil, fmt.Errorf("unknown engine provider %q", s.Provider)
	}

	if rdb != nil && s.CacheTTL > 0 {
		inv = NewCachedInvoker(inv, rdb, s.CacheTTL, log)
	}
	return inv, nil
}
