package translator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
)

// Limited spaces calls to next so at most perMinute requests reach the provider.
type Limited struct {
	next    Translator
	limiter *rate.Limiter
}

// A non-positive perMinute disables limiting.
func NewLimited(next Translator, perMinute int) *Limited {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &Limited{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (l *Limited) Translate(ctx context.Context, text string, source, target detector.Lang) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", NewServiceError("rate limiter", "", fmt.Errorf("%w: %w", ErrRateLimitExceeded, err))
	}
	return l.next.Translate(ctx, text, source, target)
}
