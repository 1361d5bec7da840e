// Package retrier wraps a single remote-call attempt with classification of
// errors into retryable vs. fatal, exponential backoff, and a maximum
// attempt ceiling. It has no awareness of what the wrapped call does.
package retrier

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/Tigierre/contractguardian/pkg/llm"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 1 * time.Second
)

// Config bounds one retried call. MaxRetries is the total attempt count,
// BaseDelay the first backoff sleep; subsequent sleeps double.
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	return c
}

// Do executes fn up to cfg.MaxRetries times. Rate-limit, connection and
// parse failures back off and retry; authentication and malformed-request
// failures fail immediately, as does any unclassified error. Exhausting all
// attempts on a retryable error yields a classified max-retries-exceeded
// error carrying the attempt count.
func Do[T any](ctx context.Context, cfg Config, fn func(ctx context.Context) (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	var result T
	attempts := 0

	backoff := retry.WithMaxRetries(uint64(cfg.MaxRetries-1), retry.NewExponential(cfg.BaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		var callErr error
		result, callErr = fn(ctx)
		if callErr != nil {
			if llm.IsRetryable(callErr) {
				return retry.RetryableError(callErr)
			}
			return callErr
		}
		return nil
	})
	if err != nil {
		if llm.IsRetryable(err) && attempts >= cfg.MaxRetries {
			return result, &llm.AIError{
				Kind:     llm.KindMaxRetriesExceeded,
				Message:  fmt.Sprintf("max retries exceeded after %d attempts", attempts),
				Attempts: attempts,
				Err:      err,
			}
		}
		return result, err
	}
	return result, nil
}
