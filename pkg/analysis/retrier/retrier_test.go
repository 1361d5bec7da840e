package retrier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Tigierre/contractguardian/pkg/llm"
)

func fastConfig(maxRetries int) Config {
	return Config{MaxRetries: maxRetries, BaseDelay: time.Millisecond}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (string, error) {
		attempts++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("result = %q, want ok", got)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestDoRetriesTransientFailure(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, llm.NewAIError(llm.KindRateLimit, "quota exhausted", nil)
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("result = %d, want 42", got)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (string, error) {
		attempts++
		return "", llm.NewAIError(llm.KindConnection, "connection refused", nil)
	})
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}

	if kind := llm.Classify(err); kind != llm.KindMaxRetriesExceeded {
		t.Errorf("kind = %s, want %s", kind, llm.KindMaxRetriesExceeded)
	}

	var aiErr *llm.AIError
	if !errors.As(err, &aiErr) {
		t.Fatal("error must be an AIError")
	}
	if aiErr.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", aiErr.Attempts)
	}
}

func TestDoBackoffDoubles(t *testing.T) {
	base := 50 * time.Millisecond
	var stamps []time.Time

	_, err := Do(context.Background(), Config{MaxRetries: 3, BaseDelay: base}, func(ctx context.Context) (string, error) {
		stamps = append(stamps, time.Now())
		return "", llm.NewAIError(llm.KindRateLimit, "quota exhausted", nil)
	})
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if len(stamps) != 3 {
		t.Fatalf("attempts = %d, want 3", len(stamps))
	}

	delay1 := stamps[1].Sub(stamps[0])
	delay2 := stamps[2].Sub(stamps[1])

	if delay1 < base {
		t.Errorf("first backoff = %s, want at least %s", delay1, base)
	}
	if delay2 < 2*base {
		t.Errorf("second backoff = %s, want at least %s", delay2, 2*base)
	}
	// Doubling, not constant: the second sleep must clearly exceed the first.
	if delay2 < delay1+base/2 {
		t.Errorf("backoff did not grow: %s then %s", delay1, delay2)
	}
}

func TestDoFatalErrorShortCircuits(t *testing.T) {
	tests := []struct {
		name string
		kind llm.ErrorKind
	}{
		{"authentication", llm.KindAuthentication},
		{"malformed request", llm.KindMalformedRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			_, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (string, error) {
				attempts++
				return "", llm.NewAIError(tt.kind, "no", nil)
			})
			if err == nil {
				t.Fatal("expected the error to propagate")
			}
			if attempts != 1 {
				t.Errorf("attempts = %d, want 1: %s must not retry", attempts, tt.kind)
			}
			if kind := llm.Classify(err); kind != tt.kind {
				t.Errorf("kind = %s, want %s", kind, tt.kind)
			}
		})
	}
}

func TestDoUnclassifiedErrorNotRetried(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), fastConfig(3), func(ctx context.Context) (string, error) {
		attempts++
		return "", errors.New("something else entirely")
	})
	if err == nil {
		t.Fatal("expected the error to propagate")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if kind := llm.Classify(err); kind != llm.KindUnknown {
		t.Errorf("kind = %s, want %s", kind, llm.KindUnknown)
	}
}

func TestDoParseErrorIsRetryable(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastConfig(2), func(ctx context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", llm.NewAIError(llm.KindParseError, "truncated json", nil)
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered" {
		t.Errorf("result = %q, want recovered", got)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}
