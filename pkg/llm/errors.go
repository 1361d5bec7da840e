package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed provider call independently of the transport
// library that produced it. The retry layer only ever looks at the kind.
type ErrorKind string

const (
	KindRateLimit          ErrorKind = "rate-limit"
	KindConnection         ErrorKind = "connection"
	KindAuthentication     ErrorKind = "authentication"
	KindMalformedRequest   ErrorKind = "malformed-request"
	KindParseError         ErrorKind = "parse-error"
	KindMaxRetriesExceeded ErrorKind = "max-retries-exceeded"
	KindUnknown            ErrorKind = "unknown"
)

// AIError is the typed failure every provider returns.
type AIError struct {
	Kind     ErrorKind
	Message  string
	Attempts int // set only for KindMaxRetriesExceeded
	Err      error
}

func (e *AIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai error (%s): %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("ai error (%s): %s", e.Kind, e.Message)
}

func (e *AIError) Unwrap() error {
	return e.Err
}

func NewAIError(kind ErrorKind, message string, err error) *AIError {
	return &AIError{Kind: kind, Message: message, Err: err}
}

// Classify extracts the kind from an error chain. Anything that is not an
// AIError is KindUnknown and must not be retried.
func Classify(err error) ErrorKind {
	var aiErr *AIError
	if errors.As(err, &aiErr) {
		return aiErr.Kind
	}
	return KindUnknown
}

// IsRetryable reports whether a call failing with err is worth repeating.
// Parse errors count as transient: they usually mean a truncated or garbled
// model response, not a broken request.
func IsRetryable(err error) bool {
	switch Classify(err) {
	case KindRateLimit, KindConnection, KindParseError:
		return true
	default:
		return false
	}
}
