package llm

import (
	"context"
)

// StructuredProvider defines the contract for any model backend capable of
// structured extraction: submit a system + user prompt, get back a value
// unmarshalled into out, or a classified *AIError.
type StructuredProvider interface {
	// ExtractStructured requests a JSON response matching the shape of out
	// (a pointer to a struct). A response that cannot be parsed into out
	// yields an AIError with KindParseError.
	ExtractStructured(ctx context.Context, systemPrompt, userPrompt string, out any, options ...Option) error
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}
