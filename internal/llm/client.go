// Package llm provides the model clients used to turn meeting notes into
// structured action item JSON, plus a factory that picks the provider from
// the configured model string.
package llm

import "context"

// Client is the minimal completion surface the tracker needs.
type Client interface {
	// CompleteWithSystem sends one system+user exchange and returns the
	// model's text reply.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
