package port

import "context"

// CompletionRequest is a single-prompt chat completion call.
type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// CompletionResponse carries the raw text the model produced.
type CompletionResponse struct {
	Text         string
	Model        string
	FinishReason string
}

// CompletionClient abstracts the LLM backend. Implementations must be safe for
// concurrent use; one call maps to exactly one outbound request.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Model is the model used when a request does not name one.
	Model() string
}
