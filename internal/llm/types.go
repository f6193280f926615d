package llm

import (
	"context"
	"errors"
)

var (
	// bad or oversized input, model failure, or a vector of the wrong dimension
	ErrEmbedding = errors.New("embedding failed")

	// the generation capability was unreachable or returned an error
	ErrGeneration = errors.New("text generation failed")
)

// represents different LLM providers
type Provider string

const (
	ProviderLocal     Provider = "local"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// generates embeddings from text.
// implementations are deterministic for a fixed model and never truncate input.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	MaxInputChars() int
	Model() string
}

// generates text from a system prompt and a conversation
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
}

type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int // zero falls back to the generator's configured limit
}

type TextGenerationResponse struct {
	Text  string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}
