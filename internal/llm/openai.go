package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const (
	defaultOpenAIEmbeddingModel = "text-embedding-3-small"
	defaultOpenAIChatModel      = "gpt-4"
)

type OpenAIConfig struct {
	APIKey        string
	BaseURL       string // empty uses the public API
	Model         string
	Dimensions    int // embedding dimension requested from the API
	MaxInputChars int
	MaxTokens     int
	Temperature   float32
}

func newOpenAIClient(cfg OpenAIConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return openai.NewClientWithConfig(clientCfg)
}

type OpenAIEmbedder struct {
	client *openai.Client
	config OpenAIConfig
}

func NewOpenAIEmbedder(cfg OpenAIConfig) *OpenAIEmbedder {
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIEmbeddingModel
	}

	return &OpenAIEmbedder{
		client: newOpenAIClient(cfg),
		config: cfg,
	}
}

func (e *OpenAIEmbedder) Model() string      { return e.config.Model }
func (e *OpenAIEmbedder) Dimensions() int    { return e.config.Dimensions }
func (e *OpenAIEmbedder) MaxInputChars() int { return e.config.MaxInputChars }

func (e *OpenAIEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return embeddings[0], nil
}

func (e *OpenAIEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	if err := validateInputs(texts, e.config.MaxInputChars); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { observeEmbedding(ProviderOpenAI, e.config.Model, start, err) }()

	req := openai.EmbeddingRequest{
		Input:          texts,
		Model:          openai.EmbeddingModel(e.config.Model),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.config.Dimensions > 0 {
		req.Dimensions = e.config.Dimensions
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, parseOpenAIError(err))
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", ErrEmbedding, len(texts), len(resp.Data))
	}

	vectors = make([][]float32, len(resp.Data))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", ErrEmbedding, data.Index)
		}

		vectors[data.Index] = data.Embedding
	}

	if err := checkDimensions(vectors, e.config.Dimensions); err != nil {
		return nil, err
	}

	return vectors, nil
}

type OpenAIGenerator struct {
	client  *openai.Client
	config  OpenAIConfig
	limiter *rate.Limiter
}

func NewOpenAIGenerator(cfg OpenAIConfig) *OpenAIGenerator {
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIChatModel
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	return &OpenAIGenerator{
		client:  newOpenAIClient(cfg),
		config:  cfg,
		limiter: newGeneratorLimiter(),
	}
}

func (g *OpenAIGenerator) Model() string {
	return g.config.Model
}

func (g *OpenAIGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (result *TextGenerationResponse, err error) {
	start := time.Now()
	defer func() {
		var usage Usage
		if result != nil {
			usage = result.Usage
		}
		observeGeneration(ProviderOpenAI, g.config.Model, start, usage, err)
	}()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", ErrGeneration, err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, parseOpenAIError(err))
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrGeneration)
	}

	return &TextGenerationResponse{
		Text: strings.TrimSpace(resp.Choices[0].Message.Content),
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// extracts a readable message from SDK errors
func parseOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("openai API error %d: %s", reqErr.HTTPStatusCode, detail)
		}
		return fmt.Errorf("openai API error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	return err
}

// compatible providers sometimes answer {"detail": "..."} instead of the OpenAI error shape
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}

	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}

	return ""
}
