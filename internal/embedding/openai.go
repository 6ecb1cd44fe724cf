// Package embedding provides the text-embedding client used for the semantic
// similarity signal.
package embedding

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client computes fixed-dimension text embeddings through an
// OpenAI-compatible /embeddings endpoint. Every call is bounded by the
// configured timeout; callers treat failures as a degraded signal, not a
// fatal error.
type Client struct {
	api        *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	timeout    time.Duration
}

type Config struct {
	APIKey     string
	BaseURL    string // optional, for self-hosted OpenAI-compatible servers
	Model      string
	Dimensions int // optional, 0 uses the model's native dimension
	Timeout    time.Duration
}

func NewClient(cfg Config) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		api:        openai.NewClientWithConfig(apiCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
		timeout:    timeout,
	}
}

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      c.model,
		Dimensions: c.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}
	return resp.Data[0].Embedding, nil
}
