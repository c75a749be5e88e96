// Package llm is the boundary to the text-generation collaborator: a
// role-tagged message sequence goes in, one text completion comes out. The
// mining core never depends on this package.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/reportr/reportr-go/internal/config"
)

// Provider selects the completion backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderAzure  Provider = "azure"
	ProviderGemini Provider = "gemini"
	ProviderNone   Provider = "none"
)

// ErrDisabled is returned by Complete when no provider is configured.
var ErrDisabled = errors.New("text generation is disabled")

// Client provides a multi-provider completion interface.
type Client struct {
	provider     Provider
	openaiClient *openai.Client
	geminiClient *GeminiClient
	model        string
	maxTokens    int
	temperature  float32
	log          *logrus.Entry
}

// NewClient builds a client for the configured provider. A missing API key
// does not fail construction: the client comes back disabled so callers can
// still mine and render without AI output.
func NewClient(ctx context.Context, cfg *config.Config, apiKey string, logger *logrus.Logger) (*Client, error) {
	log := logger.WithField("component", "llm")

	c := &Client{
		provider:    Provider(cfg.LLM.Provider),
		model:       cfg.LLM.Model,
		maxTokens:   cfg.LLM.MaxTokens,
		temperature: cfg.LLM.Temperature,
		log:         log,
	}

	if c.provider == ProviderNone || c.provider == "" {
		c.provider = ProviderNone
		return c, nil
	}
	if apiKey == "" {
		log.Warn("no API key configured, text generation disabled")
		c.provider = ProviderNone
		return c, nil
	}

	switch c.provider {
	case ProviderOpenAI:
		c.openaiClient = openai.NewClient(apiKey)
	case ProviderAzure:
		if cfg.LLM.AzureEndpoint == "" {
			return nil, fmt.Errorf("azure provider requires llm.azure_endpoint")
		}
		azureCfg := openai.DefaultAzureConfig(apiKey, cfg.LLM.AzureEndpoint)
		c.openaiClient = openai.NewClientWithConfig(azureCfg)
		if cfg.LLM.AzureDeployment != "" {
			c.model = cfg.LLM.AzureDeployment
		}
	case ProviderGemini:
		gemini, err := NewGeminiClient(ctx, apiKey, cfg.LLM.Model, logger)
		if err != nil {
			return nil, err
		}
		c.geminiClient = gemini
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}

	log.WithFields(logrus.Fields{"provider": c.provider, "model": c.model}).Debug("llm client initialized")
	return c, nil
}

// Enabled reports whether completions can be requested.
func (c *Client) Enabled() bool {
	return c.provider != ProviderNone
}

// Complete sends a message sequence to the configured backend and returns
// the completion text.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	switch c.provider {
	case ProviderOpenAI, ProviderAzure:
		return c.completeOpenAI(ctx, messages)
	case ProviderGemini:
		return c.geminiClient.Complete(ctx, messages, c.maxTokens, c.temperature)
	default:
		return "", ErrDisabled
	}
}

func (c *Client) completeOpenAI(ctx context.Context, messages []Message) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	for _, m := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.openaiClient.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	c.log.WithFields(logrus.Fields{
		"model":  resp.Model,
		"tokens": resp.Usage.TotalTokens,
	}).Debug("completion received")

	return resp.Choices[0].Message.Content, nil
}
