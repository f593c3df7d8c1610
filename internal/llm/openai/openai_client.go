package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"joblocator/internal/config"
	"joblocator/internal/domain"
	"joblocator/internal/llm"
	"joblocator/internal/port"
)

const (
	apiURL       = "https://api.openai.com/v1/chat/completions"
	defaultModel = "gpt-4o-mini"
	providerName = "openai"
)

func init() {
	llm.RegisterProvider(providerName, func(cfg *config.ExtractorConfig) (port.CompletionClient, error) {
		c, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// Client implements port.CompletionClient using the OpenAI Chat Completions API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates an OpenAI completion client. It fails when no API key is configured.
func NewClient(cfg *config.ExtractorConfig) (*Client, error) {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ExtractorConfig, endpoint string) (*Client, error) {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ExtractorConfig, endpoint string) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w; set JOBLOC_EXTRACTOR_API_KEY or OPENAI_API_KEY", providerName, domain.ErrMissingAPIKey)
	}
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   llm.NewHTTPClient(cfg.TimeoutSecs),
	}, nil
}

// Model returns the configured model, or the provider default when none is set.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": req.Prompt,
			},
		},
		"temperature": req.Temperature,
	}
	if req.MaxTokens > 0 {
		reqBody["max_tokens"] = req.MaxTokens
	}

	respBody, err := llm.PostJSON(ctx, c.client, providerName, c.endpoint, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, reqBody)
	if err != nil {
		return nil, err
	}

	return parseResponse(respBody, model)
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte, model string) (*port.CompletionResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	return &port.CompletionResponse{
		Text:         resp.Choices[0].Message.Content,
		Model:        model,
		FinishReason: resp.Choices[0].FinishReason,
	}, nil
}
