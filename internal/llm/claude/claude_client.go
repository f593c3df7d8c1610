package claude

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
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-3-5-haiku-latest"
	providerName = "claude"

	// The Messages API requires max_tokens on every call.
	fallbackMaxTokens = 500
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

// Client implements port.CompletionClient using the Anthropic Messages API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Claude completion client. It fails when no API key is configured.
func NewClient(cfg *config.ExtractorConfig) (*Client, error) {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ExtractorConfig, endpoint string) (*Client, error) {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ExtractorConfig, endpoint string) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w; set JOBLOC_EXTRACTOR_API_KEY", providerName, domain.ErrMissingAPIKey)
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
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = fallbackMaxTokens
	}

	reqBody := map[string]interface{}{
		"model":       model,
		"max_tokens":  maxTokens,
		"temperature": req.Temperature,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": req.Prompt,
			},
		},
	}

	respBody, err := llm.PostJSON(ctx, c.client, providerName, c.endpoint, map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": apiVersion,
	}, reqBody)
	if err != nil {
		return nil, err
	}

	return parseResponse(respBody, model)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte, model string) (*port.CompletionResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &port.CompletionResponse{
		Text:         text.String(),
		Model:        model,
		FinishReason: resp.StopReason,
	}, nil
}
