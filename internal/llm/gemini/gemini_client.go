package gemini

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
	apiBaseURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.0-flash"
	providerName = "gemini"
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

// Client implements port.CompletionClient using Google's Gemini API.
type Client struct {
	apiKey string
	model  string
	// endpoint overrides the per-model URL when set (tests).
	endpoint string
	client   *http.Client
}

// NewClient creates a Gemini completion client. It fails when no API key is configured.
func NewClient(cfg *config.ExtractorConfig) (*Client, error) {
	return newClient(cfg, "")
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
	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}

	generationConfig := map[string]interface{}{
		"temperature": req.Temperature,
	}
	if req.MaxTokens > 0 {
		generationConfig["maxOutputTokens"] = req.MaxTokens
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": req.Prompt},
				},
			},
		},
		"generationConfig": generationConfig,
	}

	respBody, err := llm.PostJSON(ctx, c.client, providerName, endpoint, map[string]string{
		"x-goog-api-key": c.apiKey,
	}, reqBody)
	if err != nil {
		return nil, err
	}

	return parseResponse(respBody, model)
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func parseResponse(body []byte, model string) (*port.CompletionResponse, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	return &port.CompletionResponse{
		Text:         text.String(),
		Model:        model,
		FinishReason: resp.Candidates[0].FinishReason,
	}, nil
}
