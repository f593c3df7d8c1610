package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"joblocator/internal/config"
	"joblocator/internal/domain"
	"joblocator/internal/extractor"
	"joblocator/internal/metrics"
	"joblocator/internal/port"
)

const defaultMaxTokens = 500

var errNoCompletion = errors.New("LLM backend returned no response")

// ExtractionService extracts the primary work location from a job posting.
type ExtractionService interface {
	Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error)
	Model() string
}

type extractionService struct {
	client port.CompletionClient
	cfg    config.ExtractorConfig
	logger *zap.Logger
}

// NewExtractionService creates a new ExtractionService. The client is shared across
// calls and must be safe for concurrent use.
func NewExtractionService(client port.CompletionClient, cfg config.ExtractorConfig, logger *zap.Logger) (ExtractionService, error) {
	if client == nil {
		return nil, domain.ErrBackendNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = client.Model()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.DefaultCountry == "" {
		cfg.DefaultCountry = domain.DefaultCountry
	}
	return &extractionService{
		client: client,
		cfg:    cfg,
		logger: logger.Named("extraction"),
	}, nil
}

func (s *extractionService) Model() string {
	return s.cfg.DefaultModel
}

// Extract runs one extraction. Only request validation is returned as an error;
// backend and parse failures come back as a zero-confidence result.
func (s *extractionService) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	stepStart := time.Now()
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	model := req.Model
	if model == "" {
		model = s.cfg.DefaultModel
	}
	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if country == "" {
		country = s.cfg.DefaultCountry
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = s.cfg.Temperature
	}
	maxTokens := req.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = s.cfg.MaxTokens
	}

	result := &domain.ExtractionResult{
		Granularity:   domain.GranularityNone,
		Model:         model,
		Country:       country,
		PromptVersion: extractor.PromptVersion,
	}
	var steps []domain.ProcessingStep

	steps = append(steps, domain.ProcessingStep{
		Step:        "parsing",
		Description: fmt.Sprintf("Parsed %d words (%d characters)", len(strings.Fields(text)), utf8.RuneCountInString(text)),
		DurationMS:  time.Since(stepStart).Milliseconds(),
	})

	stepStart = time.Now()
	prompt := extractor.RenderPrompt(text)
	steps = append(steps, domain.ProcessingStep{
		Step:        "prompt",
		Description: fmt.Sprintf("Rendered extraction prompt %s for %s", extractor.PromptVersion, country),
		DurationMS:  time.Since(stepStart).Milliseconds(),
	})

	stepStart = time.Now()
	resp, err := s.client.Complete(ctx, port.CompletionRequest{
		Model:       model,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	elapsed := time.Since(stepStart)
	if err == nil && resp == nil {
		err = errNoCompletion
	}

	if err != nil {
		metrics.BackendDuration.WithLabelValues(s.cfg.Provider, "error").Observe(elapsed.Seconds())
		s.logger.Error("llm backend call failed", zap.String("model", model), zap.Duration("elapsed", elapsed), zap.Error(err))

		result.Explanation = fmt.Sprintf("API error: %v", err)
		result.Outcome = domain.OutcomeBackendError
		steps = append(steps, domain.ProcessingStep{
			Step:        "llm_inference",
			Description: fmt.Sprintf("%s call failed", displayModel(model)),
			DurationMS:  elapsed.Milliseconds(),
		})
	} else {
		metrics.BackendDuration.WithLabelValues(s.cfg.Provider, "ok").Observe(elapsed.Seconds())
		if resp.Model != "" {
			result.Model = resp.Model
		}
		steps = append(steps, domain.ProcessingStep{
			Step:        "llm_inference",
			Description: fmt.Sprintf("%s analyzed job description", displayModel(result.Model)),
			DurationMS:  elapsed.Milliseconds(),
		})
		if isTruncated(resp.FinishReason) {
			s.logger.Warn("llm output hit the token limit", zap.String("model", result.Model), zap.Int("max_tokens", maxTokens))
		}
		s.applyResponse(result, req.Text, resp.Text)
	}

	stepStart = time.Now()
	result.RemoteIndicators = extractor.DetectRemote(req.Text)
	result.IsRemote = len(result.RemoteIndicators) > 0
	found := "not found"
	if result.Found() {
		found = "found"
	}
	steps = append(steps, domain.ProcessingStep{
		Step:        "validation",
		Description: "Location " + found,
		DurationMS:  time.Since(stepStart).Milliseconds(),
	})
	result.Steps = steps

	metrics.ExtractionsTotal.WithLabelValues(string(result.Outcome), string(result.Granularity)).Inc()
	if result.Outcome == domain.OutcomeFound {
		metrics.ExtractionConfidence.Observe(result.Confidence)
	}

	s.logger.Info("location extracted",
		zap.String("outcome", string(result.Outcome)),
		zap.String("granularity", string(result.Granularity)),
		zap.Float64("confidence", result.Confidence),
		zap.Bool("is_remote", result.IsRemote),
		zap.String("model", result.Model),
	)
	return result, nil
}

// applyResponse parses raw model output into result and scores it against the original text.
func (s *extractionService) applyResponse(result *domain.ExtractionResult, original, raw string) {
	fields := extractor.ParseResponse(raw)
	if len(fields.Violations) > 0 {
		metrics.ContractViolationsTotal.Inc()
		s.logger.Warn("llm output does not match the requested schema", zap.Strings("violations", fields.Violations))
	}

	result.Answer = fields.Answer
	result.Explanation = fields.Explanation
	result.Granularity = fields.Granularity
	result.Confidence = extractor.Score(fields.Answer, fields.Explanation, fields.Granularity)
	result.Highlight = extractor.LocateSpan(original, fields.Answer)

	switch {
	case fields.Failed:
		result.Outcome = domain.OutcomeParseError
		s.logger.Warn("failed to parse llm response", zap.String("raw", extractor.Truncate(raw, 200)))
	case result.Found():
		result.Outcome = domain.OutcomeFound
		if result.Highlight == nil {
			s.logger.Debug("answer not found verbatim in posting", zap.String("answer", result.Answer))
		}
	default:
		result.Outcome = domain.OutcomeNotFound
	}
}

func isTruncated(finishReason string) bool {
	switch strings.ToLower(finishReason) {
	case "length", "max_tokens":
		return true
	}
	return false
}

func displayModel(model string) string {
	if model == "" {
		return "LLM"
	}
	return model
}
