package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"joblocator/internal/domain"
	"joblocator/internal/service"
)

// ExtractRequest is the body of POST /api/extract.
type ExtractRequest struct {
	JobDescription string `json:"job_description" example:"Location: Example Corp - 123 Main St, Austin, TX 78701 (Hybrid)"`
	Country        string `json:"country" example:"US"`
	Model          string `json:"model" example:"gpt-4o-mini"`
}

// ExtractResponse is the body returned for a completed extraction. Location is null
// when no work location was found; Highlight is null when it cannot be located verbatim.
type ExtractResponse struct {
	Success          bool                    `json:"success"`
	Location         *string                 `json:"location"`
	Granularity      domain.Granularity      `json:"granularity"`
	Explanation      string                  `json:"explanation"`
	Confidence       float64                 `json:"confidence"`
	Model            string                  `json:"model"`
	Country          string                  `json:"country"`
	IsRemote         bool                    `json:"is_remote"`
	RemoteIndicators []string                `json:"remote_indicators"`
	PromptVersion    string                  `json:"prompt_version"`
	ProcessingSteps  []domain.ProcessingStep `json:"processing_steps"`
	Highlight        *domain.Span            `json:"highlight"`
}

// NewExtractResponse converts a result into its wire shape.
func NewExtractResponse(r *domain.ExtractionResult) ExtractResponse {
	resp := ExtractResponse{
		Success:          true,
		Granularity:      r.Granularity,
		Explanation:      r.Explanation,
		Confidence:       r.Confidence,
		Model:            r.Model,
		Country:          r.Country,
		IsRemote:         r.IsRemote,
		RemoteIndicators: r.RemoteIndicators,
		PromptVersion:    r.PromptVersion,
		ProcessingSteps:  r.Steps,
		Highlight:        r.Highlight,
	}
	if r.Found() {
		loc := r.Answer
		resp.Location = &loc
	}
	if resp.RemoteIndicators == nil {
		resp.RemoteIndicators = []string{}
	}
	return resp
}

// ExtractHandler handles location extraction endpoints.
type ExtractHandler struct {
	extractionService service.ExtractionService
	logger            *zap.Logger
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractionService service.ExtractionService, logger *zap.Logger) *ExtractHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractHandler{extractionService: extractionService, logger: logger}
}

// Extract handles POST /api/extract
// @Summary Extract the work location from a job posting
// @Tags extract
// @Accept json
// @Produce json
// @Param body body ExtractRequest true "Job posting"
// @Success 200 {object} ExtractResponse
// @Failure 400 {object} ErrorResponse "Missing or invalid job description"
// @Router /extract [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, h.logger, fmt.Errorf("%w: no JSON data provided: %v", domain.ErrInvalidRequest, err))
		return
	}

	result, err := h.extractionService.Extract(c.Request.Context(), domain.ExtractionRequest{
		Text:    req.JobDescription,
		Country: req.Country,
		Model:   req.Model,
	})
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, NewExtractResponse(result))
}
