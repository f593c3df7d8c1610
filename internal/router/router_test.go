package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"joblocator/internal/domain"
	"joblocator/internal/handler"
	"joblocator/internal/router"
	"joblocator/mocks"
)

func newTestRouter() (*gin.Engine, *mocks.MockExtractionService) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(mocks.MockExtractionService)
	logger := zap.NewNop()
	r := router.Setup(logger, []string{"http://localhost:3000"},
		handler.NewExtractHandler(mockSvc, logger),
		handler.NewHealthHandler(mockSvc, "openai"),
	)
	return r, mockSvc
}

func TestRouter_ExtractRoutes(t *testing.T) {
	r, mockSvc := newTestRouter()
	mockSvc.On("Extract", mock.Anything, mock.Anything).Return(&domain.ExtractionResult{
		Answer:      "Austin, TX",
		Granularity: domain.GranularityCityState,
		Outcome:     domain.OutcomeFound,
	}, nil)

	for _, path := range []string{"/api/extract", "/api/v1/extract"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(`{"job_description":"Austin, TX"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `"location":"Austin, TX"`)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
	mockSvc.AssertNumberOfCalls(t, "Extract", 2)
}

func TestRouter_HealthRoutes(t *testing.T) {
	r, mockSvc := newTestRouter()
	mockSvc.On("Model").Return("gpt-4o-mini")

	for _, path := range []string{"/api/health", "/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_Metrics(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRouter_ExtractRequiresPost(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/extract", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
