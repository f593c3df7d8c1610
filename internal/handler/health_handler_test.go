package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblocator/internal/handler"
	"joblocator/mocks"
)

func serveHealth(fn gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)
	fn(c)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHealthHandler_Health(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockExtractionService), "openai")

	w, body := serveHealth(h.Health)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "joblocator", body["service"])
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(nil, "openai")

	w, body := serveHealth(h.Liveness)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthHandler_Readiness(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	mockSvc.On("Model").Return("gpt-4o-mini")
	h := handler.NewHealthHandler(mockSvc, "openai")

	w, body := serveHealth(h.Readiness)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "openai", body["provider"])
	assert.Equal(t, "gpt-4o-mini", body["model"])
}

func TestHealthHandler_Readiness_NotConfigured(t *testing.T) {
	h := handler.NewHealthHandler(nil, "openai")

	w, body := serveHealth(h.Readiness)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", body["status"])
}
