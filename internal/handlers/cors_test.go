package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"project_space/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestHTTPHandler_CORS(t *testing.T) {
	h := NewHandler(&service.Service{Projects: &mockProjects{}}, nil, Config{
		AllowedOrigins: []string{" https://app.example.com/ ", ""},
	})
	r := h.HTTPHandler()

	req := httptest.NewRequest(http.MethodOptions, "/projects", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPHandler_NoOriginsNoHeaders(t *testing.T) {
	h := NewHandler(&service.Service{Projects: &mockProjects{}}, nil, Config{})
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	h.HTTPHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
