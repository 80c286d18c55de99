package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fedutinova/careerchat/internal/config"
	"github.com/fedutinova/careerchat/internal/server"
	httpapi "github.com/fedutinova/careerchat/internal/transport/http"
	"github.com/fedutinova/careerchat/internal/validation"
	"github.com/stretchr/testify/assert"
)

func newRouter(origins ...string) http.Handler {
	cfg := config.Config{CORSAllowedOrigins: origins}
	h := &httpapi.Handlers{Validator: validation.New(0), Config: cfg}
	return server.NewRouter(h, cfg)
}

func TestNewRouter_PreflightAllowsAnyOrigin(t *testing.T) {
	r := newRouter("*")

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestNewRouter_RestrictedOrigin(t *testing.T) {
	r := newRouter("https://kerja.example")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://kerja.example")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "https://kerja.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_Hello(t *testing.T) {
	rr := httptest.NewRecorder()
	newRouter("*").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, rr.Body.String())
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	rr := httptest.NewRecorder()
	newRouter("*").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
