package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/bananabread/internal/gemini"
)

// stubGenerator is a minimal gemini.Generator for tests.
type stubGenerator struct {
	mu        sync.Mutex
	available bool
	text      string
	err       error
	calls     int
	last      gemini.Prompt
}

func (s *stubGenerator) Available() bool { return s.available }

func (s *stubGenerator) Generate(_ context.Context, p gemini.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = p
	return s.text, s.err
}

const allowedOrigin = "http://localhost:4321"

func newTestServer(gen gemini.Generator) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(gen, []string{allowedOrigin, "https://banana-bread.pages.dev"}, logger)
}

func doRequest(t *testing.T, s *Server, method, body, origin string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/api/gemini", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandleGeminiSuccess(t *testing.T) {
	gen := &stubGenerator{available: true, text: "Spotted bananas are perfect."}
	s := newTestServer(gen)

	rec := doRequest(t, s, http.MethodPost, `{"prompt":"ripe?","imageBase64":"data:image/jpeg;base64,XYZ","useJsonMode":true}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"text": "Spotted bananas are perfect."}, decodeResponse(t, rec))
	assert.Equal(t, gemini.Prompt{Text: "ripe?", ImageData: "XYZ", JSONMode: true}, gen.last)
}

func TestHandleGeminiMissingKey(t *testing.T) {
	bodies := []string{
		`{"prompt":"hello"}`,
		`not json at all`,
		``,
	}

	for _, body := range bodies {
		t.Run(fmt.Sprintf("body=%q", body), func(t *testing.T) {
			gen := &stubGenerator{available: false}
			rec := doRequest(t, newTestServer(gen), http.MethodPost, body, "")

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			out := decodeResponse(t, rec)
			assert.Contains(t, out["error"], "API Key missing")
			assert.NotContains(t, out, "text")
			assert.Zero(t, gen.calls)
		})
	}
}

func TestHandleGeminiUpstreamError(t *testing.T) {
	gen := &stubGenerator{
		available: true,
		err:       fmt.Errorf("generate: %w", &gemini.UpstreamError{Status: http.StatusTooManyRequests, Reason: "Resource has been exhausted"}),
	}

	rec := doRequest(t, newTestServer(gen), http.MethodPost, `{"prompt":"hi"}`, "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	out := decodeResponse(t, rec)
	assert.Equal(t, "Gemini API error: Resource has been exhausted", out["error"])
	assert.NotContains(t, out, "text")
}

func TestHandleGeminiEmptyTextFallsBack(t *testing.T) {
	gen := &stubGenerator{available: true, text: ""}

	rec := doRequest(t, newTestServer(gen), http.MethodPost, `{"prompt":"hi"}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"text": "Gemini couldn't process that."}, decodeResponse(t, rec))
}

func TestHandleGeminiTransportError(t *testing.T) {
	gen := &stubGenerator{available: true, err: errors.New("dial tcp 10.0.0.1:443: connection refused")}

	rec := doRequest(t, newTestServer(gen), http.MethodPost, `{"prompt":"hi"}`, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	out := decodeResponse(t, rec)
	assert.Equal(t, "Error connecting to Gemini. Please try again.", out["error"])
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}

func TestHandleGeminiInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"prompt":`},
		{name: "empty prompt", body: `{"prompt":"   "}`},
		{name: "missing prompt", body: `{"imageBase64":"XYZ"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{available: true, text: "unused"}
			rec := doRequest(t, newTestServer(gen), http.MethodPost, tt.body, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeResponse(t, rec), "error")
			assert.Zero(t, gen.calls)
		})
	}
}

func TestPreflightAllowedOrigin(t *testing.T) {
	rec := doRequest(t, newTestServer(&stubGenerator{available: true}), http.MethodOptions, "", allowedOrigin)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestPreflightDisallowedOrigin(t *testing.T) {
	origins := []string{
		"https://evil.example.com",
		"https://sub.banana-bread.pages.dev",
		"http://localhost:4322",
	}

	for _, origin := range origins {
		t.Run(origin, func(t *testing.T) {
			rec := doRequest(t, newTestServer(&stubGenerator{available: true}), http.MethodOptions, "", origin)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestPostCORSHeaders(t *testing.T) {
	gen := &stubGenerator{available: true, text: "ok"}
	s := newTestServer(gen)

	allowed := doRequest(t, s, http.MethodPost, `{"prompt":"hi"}`, "https://banana-bread.pages.dev")
	assert.Equal(t, "https://banana-bread.pages.dev", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := doRequest(t, s, http.MethodPost, `{"prompt":"hi"}`, "https://evil.example.com")
	assert.Equal(t, http.StatusOK, denied.Code)
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))

	// Error responses carry CORS headers too, so browsers can read them.
	missing := doRequest(t, newTestServer(&stubGenerator{}), http.MethodPost, `{"prompt":"hi"}`, allowedOrigin)
	assert.Equal(t, allowedOrigin, missing.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleGeminiMethodNotAllowed(t *testing.T) {
	rec := doRequest(t, newTestServer(&stubGenerator{available: true}), http.MethodGet, "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestServer(&stubGenerator{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
