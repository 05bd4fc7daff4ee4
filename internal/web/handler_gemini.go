package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vbonduro/bananabread/internal/gemini"
)

const maxRequestSize = 10 * 1024 * 1024 // 10 MB, room for a base64 phone photo

func (s *Server) handleGemini(w http.ResponseWriter, r *http.Request) {
	if !s.generator.Available() {
		s.logger.Error("gemini api key missing", "request_id", requestIDFrom(r.Context()))
		writeJSON(w, http.StatusInternalServerError, gemini.Response{Error: gemini.MissingKeyMessage})
		return
	}

	var req gemini.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestSize)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, gemini.Response{Error: "Invalid request: body must be JSON with a prompt."})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, gemini.Response{Error: "Invalid request: prompt is required."})
		return
	}

	text, err := s.generator.Generate(r.Context(), gemini.NewPrompt(req))
	if err != nil {
		s.writeGenerateError(w, r, err)
		return
	}
	if text == "" {
		text = gemini.FallbackText
	}
	writeJSON(w, http.StatusOK, gemini.Response{Text: text})
}

// writeGenerateError maps generator failures onto the proxy error contract.
// Transport details are logged, never returned.
func (s *Server) writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	id := requestIDFrom(r.Context())

	var upstreamErr *gemini.UpstreamError
	switch {
	case errors.As(err, &upstreamErr):
		s.logger.Warn("gemini upstream error", "request_id", id, "status", upstreamErr.Status, "reason", upstreamErr.Reason)
		writeJSON(w, upstreamErr.Status, gemini.Response{Error: upstreamErr.Error()})
	case errors.Is(err, gemini.ErrMissingAPIKey):
		s.logger.Error("gemini api key missing", "request_id", id)
		writeJSON(w, http.StatusInternalServerError, gemini.Response{Error: gemini.MissingKeyMessage})
	default:
		s.logger.Error("gemini request failed", "request_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, gemini.Response{Error: gemini.ConnectionMessage})
	}
}
