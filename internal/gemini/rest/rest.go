package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vbonduro/bananabread/internal/gemini"
)

// DefaultBaseURL is the v1beta generative-language API root.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// request types mirror the generateContent REST structure.
type request struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type response struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type Generator struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

func NewGenerator(apiKey, model, baseURL string) *Generator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Generator{
		apiKey:  strings.TrimSpace(apiKey),
		model:   strings.TrimSpace(model),
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (g *Generator) Available() bool {
	return g.apiKey != ""
}

// buildRequest constructs the upstream payload: the text prompt first, then the
// inline image when one is present.
func buildRequest(p gemini.Prompt) request {
	parts := []part{{Text: p.Text}}
	if p.HasImage() {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: gemini.ImageMIMEType,
			Data:     p.ImageData,
		}})
	}

	req := request{Contents: []content{{Parts: parts}}}
	if p.JSONMode {
		req.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}
	return req
}

func (g *Generator) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
}

func (g *Generator) Generate(ctx context.Context, p gemini.Prompt) (string, error) {
	if !g.Available() {
		return "", gemini.ErrMissingAPIKey
	}

	payload, err := json.Marshal(buildRequest(p))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close gemini response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		return "", &gemini.UpstreamError{Status: resp.StatusCode, Reason: upstreamReason(resp.StatusCode, errBody)}
	}

	var respBody response
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return respBody.Candidates[0].Content.Parts[0].Text, nil
}

// upstreamReason extracts error.message from a Google API error body, falling
// back to the status text.
func upstreamReason(status int, body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}
