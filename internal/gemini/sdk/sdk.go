// Package sdk implements gemini.Generator on top of the official
// generative-ai-go client.
package sdk

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/vbonduro/bananabread/internal/gemini"
)

type Generator struct {
	apiKey   string
	model    string
	endpoint string
}

// NewGenerator returns a Generator for model. endpoint overrides the API host
// when non-empty.
func NewGenerator(apiKey, model, endpoint string) *Generator {
	return &Generator{
		apiKey:   strings.TrimSpace(apiKey),
		model:    strings.TrimSpace(model),
		endpoint: strings.TrimSpace(endpoint),
	}
}

func (g *Generator) Available() bool {
	return g.apiKey != ""
}

func (g *Generator) clientOptions() []option.ClientOption {
	opts := []option.ClientOption{option.WithAPIKey(g.apiKey)}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}
	return opts
}

func (g *Generator) Generate(ctx context.Context, p gemini.Prompt) (string, error) {
	if !g.Available() {
		return "", gemini.ErrMissingAPIKey
	}

	parts, err := buildParts(p)
	if err != nil {
		return "", err
	}

	cl, err := genai.NewClient(ctx, g.clientOptions()...)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(g.model)
	if p.JSONMode {
		m.GenerationConfig.ResponseMIMEType = "application/json"
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", nil
		}
		if upstreamErr := asUpstreamError(err); upstreamErr != nil {
			return "", upstreamErr
		}
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}

	return responseText(resp), nil
}

// buildParts decodes the inline image because the SDK transmits raw bytes.
func buildParts(p gemini.Prompt) ([]genai.Part, error) {
	parts := []genai.Part{genai.Text(p.Text)}
	if p.HasImage() {
		data, err := base64.StdEncoding.DecodeString(p.ImageData)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		parts = append(parts, genai.Blob{MIMEType: gemini.ImageMIMEType, Data: data})
	}
	return parts, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 {
		return ""
	}
	if t, ok := c.Content.Parts[0].(genai.Text); ok {
		return string(t)
	}
	return ""
}

// asUpstreamError maps an HTTP-level API failure to *gemini.UpstreamError. It
// returns nil for errors that carry no HTTP status.
func asUpstreamError(err error) *gemini.UpstreamError {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code != 0 {
		return &gemini.UpstreamError{Status: gErr.Code, Reason: reasonOr(gErr.Message, gErr.Code)}
	}
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPCode() > 0 {
		msg := ""
		if st := apiErr.GRPCStatus(); st != nil {
			msg = st.Message()
		}
		return &gemini.UpstreamError{Status: apiErr.HTTPCode(), Reason: reasonOr(msg, apiErr.HTTPCode())}
	}
	return nil
}

func reasonOr(msg string, status int) string {
	if msg != "" {
		return msg
	}
	return http.StatusText(status)
}
