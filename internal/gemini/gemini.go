package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ImageMIMEType is the MIME type every inline image part is tagged with.
const ImageMIMEType = "image/jpeg"

// User-facing messages shared by the proxy and its clients.
const (
	MissingKeyMessage = "⚠️ API Key missing. Unable to contact Gemini."
	ConnectionMessage = "Error connecting to Gemini. Please try again."
	FallbackText      = "Gemini couldn't process that."
)

// ErrMissingAPIKey is returned by a Generator that has no credential configured.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// Request is the JSON body accepted by the proxy endpoint.
type Request struct {
	Prompt      string `json:"prompt"`
	ImageBase64 string `json:"imageBase64,omitempty"`
	UseJSONMode bool   `json:"useJsonMode,omitempty"`
}

// Response is the JSON body returned by the proxy endpoint. Exactly one field
// is set.
type Response struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// Prompt is a normalized upstream request. ImageData is raw base64 with any
// data URI prefix already removed.
type Prompt struct {
	Text      string
	ImageData string
	JSONMode  bool
}

// NewPrompt converts a proxy request into an upstream prompt.
func NewPrompt(req Request) Prompt {
	return Prompt{
		Text:      req.Prompt,
		ImageData: StripDataURI(req.ImageBase64),
		JSONMode:  req.UseJSONMode,
	}
}

// HasImage reports whether the prompt carries an inline image.
func (p Prompt) HasImage() bool {
	return p.ImageData != ""
}

// Generator sends prompts to the upstream generative-language API.
type Generator interface {
	// Available reports whether the server-held credential is present.
	Available() bool
	// Generate returns the first candidate's first text part, or "" when the
	// upstream response has none.
	Generate(ctx context.Context, p Prompt) (string, error)
}

// UpstreamError is returned when the upstream API answers with a non-2xx
// status.
type UpstreamError struct {
	Status int
	Reason string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Gemini API error: %s", e.Reason)
}

// StripDataURI removes a "data:<mime>;base64," prefix. Values without a comma
// are returned unchanged.
func StripDataURI(s string) string {
	if _, data, ok := strings.Cut(s, ","); ok {
		return data
	}
	return s
}
