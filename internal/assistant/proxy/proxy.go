// Package proxy implements assistant.Caller against the /api/gemini endpoint.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vbonduro/bananabread/internal/assistant"
	"github.com/vbonduro/bananabread/internal/gemini"
)

const endpointPath = "/api/gemini"

var _ assistant.Caller = (*Client)(nil)

type Client struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// New returns a Client for the proxy rooted at baseURL.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		url:    strings.TrimRight(baseURL, "/") + endpointPath,
		client: &http.Client{},
		logger: logger,
	}
}

// Ask posts prompt (and optional image) to the proxy. Any transport or decode
// failure becomes gemini.ConnectionMessage; an {error} body is relayed as is.
func (c *Client) Ask(ctx context.Context, prompt, imageBase64 string) assistant.Result {
	payload, err := json.Marshal(gemini.Request{Prompt: prompt, ImageBase64: imageBase64})
	if err != nil {
		c.logger.Error("failed to marshal gemini request", "error", err)
		return assistant.Failed(gemini.ConnectionMessage)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("failed to create gemini request", "error", err)
		return assistant.Failed(gemini.ConnectionMessage)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("gemini proxy unreachable", "url", c.url, "error", err)
		return assistant.Failed(gemini.ConnectionMessage)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close proxy response body", "error", err)
		}
	}()

	var out gemini.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Warn("invalid proxy response", "status", resp.StatusCode, "error", err)
		return assistant.Failed(gemini.ConnectionMessage)
	}

	if out.Error != "" {
		c.logger.Debug("proxy returned error", "status", resp.StatusCode, "message", out.Error)
		return assistant.Failed(out.Error)
	}
	if out.Text == "" {
		return assistant.Ok(gemini.FallbackText)
	}
	return assistant.Ok(out.Text)
}
