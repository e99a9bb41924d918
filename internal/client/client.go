// Package client calls the email template API on behalf of the editor.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/emailbuilder/emailbuilder/internal/emailtemplate"
)

const defaultFilename = "email-template.html"

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the service at baseURL, e.g. http://localhost:3000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetLayout fetches the raw layout document.
func (c *Client) GetLayout(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/getEmailLayout", nil)
	if err != nil {
		return "", err
	}
	b, _, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SaveDraft persists d and returns the service's confirmation message.
func (c *Client) SaveDraft(ctx context.Context, d emailtemplate.Draft) (string, error) {
	req, err := c.jsonRequest(ctx, "/api/uploadEmailConfig", d)
	if err != nil {
		return "", err
	}
	b, _, err := c.do(req)
	if err != nil {
		return "", err
	}
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return "", fmt.Errorf("decode save response: %w", err)
	}
	return out.Message, nil
}

// RenderAndDownload returns the rendered HTML and the attachment filename.
func (c *Client) RenderAndDownload(ctx context.Context, d emailtemplate.Draft) ([]byte, string, error) {
	req, err := c.jsonRequest(ctx, "/api/renderAndDownloadTemplate", d)
	if err != nil {
		return nil, "", err
	}
	b, hdr, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	name := defaultFilename
	if _, params, err := mime.ParseMediaType(hdr.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return b, name, nil
}

func (c *Client) jsonRequest(ctx context.Context, path string, body interface{}) (*http.Request, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(b, &eb) == nil {
			apiErr.Message = eb.Error
		}
		return nil, nil, apiErr
	}
	return b, resp.Header, nil
}
