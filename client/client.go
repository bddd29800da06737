// Package client is the HTTP JSON client of the Argus backend: field
// listings, rule CRUD, ATT&CK knowledge base, and the preview/lookup/
// profiling evaluator endpoints. It owns no wire formats beyond the
// request/response shapes in package core.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds the client's connection settings.
type Config struct {
	// BaseURL is the backend API root, e.g. "http://127.0.0.1:8080/api".
	BaseURL string
	// Timeout bounds every request; a hung backend call fails instead of
	// leaving the caller loading indefinitely.
	Timeout time.Duration
	// SuggestRate throttles field-value suggestion fetches, which fire on
	// every field change in the filter editor.
	SuggestRate  rate.Limit
	SuggestBurst int
}

// Client talks to the Argus backend. Safe for concurrent use.
type Client struct {
	baseURL        string
	http           *http.Client
	logger         *zap.SugaredLogger
	suggestLimiter *rate.Limiter
}

// New creates a backend client.
func New(cfg Config, logger *zap.SugaredLogger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.SuggestRate <= 0 {
		cfg.SuggestRate = rate.Limit(5)
	}
	if cfg.SuggestBurst <= 0 {
		cfg.SuggestBurst = 5
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           &http.Client{Timeout: cfg.Timeout},
		logger:         logger,
		suggestLimiter: rate.NewLimiter(cfg.SuggestRate, cfg.SuggestBurst),
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) postFile(ctx context.Context, path, field, filename string, content []byte, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
