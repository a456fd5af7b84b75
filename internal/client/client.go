// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client sends lookup requests to the personal number registry.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/pnum-lookup/internal/httputil"
	"github.com/pdiddy/pnum-lookup/pkg/types"
)

const defaultUserAgent = "pls/dev"

// Client issues GET requests against the registry base URL.
type Client struct {
	HTTP   *http.Client
	cfg    types.HTTPConfig
	logger *slog.Logger
}

// New returns a Client for cfg. A nil logger discards log output.
func New(cfg types.HTTPConfig, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = types.DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// BuildURL concatenates base, action and the optional pnum. The base is used
// verbatim and is expected to end with a slash.
func BuildURL(base string, action types.Action, pnum string) string {
	url := base + string(action)
	if pnum != "" {
		url += "/" + pnum
	}
	return url
}

// Send issues the GET request for action and pnum and reads the full body.
// Any HTTP status is returned as a Response; only transport failures are errors.
func (c *Client) Send(ctx context.Context, action types.Action, pnum string) (*Response, error) {
	reqURL := BuildURL(c.cfg.BaseURL, action, pnum)
	requestID := uuid.New().String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	c.logger.Debug("sending request", "url", reqURL, "request_id", requestID)
	start := time.Now()

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.cfg.MaxRetries, c.logger)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	finalURL := reqURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	c.logger.Debug("response received",
		"url", finalURL,
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start))

	return &Response{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Body:       body,
		RequestID:  requestID,
	}, nil
}
