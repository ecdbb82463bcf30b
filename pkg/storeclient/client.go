// Package storeclient talks JSON over HTTP to the external data store that owns
// courses, applications, notifications, help requests and meet links.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/noah-isme/course-portal-api/pkg/config"
)

const maxErrorBody = 64 * 1024

// Observer receives timing for every store call.
type Observer interface {
	ObserveStoreRequest(operation, outcome string, duration time.Duration)
}

// StatusError is returned when the store answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	// Message is the store's own message or error field, when it supplied one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("store responded %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("store responded %d", e.StatusCode)
}

// AsStatusError extracts a *StatusError from err.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Client is a thin JSON client for the store API.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver installs a metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New constructs a store client.
func New(cfg config.StoreConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get decodes the JSON body of GET path into dest.
func (c *Client) Get(ctx context.Context, path string, dest interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, dest)
}

// Post sends body as JSON and decodes the response into dest when non-nil.
func (c *Client) Post(ctx context.Context, path string, body, dest interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, dest)
}

// Put sends body as JSON and decodes the response into dest when non-nil.
func (c *Client) Put(ctx context.Context, path string, body, dest interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, dest)
}

// Delete issues DELETE path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Ping checks that the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	op := operationLabel(method, path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, "transport_error", time.Since(start))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(op, "status_error", time.Since(start))
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.observe(op, "ok", time.Since(start))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		c.observe(op, "decode_error", time.Since(start))
		return fmt.Errorf("decode %s: %w", op, err)
	}
	c.observe(op, "ok", time.Since(start))
	return nil
}

func (c *Client) observe(op, outcome string, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveStoreRequest(op, outcome, d)
	}
}

// operationLabel keeps metric cardinality bounded by dropping resource IDs.
func operationLabel(method, path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexAny(trimmed, "?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	segments := strings.Split(trimmed, "/")
	label := segments[0]
	if len(segments) > 1 && segments[1] == "all" {
		label += "/all"
	} else if len(segments) > 1 && segments[0] == "admin" {
		label += "/" + segments[1]
	} else if len(segments) > 1 {
		label += "/:id"
	}
	return method + " /" + label
}

func extractMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
