// Package api is the client for the household expense service. The
// service is the source of truth; this client does no retries — a
// failed call is reported and the caller decides what to roll back.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client talks to the expense service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient builds a client for the service at baseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "expense-api",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		cb:         cb,
		logger:     logger,
	}
}

// do runs one request through the circuit breaker. A JSON body is
// sent when in != nil; the response body is decoded into out when
// out != nil. Non-2xx responses become *StatusError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(jsonBody)
	}

	_, err := c.cb.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-Id", uuid.NewString())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("api: request failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err),
			)
			return nil, err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			c.logger.Warn("api: non-2xx",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(respBody)),
			)
			return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(respBody)}
		}

		c.logger.Debug("api: ok",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return nil, fmt.Errorf("decode %s %s response: %w", method, path, err)
			}
		}
		return nil, nil
	})
	return err
}
