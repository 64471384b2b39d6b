package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Jurgensen-SJB/supermercado/internal/errors"
	"github.com/Jurgensen-SJB/supermercado/internal/metrics"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the pre-existing storefront REST API. It owns no
// server state; every call suspends until the response or error
// arrives, with no retries and no cancellation beyond the caller's
// context.
type Client struct {
	baseURL   string
	http      *http.Client
	sanitizer *bluemonday.Policy
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		}
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// shape of API error payloads: {"error": "..."}
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, operation string, query url.Values, body, out any) error {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.InternalError("Failed to encode request body").WithError(err)
		}

		reader = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return errors.InternalError("Failed to build API request").WithError(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	correlationID := uuid.NewString()
	req.Header.Set("X-Request-ID", correlationID)

	requestLogger := slog.Default().With(
		slog.String("correlation_id", correlationID),
		slog.String("http_method", method),
		slog.String("operation", operation),
	)

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		requestLogger.Error("API request failed", slog.String("error", err.Error()))
		metrics.ObserveAPIRequest(method, operation, 0, time.Since(start))

		return errors.APIError("The store is unreachable right now", http.StatusServiceUnavailable).WithError(err)
	}

	defer resp.Body.Close()

	metrics.ObserveAPIRequest(method, operation, resp.StatusCode, time.Since(start))
	requestLogger.Debug("API request completed",
		slog.Int("http_status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.APIError("The store returned an unreadable response", resp.StatusCode).WithError(err)
	}

	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	message := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	var payload errorBody
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return errors.NotFoundError(message)
	case http.StatusUnauthorized:
		return errors.UnauthorizedError(message)
	case http.StatusForbidden:
		return errors.ForbiddenError(message)
	case http.StatusBadRequest:
		return errors.BadRequestError(message)
	default:
		return errors.APIError(message, resp.StatusCode)
	}
}

// sanitize strips any markup from display text before it becomes part of
// a locally persisted snapshot.
func (c *Client) sanitize(s string) string {
	return strings.TrimSpace(c.sanitizer.Sanitize(s))
}
