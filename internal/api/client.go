// Package api is a typed client for the clinic management REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

// Sentinel errors
var (
	// ErrNotFound is returned for a 404 response.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned for a 401 response. By the time the
	// caller sees it the transport has already cleared local credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned for a 403 response.
	ErrForbidden = errors.New("forbidden")
)

// Config holds API client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the clinic API. Authentication is the transport's concern;
// pass an http.Client built by the transport package.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an API client.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{baseURL: cfg.BaseURL, httpClient: httpClient}
}

// Admin returns the admin-scoped API surface.
func (c *Client) Admin() *AdminService { return &AdminService{c: c} }

// Doctor returns the doctor-scoped API surface.
func (c *Client) Doctor() *DoctorService { return &DoctorService{c: c} }

// Patient returns the patient-scoped API surface.
func (c *Client) Patient() *PatientService { return &PatientService{c: c} }

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// get performs a GET with retry on transient failures. Only idempotent reads
// retry; auth failures and client errors are permanent.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	operation := func() (struct{}, error) {
		err := c.do(ctx, http.MethodGet, path, query, nil, out)
		if err != nil && !retryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
	)
	return err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	log.Trace().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api call")

	return nil
}

// statusCodeError carries the HTTP status for errors outside the sentinel set.
type statusCodeError struct {
	status  int
	message string
}

func (e *statusCodeError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.status, e.message)
}

func statusError(resp *http.Response) error {
	msg := readMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return &statusCodeError{status: resp.StatusCode, message: msg}
}

func readMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "request failed"
}

func retryable(err error) bool {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotFound) {
		return false
	}
	var sc *statusCodeError
	if errors.As(err, &sc) {
		return sc.status >= 500
	}
	// Transport-level failures are worth another attempt.
	return true
}
