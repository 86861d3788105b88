// Package httpclient is a small JSON client with default headers and a
// per-instance request timeout.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultTimeout = 30 * time.Second

var ErrTimeout = errors.New("request timeout")

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.StatusText)
}

// TimeoutError is returned when a request does not complete within the
// client's timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %dms", e.Timeout.Milliseconds())
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

type Options struct {
	// Headers are merged over the base JSON content type on every request.
	Headers map[string]string
	// Timeout bounds each request, body decoding included. Zero means DefaultTimeout.
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    *slog.Logger
}

type RequestOptions struct {
	Method  string
	Body    []byte
	Headers map[string]string
	// Timeout overrides the client's timeout for this request when positive.
	Timeout time.Duration
}

type Client struct {
	headers map[string]string
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
}

func New(opts Options) *Client {
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		headers: headers,
		timeout: timeout,
		http:    &http.Client{Transport: opts.Transport},
		logger:  logger,
	}
}

// Request sends one request and decodes the JSON response body into out.
// A nil out, or an empty body, skips decoding.
func (c *Client) Request(ctx context.Context, url string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, url, body)
	if err != nil {
		return err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, reqCtx, timeout, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("http request", "method", method, "url", url, "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, reqCtx, timeout, err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string, out any) error {
	return c.Request(ctx, url, RequestOptions{Method: http.MethodGet, Headers: headers}, out)
}

func (c *Client) Post(ctx context.Context, url string, data any, headers map[string]string, out any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.Request(ctx, url, RequestOptions{Method: http.MethodPost, Body: body, Headers: headers}, out)
}

func GetJSON[T any](ctx context.Context, c *Client, url string) (T, error) {
	var out T
	err := c.Get(ctx, url, nil, &out)
	return out, err
}

func PostJSON[T any](ctx context.Context, c *Client, url string, data any) (T, error) {
	var out T
	err := c.Post(ctx, url, data, nil, &out)
	return out, err
}

// transportError maps an expired request timeout to a TimeoutError. When the
// caller's own context is already done, cancelled or past its deadline, err is
// returned as is.
func (c *Client) transportError(parent, reqCtx context.Context, timeout time.Duration, err error) error {
	if parent.Err() != nil {
		return err
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		c.logger.Debug("http request timed out", "timeout", timeout)
		return &TimeoutError{Timeout: timeout}
	}
	return err
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
