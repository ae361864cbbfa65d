package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultRetryWait = 250 * time.Millisecond
)

// Client talks to the reservations REST backend. A Client is safe for
// concurrent use; per-workspace bearer tokens are bound with WithToken.
type Client struct {
	baseURL   string
	http      *http.Client
	retries   uint64
	retryWait time.Duration
	token     func() string
	logger    *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the request timeout on a copy of the current
// *http.Client; a client passed through WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithRetries sets how many times an idempotent GET is retried after a
// transport failure.
func WithRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

func WithRetryWait(d time.Duration) Option {
	return func(c *Client) { c.retryWait = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		retries:   2,
		retryWait: defaultRetryWait,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of the client that reads the bearer token from fn
// on every authenticated call.
func (c *Client) WithToken(fn func() string) *Client {
	cp := *c
	cp.token = fn
	return &cp
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ====================================================
// REQUEST PIPELINE
// ====================================================

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// do performs the call and returns the raw body; a nil body with a nil
// error means the backend answered 204.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var payload []byte
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		payload = b
	}

	var raw []byte
	attempt := func() error {
		req, err := c.newRequest(ctx, r, payload)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return networkError(err)
		}
		defer resp.Body.Close()

		raw, err = c.handleResponse(resp)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	if r.method != http.MethodGet || c.retries == 0 {
		err := attempt()
		return raw, unwrapPermanent(err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryWait
	bo.MaxInterval = 4 * c.retryWait
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.retries), ctx)

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("api request retry",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		return nil, unwrapPermanent(err)
	}
	return raw, nil
}

func (c *Client) newRequest(ctx context.Context, r request, payload []byte) (*http.Request, error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth && c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp, raw)
		c.logger.Debug("api error response",
			zap.Int("status", apiErr.Code),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	return raw, nil
}

func unwrapPermanent(err error) error {
	if p, ok := err.(*backoff.PermanentError); ok {
		return p.Err
	}
	return err
}

// ====================================================
// DECODING
// ====================================================

func decodeOne[T any](raw []byte, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// decodeList accepts a bare array or an object wrapping it in "items" or
// "results".
func decodeList[T any](raw []byte, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []T{}, nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return nonNil(items), nil
	}

	var wrapped struct {
		Items   []T `json:"items"`
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if wrapped.Items != nil {
		return wrapped.Items, nil
	}
	return nonNil(wrapped.Results), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
