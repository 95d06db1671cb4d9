package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

var (
	ErrTooManyRequests = errors.New("too many requests")
	ErrInvalidPath     = errors.New("invalid request path")
)

// validPath rejects empty, "." and ".." segments so a path never resolves to another route.
func validPath(path string) bool {
	for _, segment := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if segment == "" || segment == "." || segment == ".." {
			return false
		}
	}
	return true
}

func New(cfg Config, httpClient *http.Client) (*Client, error) {
	baseURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse backend url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("backend url must be absolute: %q", cfg.URL)
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Timeout > 0 && httpClient.Timeout == 0 {
		httpClient.Timeout = cfg.Timeout.Std()
	}

	limit := rate.Inf
	if cfg.Every > 0 {
		limit = rate.Every(cfg.Every.Std())
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

// Client talks to the platform REST backend. The zero token client is only useful for
// public endpoints; use WithToken for everything user scoped.
type Client struct {
	cfg        Config
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
}

// WithToken returns a client sending the given bearer token. The rate limiter is shared.
func (c *Client) WithToken(token string) *Client {
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		cfg:     c.cfg,
		baseURL: c.baseURL,
		httpClient: &http.Client{
			Timeout: c.httpClient.Timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{
					AccessToken: token,
					TokenType:   "Bearer",
				}),
				Base: base,
			},
		},
		limiter: c.limiter,
	}
}

// Do sends one request and returns the decoded envelope. A failed envelope is returned as *Error.
func (c *Client) Do(ctx context.Context, method string, path string, query url.Values, body any) (*Envelope, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	return c.do(ctx, method, path, query, payload, 0)
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, payload []byte, try int) (*Envelope, error) {
	if try >= c.cfg.MaxRetries {
		return nil, fmt.Errorf("failed to %s %s after %d tries: %w", method, path, c.cfg.MaxRetries, ErrTooManyRequests)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if !validPath(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	rq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	rq.Header.Set("Accept", "application/json")
	if payload != nil {
		rq.Header.Set("Content-Type", "application/json")
	}

	slog.DebugContext(ctx, "Sending backend request", slog.String("method", method), slog.String("path", path), slog.Int("try", try))

	rs, err := c.httpClient.Do(rq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer rs.Body.Close()

	data, err := io.ReadAll(rs.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if rs.StatusCode == http.StatusBadGateway || rs.StatusCode == http.StatusTooManyRequests {
		slog.ErrorContext(ctx, "Backend request throttled", slog.String("path", path), slog.Int("status_code", rs.StatusCode), slog.String("response", string(data)))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.cfg.RetryDelay.Std()):
		}
		return c.do(ctx, method, path, query, payload, try+1)
	}

	slog.DebugContext(ctx, "Received backend response", slog.String("path", path), slog.Int("status_code", rs.StatusCode), slog.String("response", string(data)))

	env, err := decodeEnvelope(data)
	if err != nil {
		if rs.StatusCode >= http.StatusBadRequest {
			return nil, &Error{StatusCode: rs.StatusCode, Message: http.StatusText(rs.StatusCode)}
		}
		slog.ErrorContext(ctx, "Failed to decode response", slog.String("path", path), slog.String("response", string(data)), slog.Any("err", err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.succeeded(rs.StatusCode) {
		return nil, env.asError(rs.StatusCode)
	}

	return env, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) delete(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, body)
}
