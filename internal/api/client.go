package api

import (
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

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited is returned when the backend answers 429.
	ErrRateLimited = errors.New("rate limited by search backend")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("search backend unavailable")
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
}

// BreakerSettings configures the circuit breaker wrapped around every request.
type BreakerSettings struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	ReadyToTripRatio float64
}

// Options tunes a Client. Zero values fall back to defaults.
type Options struct {
	Timeout           time.Duration
	RequestsPerMinute int
	Breaker           BreakerSettings
	Logger            *slog.Logger
}

// Client wraps HTTP calls to the mail search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a new API client.
func NewClient(baseURL string, opts Options) *Client {
	httpTimeout := 30 * time.Second
	if opts.Timeout > 0 {
		httpTimeout = opts.Timeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
		logger: logger.With("component", "api"),
	}
	if opts.RequestsPerMinute > 0 {
		burst := opts.RequestsPerMinute / 6
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), burst)
	}
	if opts.Breaker.Enabled {
		c.breaker = newBreaker(opts.Breaker, c.logger)
	}
	return c
}

func newBreaker(cfg BreakerSettings, logger *slog.Logger) *gobreaker.CircuitBreaker {
	ratio := cfg.ReadyToTripRatio
	if ratio <= 0 {
		ratio = 0.6
	}
	st := gobreaker.Settings{
		Name:        "search-api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= ratio
		},
		// Client errors and throttling say nothing about backend health.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, ErrRateLimited) || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return gobreaker.NewCircuitBreaker(st)
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes an HTTP request and returns the raw response body.
func (c *Client) do(ctx context.Context, method, path string) ([]byte, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("wait for rate limiter: %w", err)
		}
	}
	if c.breaker == nil {
		return c.roundTrip(ctx, method, path)
	}

	var status int
	out, err := c.breaker.Execute(func() (interface{}, error) {
		body, code, err := c.roundTrip(ctx, method, path)
		status = code
		return body, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, status, err
	}
	return out.([]byte), status, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("request done", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusTooManyRequests {
		msg, _ := extractAPIErrorBody(respBody)
		return nil, resp.StatusCode, fmt.Errorf("%w: %s", ErrRateLimited, msg)
	}
	if resp.StatusCode >= 400 {
		msg, _ := extractAPIErrorBody(respBody)
		return nil, resp.StatusCode, &StatusError{Code: resp.StatusCode, Message: msg}
	}

	return respBody, resp.StatusCode, nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodGet, path)
	return body, err
}

// decodeSearch decodes a search-shaped response.
func decodeSearch(data []byte) (*SearchResponse, error) {
	var resp SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Hits.Hits == nil {
		resp.Hits.Hits = []Hit{}
	}
	return &resp, nil
}

// buildQuery appends query params to a path.
func buildQuery(path string, params QueryParams) string {
	if len(params) == 0 {
		return path
	}
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	return path + "?" + q.Encode()
}

// extractAPIErrorBody pulls a readable message out of an error body. Plain-text bodies
// (the backend's 429 page) are returned trimmed.
func extractAPIErrorBody(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		msg := strings.TrimSpace(string(body))
		return msg, msg != ""
	}

	if msg, ok := parseErrorValue(payload["error"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["message"]); ok {
		return msg, true
	}
	return "", false
}

func parseErrorValue(raw any) (string, bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		if msg == "" {
			return "", false
		}
		return msg, true
	case map[string]any:
		if nested, ok := parseErrorValue(value["error"]); ok {
			return nested, true
		}
		typ, _ := value["type"].(string)
		reason, _ := value["reason"].(string)
		return formatAPIError(typ, reason)
	}
	return "", false
}

func formatAPIError(code, message string) (string, bool) {
	code = strings.TrimSpace(code)
	message = strings.TrimSpace(message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}
