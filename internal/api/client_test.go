package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, Options{})
	return srv, client
}

func hitsResponse(total int, hits ...map[string]any) []byte {
	if hits == nil {
		hits = []map[string]any{}
	}
	b, _ := json.Marshal(map[string]any{
		"hits": map[string]any{"total": total, "hits": hits},
	})
	return b
}

func TestHTTPError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		b, _ := json.Marshal(map[string]any{
			"error": map[string]any{
				"type":   "query_parsing_exception",
				"reason": "Failed to parse query",
			},
		})
		w.Write(b)
	})

	_, err := client.Search(context.Background(), SearchParams{Query: "AND AND"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query_parsing_exception")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
}

func TestRateLimitedPlainTextBody(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("Rate limit exceeded. Please wait a moment."))
	})

	_, err := client.Search(context.Background(), SearchParams{Query: "enron*"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "Please wait a moment")
}

func TestClientHandlesMalformedJSON(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})

	_, err := client.Search(context.Background(), SearchParams{Query: "x*"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestBuildQuery(t *testing.T) {
	result := buildQuery("/search", QueryParams{"q": "projectx AND enron*", "from": "0"})
	assert.Contains(t, result, "/search?")
	assert.Contains(t, result, "q=projectx+AND+enron%2A")
	assert.Contains(t, result, "from=0")
}

func TestBuildQueryEmpty(t *testing.T) {
	result := buildQuery("/search", nil)
	assert.Equal(t, "/search", result)
}

func TestBuildQuerySkipsEmptyValues(t *testing.T) {
	result := buildQuery("/browse", QueryParams{"sort": "", "size": "30"})
	assert.Equal(t, "/browse?size=30", result)
}

func TestNewClientCustomTimeout(t *testing.T) {
	client := NewClient("http://example.com", Options{Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)

	client = NewClient("http://example.com", Options{})
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://example.com/", Options{})
	assert.Equal(t, "http://example.com", client.BaseURL())
}

func TestClientTargetsBaseURLAndAcceptsJSON(t *testing.T) {
	var gotURL, gotAccept string
	client := NewClient(DefaultBaseURL, Options{})
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		gotAccept = r.Header.Get("Accept")
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       httpBody(string(hitsResponse(0))),
			Header:     make(http.Header),
		}, nil
	})

	_, err := client.Search(context.Background(), SearchParams{Query: "a*"})
	require.NoError(t, err)
	assert.Contains(t, gotURL, DefaultBaseURL+"/search?")
	assert.Equal(t, "application/json", gotAccept)
}

func TestClientConcurrentRequests(t *testing.T) {
	var count atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.Write(hitsResponse(1, map[string]any{"_id": r.URL.Query().Get("q"), "_source": map[string]any{"from": "a@enron.com"}}))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, Options{})

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := client.Search(context.Background(), SearchParams{Query: fmt.Sprintf("term%d*", idx)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(workers), count.Load())
}

func TestCircuitBreakerOpensAfterServerErrors(t *testing.T) {
	var count atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	client = NewClient(client.BaseURL(), Options{Breaker: BreakerSettings{
		Enabled:          true,
		MaxRequests:      1,
		Timeout:          time.Minute,
		ReadyToTripRatio: 0.5,
	}})

	for i := 0; i < 3; i++ {
		_, err := client.Search(context.Background(), SearchParams{Query: "x*"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}

	_, err := client.Search(context.Background(), SearchParams{Query: "x*"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), count.Load())
}

func TestCircuitBreakerIgnoresClientErrors(t *testing.T) {
	var count atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})
	client = NewClient(client.BaseURL(), Options{Breaker: BreakerSettings{
		Enabled: true,
		Timeout: time.Minute,
	}})

	for i := 0; i < 5; i++ {
		_, err := client.Search(context.Background(), SearchParams{Query: "x*"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, int32(5), count.Load())
}

func TestRateLimiterHonoursContext(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(hitsResponse(0))
	})
	client = NewClient(client.BaseURL(), Options{RequestsPerMinute: 1})

	_, err := client.Search(context.Background(), SearchParams{Query: "a*"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Search(ctx, SearchParams{Query: "b*"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}
