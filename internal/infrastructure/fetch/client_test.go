package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		client := NewClient(Config{}, nil)

		assert.NotNil(t, client.httpClient)
		assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
		assert.Equal(t, defaultUserAgent, client.userAgent)
		assert.Equal(t, int64(defaultMaxBodyBytes), client.maxBodyBytes)
		assert.Equal(t, defaultBurst, client.burst)
		assert.NotNil(t, client.logger)
	})

	t.Run("keeps provided values", func(t *testing.T) {
		client := NewClient(Config{
			UserAgent:         "TestAgent/2.0",
			Timeout:           5 * time.Second,
			MaxBodyBytes:      1024,
			RequestsPerSecond: 10,
			Burst:             3,
		}, zap.NewNop())

		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
		assert.Equal(t, "TestAgent/2.0", client.userAgent)
		assert.Equal(t, int64(1024), client.maxBodyBytes)
		assert.Equal(t, 3, client.burst)
	})
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/recipes/soup", r.URL.Path)
		assert.Equal(t, "TestAgent/2.0", r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "text/html")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><title>Test Soup</title></html>"))
	}))
	defer server.Close()

	client := NewClient(Config{UserAgent: "TestAgent/2.0", RequestsPerSecond: 100}, zap.NewNop())

	page, err := client.Fetch(context.Background(), server.URL+"/recipes/soup")
	require.NoError(t, err)
	require.NotNil(t, page)

	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, server.URL+"/recipes/soup", page.URL)
	assert.Equal(t, "<html><title>Test Soup</title></html>", string(page.Body))
}

func TestFetch_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not here"))
	}))
	defer server.Close()

	client := NewClient(Config{RequestsPerSecond: 100}, zap.NewNop())

	page, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
	assert.Equal(t, "not here", string(page.Body))
}

func TestFetch_NoRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{RequestsPerSecond: 100}, zap.NewNop())

	page, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, page.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("moved"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(Config{RequestsPerSecond: 100}, zap.NewNop())

	page, err := client.Fetch(context.Background(), server.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, server.URL+"/new", page.URL)
	assert.Equal(t, "moved", string(page.Body))
}

func TestFetch_BodyIsCapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer server.Close()

	client := NewClient(Config{MaxBodyBytes: 10, RequestsPerSecond: 100}, zap.NewNop())

	page, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, page.Body, 10)
}

func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := NewClient(Config{RequestsPerSecond: 100}, zap.NewNop())

	page, err := client.Fetch(context.Background(), serverURL)
	assert.Error(t, err)
	assert.Nil(t, page)
	assert.Contains(t, err.Error(), "failed to fetch page")
}

func TestFetch_InvalidURL(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())

	_, err := client.Fetch(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestFetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(Config{RequestsPerSecond: 100}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, server.URL)
	assert.Error(t, err)
}

func TestLimiterFor(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())

	a := client.limiterFor("example.com")
	b := client.limiterFor("EXAMPLE.com")
	c := client.limiterFor("other.org")

	assert.Same(t, a, b, "hosts are compared case-insensitively")
	assert.NotSame(t, a, c)
}

func TestTrimPartialRune(t *testing.T) {
	euro := []byte("price €")

	testCases := []struct {
		name  string
		input []byte
		want  string
	}{
		{"ascii untouched", []byte("plain"), "plain"},
		{"complete rune kept", euro, "price €"},
		{"one byte of three", euro[:len(euro)-2], "price "},
		{"two bytes of three", euro[:len(euro)-1], "price "},
		{"empty", []byte{}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := trimPartialRune(tc.input)
			assert.Equal(t, tc.want, string(got))
			assert.True(t, utf8.Valid(got))
		})
	}
}
