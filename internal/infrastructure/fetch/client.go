package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/recipelift/backend/internal/domain"
)

const (
	defaultUserAgent         = "RecipeLift/1.0"
	defaultTimeout           = 30 * time.Second
	defaultMaxBodyBytes      = 5 << 20
	defaultRequestsPerSecond = 2.0
	defaultBurst             = 5

	acceptHeader = "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"
)

// Config holds fetcher settings
type Config struct {
	UserAgent         string
	Timeout           time.Duration
	MaxBodyBytes      int64
	RequestsPerSecond float64
	Burst             int
}

// Client fetches recipe pages over HTTP. Each host gets its own token bucket
// so a burst of imports from one site does not hammer it.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
	limit        rate.Limit
	burst        int
	logger       *zap.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

var _ domain.PageFetcher = (*Client)(nil)

// NewClient creates a new page fetcher
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = defaultRequestsPerSecond
	}
	if config.Burst <= 0 {
		config.Burst = defaultBurst
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		userAgent:    config.UserAgent,
		maxBodyBytes: config.MaxBodyBytes,
		limit:        rate.Limit(config.RequestsPerSecond),
		burst:        config.Burst,
		logger:       logger,
		limiters:     make(map[string]*rate.Limiter),
	}
}

// Fetch performs a single GET. Any HTTP status is returned on the page;
// only transport failures come back as errors. There is no retry.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*domain.RawPage, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid page URL %q", rawURL)
	}

	// Wait for this host's bucket
	if err := c.limiterFor(parsed.Host).Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", "en")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("page fetch failed", zap.String("url", rawURL), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	// Read one byte past the cap so truncation can be detected
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read page body: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		c.logger.Warn("page body truncated",
			zap.String("url", rawURL),
			zap.Int64("max_body_bytes", c.maxBodyBytes),
		)
		body = trimPartialRune(body[:c.maxBodyBytes])
	}

	c.logger.Debug("page fetched",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &domain.RawPage{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

func (c *Client) limiterFor(host string) *rate.Limiter {
	host = strings.ToLower(host)

	c.mu.Lock()
	defer c.mu.Unlock()

	limiter, ok := c.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(c.limit, c.burst)
		c.limiters[host] = limiter
	}
	return limiter
}

// trimPartialRune drops a multi-byte sequence cut in half by truncation.
func trimPartialRune(body []byte) []byte {
	for i := 0; i < utf8.UTFMax-1 && len(body) > 0; i++ {
		r, size := utf8.DecodeLastRune(body)
		if r != utf8.RuneError || size != 1 {
			break
		}
		body = body[:len(body)-1]
	}
	return body
}
