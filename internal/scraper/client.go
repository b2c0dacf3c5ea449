// internal/scraper/client.go
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HTTPClient fetches pages with user-agent rotation, browser-shaped
// headers, shared rate limiting, and retry on transient status codes.
type HTTPClient struct {
	httpClient    *http.Client
	userAgents    []string
	currentUA     int
	uaMutex       sync.Mutex
	rateLimiter   *rate.Limiter
	retryAttempts int
	retryDelay    time.Duration
	headers       map[string]string
	cookies       map[string]string
}

// ClientConfig defines configuration options for the HTTP client.
type ClientConfig struct {
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	UserAgents    []string
	Headers       map[string]string
	Cookies       map[string]string
	RateLimit     float64 // requests per second, shared across workers
	RateBurst     int
}

// NewHTTPClient creates a new HTTP client with the specified configuration.
func NewHTTPClient(config ClientConfig) *HTTPClient {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryAttempts == 0 {
		config.RetryAttempts = 2
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 0.5
	}
	if config.RateBurst == 0 {
		config.RateBurst = 1
	}
	if len(config.UserAgents) == 0 {
		config.UserAgents = DefaultUserAgents()
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgents:    config.UserAgents,
		rateLimiter:   rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		retryAttempts: config.RetryAttempts,
		retryDelay:    config.RetryDelay,
		headers:       config.Headers,
		cookies:       config.Cookies,
	}
}

// Fetch performs a rate-limited GET and returns the response body. Server
// errors and 429s are retried with linear backoff; everything else fails
// immediately.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) (string, error) {
	if _, err := url.Parse(targetURL); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		c.setRequestHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w",
				attempt+1, c.retryAttempts+1, err)
			if attempt < c.retryAttempts {
				c.waitForRetry(ctx, attempt)
				continue
			}
			break
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if readErr != nil {
				return "", fmt.Errorf("failed to read response: %w", readErr)
			}
			return string(body), nil
		}

		lastErr = &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        targetURL,
			Attempt:    attempt + 1,
		}
		if !retryableStatus(resp.StatusCode) {
			break
		}
		if attempt < c.retryAttempts {
			c.waitForRetry(ctx, attempt)
		}
	}

	return "", lastErr
}

// setRequestHeaders configures headers to make requests look browser-like,
// matching the header set real clients send to the target.
func (c *HTTPClient) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.nextUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "max-age=0")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

// nextUserAgent rotates through the configured pool.
func (c *HTTPClient) nextUserAgent() string {
	c.uaMutex.Lock()
	defer c.uaMutex.Unlock()

	ua := c.userAgents[c.currentUA]
	c.currentUA = (c.currentUA + 1) % len(c.userAgents)
	return ua
}

// waitForRetry backs off linearly per attempt, respecting cancellation.
func (c *HTTPClient) waitForRetry(ctx context.Context, attempt int) {
	select {
	case <-ctx.Done():
	case <-time.After(c.retryDelay * time.Duration(attempt+1)):
	}
}

func retryableStatus(statusCode int) bool {
	switch statusCode {
	case 429, 500, 502, 503, 504, 520, 521, 522, 523, 524:
		return true
	}
	return false
}

// HTTPError represents an HTTP-level failure with context.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Attempt    int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (URL: %s, attempt: %d)",
		e.StatusCode, e.Status, e.URL, e.Attempt)
}

// Retryable reports whether the status warrants another engine-level pass.
func (e *HTTPError) Retryable() bool {
	return retryableStatus(e.StatusCode)
}

// DefaultUserAgents returns a pool of realistic desktop user agents.
func DefaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}
