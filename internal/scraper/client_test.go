// internal/scraper/client_test.go
package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(attempts int) *HTTPClient {
	return NewHTTPClient(ClientConfig{
		Timeout:       5 * time.Second,
		RetryAttempts: attempts,
		RetryDelay:    10 * time.Millisecond,
		RateLimit:     1000,
		RateBurst:     1000,
	})
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("request must carry a user agent")
		}
		if r.Header.Get("Accept-Language") == "" {
			t.Error("request must carry browser-like headers")
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	body, err := testClient(0).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	body, err := testClient(2).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if body != "recovered" {
		t.Errorf("body = %q", body)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(2).Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", httpErr.StatusCode)
	}
	if httpErr.Retryable() {
		t.Error("404 must not be retryable")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestHTTPErrorRetryable(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{429, true},
		{500, true},
		{503, true},
		{521, true},
		{404, false},
		{403, false},
		{200, false},
	}
	for _, tt := range tests {
		err := &HTTPError{StatusCode: tt.status}
		if err.Retryable() != tt.retryable {
			t.Errorf("status %d: retryable = %v, want %v", tt.status, err.Retryable(), tt.retryable)
		}
	}
}

func TestUserAgentRotation(t *testing.T) {
	client := NewHTTPClient(ClientConfig{UserAgents: []string{"ua-one", "ua-two"}})

	if ua := client.nextUserAgent(); ua != "ua-one" {
		t.Errorf("first UA = %q", ua)
	}
	if ua := client.nextUserAgent(); ua != "ua-two" {
		t.Errorf("second UA = %q", ua)
	}
	if ua := client.nextUserAgent(); ua != "ua-one" {
		t.Errorf("rotation must wrap, got %q", ua)
	}
}

func TestCheckBlocked(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		blocked bool
	}{
		{"clean page", "<html><body>a post</body></html>", false},
		{"rate limit wall", "<html>Please wait a few minutes before you try again</html>", true},
		{"login wall", `<html><script>{"require_login":false,"login_required":true}</script></html>`, true},
		{"challenge wall", `{"checkpoint_url":"/challenge/","challenge_required":true}`, true},
		{"case insensitive", "<html>PLEASE WAIT A FEW MINUTES BEFORE YOU TRY AGAIN</html>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBlocked("https://www.instagram.com/p/X/", tt.html)
			if tt.blocked && err == nil {
				t.Error("expected BlockedError")
			}
			if !tt.blocked && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.blocked {
				var blockErr *BlockedError
				if !errors.As(err, &blockErr) {
					t.Fatalf("expected BlockedError, got %T", err)
				}
				if !blockErr.Retryable() {
					t.Error("block walls must be retryable")
				}
			}
		})
	}
}
