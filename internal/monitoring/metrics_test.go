// internal/monitoring/metrics_test.go
package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.PageFetched("content")
	m.PageFetched("content")
	m.PageFetched("profile")
	m.RecordEmitted("image")
	m.RecordDropped("date_filter")
	m.BlockDetected()
	m.StrategyAttempt("embedded_data", "match", 5*time.Millisecond)
	m.QueueDepth(7)

	if got := testutil.ToFloat64(m.pagesFetched.WithLabelValues("content")); got != 2 {
		t.Errorf("pagesFetched[content] = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.pagesFetched.WithLabelValues("profile")); got != 1 {
		t.Errorf("pagesFetched[profile] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.recordsEmitted.WithLabelValues("image")); got != 1 {
		t.Errorf("recordsEmitted[image] = %v", got)
	}
	if got := testutil.ToFloat64(m.blocksDetected); got != 1 {
		t.Errorf("blocksDetected = %v", got)
	}
	if got := testutil.ToFloat64(m.strategyAttempts.WithLabelValues("embedded_data", "match")); got != 1 {
		t.Errorf("strategyAttempts = %v", got)
	}
	if got := testutil.ToFloat64(m.queueDepth); got != 7 {
		t.Errorf("queueDepth = %v", got)
	}
}

func TestNopMetricsDoesNotPanic(t *testing.T) {
	m := NewNopMetrics()
	m.PageFetched("content")
	m.PageSkipped("fetch_error")
	m.RecordEmitted("reel")
	m.BlockDetected()
	m.QueueDepth(0)
}

func TestServerEndpoints(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	m.PageFetched("content")

	server := NewServer(":0", registry, nil)
	ts := httptest.NewServer(server.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
	var health map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health["status"] != "ok" {
		t.Errorf("health status = %q", health["status"])
	}

	resp, err = http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if _, ok := status["goroutines"]; !ok {
		t.Error("status must report goroutine count")
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d", resp.StatusCode)
	}
}
