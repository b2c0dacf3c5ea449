// internal/monitoring/server.go
package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/utils"
)

// Server exposes /metrics, /healthz, and /status while a run is active.
type Server struct {
	httpServer *http.Server
	logger     utils.Logger
	started    time.Time
}

// NewServer builds the status server. The registry backs the /metrics
// endpoint and should be the one the run's Metrics were registered on.
func NewServer(addr string, registry *prometheus.Registry, logger utils.Logger) *Server {
	if logger == nil {
		logger = utils.NewLogger()
	}

	s := &Server{logger: logger, started: time.Now()}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Start serves until Shutdown. It blocks, so callers run it in a goroutine.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("metrics server listening")
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"heap_alloc_mb":  mem.HeapAlloc / (1024 * 1024),
		"heap_objects":   mem.HeapObjects,
		"num_gc":         mem.NumGC,
		"go_version":     runtime.Version(),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
