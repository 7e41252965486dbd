package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/s0up4200/nhlapi/nhl/metrics"
)

var (
	metricsAddr   string
	metricsServer *http.Server
)

// serveMetrics exposes gatherer on addr under /metrics until the server is shut down.
// The listener is bound before returning so a busy port fails the command.
func serveMetrics(addr string, gatherer prometheus.Gatherer) (*http.Server, net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(gatherer))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("Metrics server stopped")
		}
	}()

	return srv, ln.Addr(), nil
}

func stopMetricsServer() {
	if metricsServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to stop metrics server")
	}
	metricsServer = nil
}

// printMetricsSummary prints per-endpoint request counts when enabled in config
func printMetricsSummary() error {
	if cfg == nil || !cfg.Metrics.Summary || registry == nil {
		return nil
	}

	summary, err := metrics.Summarize(registry)
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	if len(summary) == 0 {
		return nil
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "%-12s %-16s %s\n", "ENDPOINT", "OUTCOME", "REQUESTS")
	for _, s := range summary {
		fmt.Fprintf(os.Stderr, "%-12s %-16s %d\n", s.Endpoint, s.Outcome, s.Count)
	}

	return nil
}
