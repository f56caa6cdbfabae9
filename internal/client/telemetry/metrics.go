package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/api"
	"github.com/dmitrijs2005/ytsummarizer/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the collectors of gatherer under /metrics.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

// ServeMetrics listens on addr until ctx is done. An empty addr disables the
// listener. It returns once the listener is up; serving errors are logged.
func ServeMetrics(ctx context.Context, addr string, gatherer prometheus.Gatherer, log logging.Logger) (net.Addr, error) {
	if addr == "" {
		return nil, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	srv := &http.Server{
		Handler:           MetricsHandler(gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server stopped", "err", err)
		}
	}()

	log.Info(ctx, "serving metrics", "addr", ln.Addr().String())
	return ln.Addr(), nil
}

// RequestCount is one row of WriteRequestStats.
type RequestCount struct {
	Operation string
	Outcome   string
	Count     float64
}

// RequestStats reads the backend request counters from gatherer, sorted by
// operation then outcome.
func RequestStats(gatherer prometheus.Gatherer) ([]RequestCount, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	var out []RequestCount
	for _, mf := range families {
		if mf.GetName() != api.RequestsMetric {
			continue
		}
		for _, m := range mf.GetMetric() {
			rc := RequestCount{Count: m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "operation":
					rc.Operation = lp.GetValue()
				case "outcome":
					rc.Outcome = lp.GetValue()
				}
			}
			out = append(out, rc)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Operation != out[j].Operation {
			return out[i].Operation < out[j].Operation
		}
		return out[i].Outcome < out[j].Outcome
	})
	return out, nil
}

// WriteRequestStats prints RequestStats as a small table.
func WriteRequestStats(w io.Writer, gatherer prometheus.Gatherer) error {
	stats, err := RequestStats(gatherer)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "No requests yet")
		return err
	}
	for _, s := range stats {
		if _, err := fmt.Fprintf(w, "%-14s %-14s %6.0f\n", s.Operation, s.Outcome, s.Count); err != nil {
			return err
		}
	}
	return nil
}
