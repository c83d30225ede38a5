// Package httpapi exposes preflight passes over HTTP: POST /api/run executes
// one on-demand pass and returns the results. There is no scheduling and no
// persistence; every request starts from an empty summary.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/preflight/internal/httpapi/middleware"
	"github.com/hamed0406/preflight/internal/metrics"
	"github.com/hamed0406/preflight/internal/probe"
	"github.com/hamed0406/preflight/internal/runner"
	"github.com/hamed0406/preflight/internal/sources"
)

type Server struct {
	Logger     *zap.Logger
	Checker    probe.Checker
	Metrics    *metrics.Collector
	MetricsH   http.Handler // promhttp handler, optional
	APIKeys    []string
	RatePerMin int
	RateBurst  int
}

func NewServer(l *zap.Logger, c probe.Checker, m *metrics.Collector, metricsH http.Handler) *Server {
	return &Server{Logger: l, Checker: c, Metrics: m, MetricsH: metricsH}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.MetricsH != nil {
		r.Handle("/metrics", s.MetricsH)
	}

	r.Group(func(g chi.Router) {
		g.Use(middleware.RateLimit(s.RatePerMin, s.RateBurst))
		g.Use(middleware.RequireKey(s.APIKeys))
		g.Post("/api/run", s.handleRun)
	})

	return r
}

type runPayload struct {
	Parallel bool                `json:"parallel"`
	Hosts    map[string][]string `json:"hosts,omitempty"` // "http" / "https"; empty means the built-in registry
}

type resultRow struct {
	URL          string `json:"url"`
	Status       string `json:"status"`
	Code         string `json:"code"`
	ResponseTime string `json:"response_time"`
}

type runResponse struct {
	Success int         `json:"success"`
	Failed  int         `json:"failed"`
	Results []resultRow `json:"results"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var p runPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	reg, err := registryFrom(p.Hosts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run := &runner.Runner{
		Checker:  s.Checker,
		Logger:   s.Logger,
		Metrics:  s.Metrics,
		Parallel: p.Parallel,
	}
	sum := run.Run(r.Context(), reg, nil)

	resp := runResponse{
		Success: sum.Success(),
		Failed:  sum.Failed(),
		Results: make([]resultRow, 0, sum.Total()),
	}
	for _, res := range sum.Results() {
		status := "FAILED"
		if res.OK {
			status = "OK"
		}
		rt := "unavailable"
		if res.Elapsed >= 0 {
			rt = formatSeconds(res.Elapsed)
		}
		resp.Results = append(resp.Results, resultRow{
			URL:          res.URL,
			Status:       status,
			Code:         res.Code,
			ResponseTime: rt,
		})
	}

	s.Logger.Info("run_completed",
		zap.Int("probed", sum.Total()),
		zap.Int("failed", sum.Failed()),
		zap.Bool("parallel", p.Parallel),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func formatSeconds(e float64) string {
	return strconv.FormatFloat(e, 'f', 3, 64)
}

func registryFrom(hosts map[string][]string) (sources.Registry, error) {
	if len(hosts) == 0 {
		return sources.Default(), nil
	}
	reg := sources.Registry{}
	for proto, list := range hosts {
		switch sources.Protocol(proto) {
		case sources.HTTP, sources.HTTPS:
			reg[sources.Protocol(proto)] = list
		default:
			return nil, errors.New("unknown protocol " + proto)
		}
	}
	return reg, nil
}
