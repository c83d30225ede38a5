// Command api serves preflight passes over HTTP so a fleet can ask a host
// "run your connectivity check now" without shelling in.
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hamed0406/preflight/internal/config"
	"github.com/hamed0406/preflight/internal/httpapi"
	"github.com/hamed0406/preflight/internal/logging"
	"github.com/hamed0406/preflight/internal/metrics"
	"github.com/hamed0406/preflight/internal/probe"
)

func main() {
	addr := envStr("ADDR", "127.0.0.1:8080")

	logger, err := logging.NewLogger(os.Getenv("LOG_FILE"), os.Getenv("VERBOSE") == "1")
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	timeout := time.Duration(envInt("PROBE_TIMEOUT_S", config.DefaultTimeoutSeconds)) * time.Second
	checker := &probe.RetryChecker{
		Inner:    probe.NewHeadChecker(timeout, config.DefaultUserAgent, os.Getenv("PROXY_URL"), logger),
		Attempts: envInt("PROBE_RETRIES", config.DefaultRetries),
		Pause:    time.Second,
		Logger:   logger,
	}

	srv := httpapi.NewServer(logger, checker, collector,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv.APIKeys = splitList(os.Getenv("API_KEYS"))
	srv.RatePerMin = envInt("RATE_PER_MIN", 120)
	srv.RateBurst = envInt("RATE_BURST", 30)

	logger.Info("api_listen", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
