// Command preflight probes a fixed registry of HTTP/HTTPS sources with HEAD
// requests and reports whether this host can reach the services a deployment
// depends on.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hamed0406/preflight/internal/config"
	"github.com/hamed0406/preflight/internal/logging"
	"github.com/hamed0406/preflight/internal/metrics"
	"github.com/hamed0406/preflight/internal/notify"
	"github.com/hamed0406/preflight/internal/probe"
	"github.com/hamed0406/preflight/internal/report"
	"github.com/hamed0406/preflight/internal/runner"
	"github.com/hamed0406/preflight/internal/sources"
)

// version is overridden at release time via -ldflags "-X main.version=...".
var version = "dev"

// The registry, the transport-level checker the retry wrapper drives, and the
// pause between attempts; swapped out in tests.
var (
	defaultRegistry = sources.Default
	newInnerChecker = func(cfg config.Config, logger *zap.Logger) probe.Checker {
		return probe.NewHeadChecker(cfg.Timeout(), cfg.UserAgent, cfg.ProxyURL, logger)
	}
	retryPause = time.Second
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

const usageText = `Usage: preflight [OPTIONS] [PROXY_URL]

Probes the built-in registry of HTTP and HTTPS sources with HEAD requests
and reports reachability, latency and status codes. A source counts as
reachable when it answers with any 2xx/3xx status, or with 400, 404 or 405.

Options:
  -t, --timeout SECONDS    per-probe timeout (default 10)
  -r, --retries COUNT      attempts per source (default 2)
  -p, --parallel           probe all sources of a protocol at once
  -f, --format FORMAT      output format: text, json or csv (default text)
  -l, --log FILE           append structured logs to FILE (parent dir created)
  -u, --user-agent STRING  User-Agent header sent with every probe
  -V, --verbose            log probe events to stderr
  -v, --version            print version and exit
  -h, --help               show this help

PROXY_URL routes all probes through a forward proxy and must look like
http://host:port or https://host:port.

Exit status: 0 all sources reachable, 1 at least one failed or a runtime
error, 2 invalid arguments.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Default()
	var showVersion bool

	fs := flag.NewFlagSet("preflight", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&cfg.TimeoutSeconds, "t", cfg.TimeoutSeconds, "per-probe timeout in seconds")
	fs.IntVar(&cfg.TimeoutSeconds, "timeout", cfg.TimeoutSeconds, "per-probe timeout in seconds")
	fs.IntVar(&cfg.Retries, "r", cfg.Retries, "attempts per source")
	fs.IntVar(&cfg.Retries, "retries", cfg.Retries, "attempts per source")
	fs.BoolVar(&cfg.Parallel, "p", false, "probe sources concurrently")
	fs.BoolVar(&cfg.Parallel, "parallel", false, "probe sources concurrently")
	fs.StringVar(&cfg.Format, "f", cfg.Format, "output format")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format")
	fs.StringVar(&cfg.LogFile, "l", "", "log file")
	fs.StringVar(&cfg.LogFile, "log", "", "log file")
	fs.StringVar(&cfg.UserAgent, "u", cfg.UserAgent, "User-Agent header")
	fs.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header")
	fs.BoolVar(&cfg.Verbose, "V", false, "verbose")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "verbose")
	fs.BoolVar(&showVersion, "v", false, "print version")
	fs.BoolVar(&showVersion, "version", false, "print version")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(stdout, usageText)
			return exitOK
		}
		fmt.Fprintln(stderr, "preflight:", err)
		fmt.Fprint(stderr, usageText)
		return exitUsage
	}
	if showVersion {
		fmt.Fprintln(stdout, "preflight", version)
		return exitOK
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		cfg.ProxyURL = rest[0]
	default:
		fmt.Fprintln(stderr, "preflight: at most one proxy URL argument is allowed")
		fmt.Fprint(stderr, usageText)
		return exitUsage
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "preflight:", err)
		fmt.Fprint(stderr, usageText)
		return exitUsage
	}

	logger, err := logging.NewLogger(cfg.LogFile, cfg.Verbose)
	if err != nil {
		fmt.Fprintln(stderr, "preflight: cannot set up logging:", err)
		return exitFailed
	}
	defer logger.Sync()

	cfg.ExportProxyEnv()

	format, _ := report.ParseFormat(cfg.Format) // validated above
	writer := report.NewWriter(stdout, format)

	checker := &probe.RetryChecker{
		Inner:    newInnerChecker(cfg, logger),
		Attempts: cfg.Retries,
		Pause:    retryPause,
		Logger:   logger,
	}
	r := &runner.Runner{
		Checker:  checker,
		Logger:   logger,
		Metrics:  metrics.NewCollector(prometheus.NewRegistry()),
		Parallel: cfg.Parallel,
	}

	ctx := context.Background()
	var (
		mu        sync.Mutex
		reportErr error
	)
	sum := r.Run(ctx, defaultRegistry(), func(res probe.Result) {
		err := writer.Report(res)
		mu.Lock()
		if err != nil && reportErr == nil {
			reportErr = err
		}
		mu.Unlock()
	})
	if err := writer.Summary(sum); err != nil && reportErr == nil {
		reportErr = err
	}

	logger.Info("run_summary",
		zap.Int("probed", sum.Total()),
		zap.Int("ok", sum.Success()),
		zap.Int("failed", sum.Failed()),
	)

	if sinks := notifiersFromEnv(os.Getenv("PREFLIGHT_SLACK_WEBHOOK")); len(sinks) > 0 {
		if title, text, ok := notify.FailureMessage(sum); ok {
			if err := sinks.Send(ctx, title, text); err != nil {
				logger.Warn("notify_failed", zap.Error(err))
			}
		}
	}

	if reportErr != nil {
		fmt.Fprintln(stderr, "preflight: writing output:", reportErr)
		return exitFailed
	}
	return sum.ExitCode()
}

// notifiersFromEnv builds a fan-out sink from a comma-separated webhook list.
func notifiersFromEnv(webhooks string) notify.Multi {
	var sinks notify.Multi
	for _, h := range strings.Split(webhooks, ",") {
		if h = strings.TrimSpace(h); h != "" {
			sinks = append(sinks, notify.NewSlack(h))
		}
	}
	return sinks
}
