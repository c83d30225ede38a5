package runner

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hamed0406/preflight/internal/metrics"
	"github.com/hamed0406/preflight/internal/probe"
	"github.com/hamed0406/preflight/internal/report"
	"github.com/hamed0406/preflight/internal/sources"
)

// Runner drives the checker over a registry, exactly one probe per
// (protocol, host) pair. A probe failure never aborts the pass; every
// configured source gets its turn.
type Runner struct {
	Checker  probe.Checker
	Logger   *zap.Logger
	Metrics  *metrics.Collector
	Parallel bool
}

// Run probes every source of every protocol, feeding each result to emit as
// it arrives, and returns the accumulated summary.
func (r *Runner) Run(ctx context.Context, reg sources.Registry, emit func(probe.Result)) *report.Summary {
	r.Metrics.RunStarted()
	sum := &report.Summary{}
	for _, p := range sources.Protocols() {
		r.RunProtocol(ctx, p, reg.Hosts(p), sum, emit)
	}
	return sum
}

// RunProtocol probes hosts under one protocol. Sequential mode preserves
// list order. Parallel mode starts every probe before awaiting any and
// emits in arrival order; the join barrier guarantees completeness, not
// ordering.
func (r *Runner) RunProtocol(ctx context.Context, p sources.Protocol, hosts []string, sum *report.Summary, emit func(probe.Result)) {
	if !r.Parallel {
		for _, h := range hosts {
			r.probeOne(ctx, p, h, sum, emit)
		}
		return
	}

	var wg sync.WaitGroup
	for _, h := range hosts {
		wg.Add(1)
		go func(host string) {
			defer wg.Done()
			r.probeOne(ctx, p, host, sum, emit)
		}(h)
	}
	wg.Wait()
}

func (r *Runner) probeOne(ctx context.Context, p sources.Protocol, host string, sum *report.Summary, emit func(probe.Result)) {
	url := string(p) + "://" + host
	res := r.Checker.Check(ctx, url)

	r.Metrics.ObserveProbe(p, res)
	sum.Record(res)
	if r.Logger != nil {
		r.Logger.Debug("probed",
			zap.String("url", url),
			zap.Bool("ok", res.OK),
			zap.String("code", res.Code),
			zap.Float64("elapsed_s", res.Elapsed),
		)
	}
	if emit != nil {
		emit(res)
	}
}
