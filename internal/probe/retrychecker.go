package probe

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryChecker re-runs the inner checker until an attempt yields an HTTP
// status code. A response is final even when its code classifies as failed;
// retries only cover attempts that produced no status at all. When every
// attempt comes back empty the result carries the TIMEOUT sentinel.
type RetryChecker struct {
	Inner    Checker
	Attempts int
	Pause    time.Duration
	Logger   *zap.Logger
}

func (r *RetryChecker) Check(ctx context.Context, target string) Result {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var last Result
	for i := 0; i < attempts; i++ {
		if i > 0 && r.Logger != nil {
			r.Logger.Info("retrying",
				zap.String("url", target),
				zap.Int("attempt", i+1),
				zap.Int("max_attempts", attempts),
			)
		}
		last = r.Inner.Check(ctx, target)
		if last.Status != 0 {
			return last
		}
		if i < attempts-1 {
			time.Sleep(r.Pause)
		}
	}
	last.Code = CodeTimeout
	return last
}
