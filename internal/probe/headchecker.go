package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"
)

// connectTimeout bounds the TCP/TLS setup of a single attempt; the overall
// request deadline comes from the client timeout.
const connectTimeout = 5 * time.Second

// HeadChecker issues one HEAD request per Check call. Certificate
// verification is disabled on purpose: the question is reachability, not
// trust.
type HeadChecker struct {
	Client    *http.Client
	UserAgent string
	Logger    *zap.Logger
}

// NewHeadChecker builds a checker with the given overall timeout, User-Agent
// and optional forward proxy. An empty proxyURL falls back to the ambient
// http_proxy / https_proxy environment.
func NewHeadChecker(timeout time.Duration, userAgent, proxyURL string, logger *zap.Logger) *HeadChecker {
	proxy := http.ProxyFromEnvironment
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			proxy = http.ProxyURL(u)
		}
	}
	transport := &http.Transport{
		Proxy:               proxy,
		DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
		TLSHandshakeTimeout: connectTimeout,
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeadChecker{
		Client:    &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: userAgent,
		Logger:    logger,
	}
}

func (h *HeadChecker) Check(ctx context.Context, target string) Result {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		// nothing was sent, so there is no latency to report
		return FailedResult(target, CodeError, -1)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	h.Logger.Info("checking", zap.String("url", target))

	resp, err := h.Client.Do(req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		code := CodeError
		if isTimeout(err) {
			code = CodeTimeout
		}
		h.Logger.Debug("probe_error", zap.String("url", target), zap.Error(err))
		return FailedResult(target, code, elapsed)
	}
	defer resp.Body.Close()

	return StatusResult(target, resp.StatusCode, elapsed)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
