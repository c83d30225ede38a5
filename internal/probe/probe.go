package probe

import (
	"context"
	"strconv"
)

// Sentinel codes reported when a probe produced no HTTP status at all.
const (
	CodeTimeout = "TIMEOUT"
	CodeError   = "ERROR"
)

// Result is the unified outcome of probing a single URL.
//
// Fields:
// - Status: HTTP status code when one was obtained; 0 for transport/DNS errors.
// - Code: what gets reported — the numeric status as text, or a sentinel token.
// - Elapsed: wall-clock seconds for the attempt; negative means unavailable.
type Result struct {
	URL     string
	OK      bool
	Status  int
	Code    string
	Elapsed float64
}

// Checker performs a single check for a given target URL.
type Checker interface {
	Check(ctx context.Context, target string) Result
}

// Reachable reports whether status proves the endpoint is reachable and
// speaking HTTP. 400, 404 and 405 count: the server answered, it just did
// not like the request. 5xx does not count; the endpoint is there but broken.
func Reachable(status int) bool {
	if status >= 200 && status < 400 {
		return true
	}
	return status == 400 || status == 404 || status == 405
}

// StatusResult builds the Result for a request that completed with a status.
func StatusResult(url string, status int, elapsed float64) Result {
	return Result{
		URL:     url,
		OK:      Reachable(status),
		Status:  status,
		Code:    strconv.Itoa(status),
		Elapsed: elapsed,
	}
}

// FailedResult builds the Result for a request that yielded no HTTP status.
func FailedResult(url, code string, elapsed float64) Result {
	return Result{URL: url, Code: code, Elapsed: elapsed}
}
