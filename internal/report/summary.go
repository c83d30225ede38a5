package report

import (
	"sync"

	"github.com/hamed0406/preflight/internal/probe"
)

// Summary is the append-only result log for one run. Record is safe for the
// concurrent writers of parallel mode; nothing else mutates it.
type Summary struct {
	mu      sync.Mutex
	results []probe.Result
	success int
	failed  int
}

func (s *Summary) Record(r probe.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	if r.OK {
		s.success++
	} else {
		s.failed++
	}
}

func (s *Summary) Success() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.success
}

func (s *Summary) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

func (s *Summary) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Results returns a copy of the log in arrival order.
func (s *Summary) Results() []probe.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]probe.Result, len(s.results))
	copy(out, s.results)
	return out
}

// FailedURLs lists the URLs of failed probes in arrival order.
func (s *Summary) FailedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, r := range s.results {
		if !r.OK {
			out = append(out, r.URL)
		}
	}
	return out
}

// ExitCode maps the run outcome to the process exit status: 0 when every
// probe succeeded, 1 otherwise.
func (s *Summary) ExitCode() int {
	if s.Failed() > 0 {
		return 1
	}
	return 0
}
