package report

import (
	"sync"
	"testing"

	"github.com/hamed0406/preflight/internal/probe"
)

func TestSummary_Counts(t *testing.T) {
	s := &Summary{}
	s.Record(probe.StatusResult("https://a.example", 200, 0.1))
	s.Record(probe.StatusResult("https://b.example", 404, 0.1))
	s.Record(probe.FailedResult("http://c.example", probe.CodeTimeout, 10))

	if s.Total() != 3 || s.Success() != 2 || s.Failed() != 1 {
		t.Fatalf("counts wrong: total=%d ok=%d failed=%d", s.Total(), s.Success(), s.Failed())
	}
	if s.Success()+s.Failed() != s.Total() {
		t.Fatal("success+failed must equal total")
	}
	if got := s.FailedURLs(); len(got) != 1 || got[0] != "http://c.example" {
		t.Fatalf("FailedURLs = %v", got)
	}
}

func TestSummary_ExitCode(t *testing.T) {
	s := &Summary{}
	if s.ExitCode() != 0 {
		t.Fatalf("empty run should exit 0, got %d", s.ExitCode())
	}
	s.Record(probe.StatusResult("https://a.example", 200, 0.1))
	if s.ExitCode() != 0 {
		t.Fatalf("all-ok run should exit 0, got %d", s.ExitCode())
	}
	s.Record(probe.FailedResult("http://b.example", probe.CodeError, 0.1))
	if s.ExitCode() != 1 {
		t.Fatalf("run with a failure should exit 1, got %d", s.ExitCode())
	}
}

func TestSummary_ConcurrentRecord(t *testing.T) {
	s := &Summary{}
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.Record(probe.StatusResult("https://even.example", 200, 0.1))
			} else {
				s.Record(probe.FailedResult("http://odd.example", probe.CodeTimeout, 1))
			}
		}(i)
	}
	wg.Wait()

	if s.Total() != 100 || s.Success() != 50 || s.Failed() != 50 {
		t.Fatalf("lost updates: total=%d ok=%d failed=%d", s.Total(), s.Success(), s.Failed())
	}
}

func TestSummary_ResultsIsACopy(t *testing.T) {
	s := &Summary{}
	s.Record(probe.StatusResult("https://a.example", 200, 0.1))
	rs := s.Results()
	rs[0].URL = "mutated"
	if s.Results()[0].URL != "https://a.example" {
		t.Fatal("Results must not expose internal state")
	}
}
