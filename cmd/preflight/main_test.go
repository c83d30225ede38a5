package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/hamed0406/preflight/internal/config"
	"github.com/hamed0406/preflight/internal/probe"
	"github.com/hamed0406/preflight/internal/sources"
)

// The argument-error cases terminate before any probe is issued; the
// end-to-end cases swap the checker seam, so no test touches the network.

func TestRun_InvalidProxyArgument(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"not-a-url"}, &out, &errOut)
	if code != exitUsage {
		t.Fatalf("exit = %d, want %d", code, exitUsage)
	}
	if !strings.Contains(errOut.String(), "proxy") {
		t.Fatalf("stderr %q should explain the proxy problem", errOut.String())
	}
	if out.Len() != 0 {
		t.Fatalf("no probe output expected, got %q", out.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--definitely-not-a-flag"}, &out, &errOut); code != exitUsage {
		t.Fatalf("exit = %d, want %d", code, exitUsage)
	}
	if !strings.Contains(errOut.String(), "Usage:") {
		t.Fatal("usage text expected on stderr")
	}
}

func TestRun_BadValues(t *testing.T) {
	cases := [][]string{
		{"-t", "0"},
		{"-t", "-5"},
		{"-r", "0"},
		{"-f", "xml"},
		{"-t", "abc"},
		{"proxy1:80", "proxy2:80"},
	}
	for _, args := range cases {
		var out, errOut bytes.Buffer
		if code := run(args, &out, &errOut); code != exitUsage {
			t.Fatalf("args %v: exit = %d, want %d (stderr: %s)", args, code, exitUsage, errOut.String())
		}
	}
}

// scriptedChecker stands in for the network-level checker inside the retry
// wrapper.
type scriptedChecker struct {
	calls int
	check func(target string) probe.Result
}

func (s *scriptedChecker) Check(ctx context.Context, target string) probe.Result {
	s.calls++
	return s.check(target)
}

func swapSeams(t *testing.T, hosts sources.Registry, inner probe.Checker) {
	t.Helper()
	t.Setenv("PREFLIGHT_SLACK_WEBHOOK", "")
	origReg, origInner, origPause := defaultRegistry, newInnerChecker, retryPause
	defaultRegistry = func() sources.Registry { return hosts }
	newInnerChecker = func(config.Config, *zap.Logger) probe.Checker { return inner }
	retryPause = 0
	t.Cleanup(func() {
		defaultRegistry, newInnerChecker, retryPause = origReg, origInner, origPause
	})
}

func TestRun_EndToEndAllReachable(t *testing.T) {
	color.NoColor = true
	fake := &scriptedChecker{check: func(target string) probe.Result {
		return probe.StatusResult(target, 200, 0.05)
	}}
	swapSeams(t, sources.Registry{sources.HTTP: {"example.com"}}, fake)

	var out, errOut bytes.Buffer
	code := run(nil, &out, &errOut)
	if code != exitOK {
		t.Fatalf("exit = %d, want %d (stderr: %s)", code, exitOK, errOut.String())
	}
	if fake.calls != 1 {
		t.Fatalf("calls = %d, want 1", fake.calls)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	for _, want := range []string{"http://example.com", "OK", "200"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("result line %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(out.String(), "1 ok, 0 failed") {
		t.Fatalf("summary missing: %q", out.String())
	}
}

func TestRun_EndToEndConnectionRefused(t *testing.T) {
	color.NoColor = true
	fake := &scriptedChecker{check: func(target string) probe.Result {
		return probe.FailedResult(target, probe.CodeError, 0.01)
	}}
	swapSeams(t, sources.Registry{sources.HTTP: {"example.com"}}, fake)

	var out, errOut bytes.Buffer
	code := run([]string{"-r", "2"}, &out, &errOut)
	if code != exitFailed {
		t.Fatalf("exit = %d, want %d", code, exitFailed)
	}
	if fake.calls != 2 {
		t.Fatalf("calls = %d, want 2 (one per attempt)", fake.calls)
	}
	for _, want := range []string{"FAILED", "TIMEOUT", "0 ok, 1 failed", "Failed:", "http://example.com"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output %q missing %q", out.String(), want)
		}
	}
}

func TestRun_Version(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--version"}, &out, &errOut); code != exitOK {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out.String(), "preflight") {
		t.Fatalf("version output: %q", out.String())
	}
}

func TestRun_Help(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-h"}, &out, &errOut); code != exitOK {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("help output: %q", out.String())
	}
}
