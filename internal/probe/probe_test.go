package probe

import "testing"

func TestReachable(t *testing.T) {
	ok := []int{200, 204, 299, 301, 302, 399, 400, 404, 405}
	for _, code := range ok {
		if !Reachable(code) {
			t.Errorf("Reachable(%d) = false, want true", code)
		}
	}
	failed := []int{0, 100, 401, 403, 418, 500, 502, 503}
	for _, code := range failed {
		if Reachable(code) {
			t.Errorf("Reachable(%d) = true, want false", code)
		}
	}
}

func TestStatusResult(t *testing.T) {
	r := StatusResult("https://example.com", 200, 0.25)
	if !r.OK || r.Status != 200 || r.Code != "200" {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.Elapsed != 0.25 {
		t.Fatalf("elapsed = %v, want 0.25", r.Elapsed)
	}

	r = StatusResult("https://example.com", 503, 0.1)
	if r.OK {
		t.Fatalf("503 should classify as failed: %+v", r)
	}
	if r.Code != "503" {
		t.Fatalf("code = %q, want 503", r.Code)
	}
}

func TestFailedResult(t *testing.T) {
	r := FailedResult("http://example.com", CodeTimeout, 10)
	if r.OK || r.Status != 0 || r.Code != CodeTimeout {
		t.Fatalf("unexpected result: %+v", r)
	}
}
