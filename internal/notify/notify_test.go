package notify

import (
	"context"
	"errors"
	"testing"
)

type recordingNotifier struct {
	sent int
	err  error
}

func (r *recordingNotifier) Send(ctx context.Context, title, text string) error {
	r.sent++
	return r.err
}

func TestMulti_FansOutToEverySink(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}
	m := Multi{a, b}

	if err := m.Send(context.Background(), "t", "x"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if a.sent != 1 || b.sent != 1 {
		t.Fatalf("fan-out incomplete: a=%d b=%d", a.sent, b.sent)
	}
}

func TestMulti_ReportsFirstErrorButKeepsGoing(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingNotifier{err: boom}
	b := &recordingNotifier{}
	m := Multi{a, b}

	if err := m.Send(context.Background(), "t", "x"); !errors.Is(err, boom) {
		t.Fatalf("want first error back, got %v", err)
	}
	if b.sent != 1 {
		t.Fatal("a failing sink must not stop later sinks")
	}
}

func TestMulti_SkipsNilSinks(t *testing.T) {
	b := &recordingNotifier{}
	m := Multi{nil, b}

	if err := m.Send(context.Background(), "t", "x"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if b.sent != 1 {
		t.Fatalf("sent = %d, want 1", b.sent)
	}
}
