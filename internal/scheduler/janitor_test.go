package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dawichi/hexastats/internal/platform/cache"
	"github.com/Dawichi/hexastats/internal/platform/logging"
)

type countingPruner struct {
	calls     atomic.Int32
	retention atomic.Int64
	err       error
}

func (p *countingPruner) Prune(_ context.Context, retention time.Duration) (int64, error) {
	p.calls.Add(1)
	p.retention.Store(int64(retention))
	return 1, p.err
}

func waitForCalls(t *testing.T, p *countingPruner, want int32) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for p.calls.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("prune calls=%d want>=%d", p.calls.Load(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestJanitor_PrunesOnInterval(t *testing.T) {
	t.Parallel()

	pruner := &countingPruner{}
	janitor, err := NewJanitor(pruner, JanitorConfig{Interval: 20 * time.Millisecond, Retention: time.Hour, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new janitor: %v", err)
	}
	if err := janitor.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = janitor.Stop() })

	waitForCalls(t, pruner, 2)
	if got := time.Duration(pruner.retention.Load()); got != time.Hour {
		t.Fatalf("retention=%v want=%v", got, time.Hour)
	}
}

func TestJanitor_KeepsRunningAfterFailure(t *testing.T) {
	t.Parallel()

	pruner := &countingPruner{err: errors.New("backend down")}
	janitor, err := NewJanitor(pruner, JanitorConfig{Interval: 20 * time.Millisecond, Retention: time.Minute, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new janitor: %v", err)
	}
	if err := janitor.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = janitor.Stop() })

	waitForCalls(t, pruner, 2)
}

func TestJanitor_PrunesFrontDoor(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	backend := cache.NewMemoryBackend(0)
	_ = backend.Set(context.Background(), "old", cache.Entry{Value: []byte("x"), StoredAt: now.Add(-2 * time.Hour)})
	_ = backend.Set(context.Background(), "fresh", cache.Entry{Value: []byte("y"), StoredAt: now})

	door, err := cache.NewFrontDoor(backend, cache.Options{Enabled: true, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("new front door: %v", err)
	}
	t.Cleanup(door.Close)

	janitor, err := NewJanitor(door, JanitorConfig{Interval: time.Hour, Retention: time.Hour, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new janitor: %v", err)
	}
	janitor.prune()

	if backend.Len() != 1 {
		t.Fatalf("entries=%d want=1", backend.Len())
	}
}

func TestNewJanitor_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewJanitor(nil, JanitorConfig{Interval: time.Minute}); err == nil {
		t.Fatalf("expected error for nil pruner")
	}
	if _, err := NewJanitor(&countingPruner{}, JanitorConfig{}); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}
