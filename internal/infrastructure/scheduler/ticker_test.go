package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestStartRunsImmediatelyAndOnTicks(t *testing.T) {
	t.Parallel()

	s := NewTickerScheduler(20 * time.Millisecond)
	var runs atomic.Int64

	if err := s.Start(context.Background(), func(time.Time) { runs.Add(1) }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop(context.Background())

	deadline := time.After(time.Second)
	for runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 runs within a second, got %d", runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestStopDuringRunningJobHaltsFurtherRuns(t *testing.T) {
	t.Parallel()

	s := NewTickerScheduler(10 * time.Millisecond)
	var runs atomic.Int64
	running := make(chan struct{})
	release := make(chan struct{})

	var once atomic.Bool
	job := func(time.Time) {
		runs.Add(1)
		if once.CompareAndSwap(false, true) {
			close(running)
			<-release
		}
	}

	if err := s.Start(context.Background(), job); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	<-running
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	close(release)

	// Let any ticks that were pending before Stop drain.
	time.Sleep(50 * time.Millisecond)
	settled := runs.Load()
	time.Sleep(50 * time.Millisecond)

	if got := runs.Load(); got != settled {
		t.Fatalf("job ran %d more times after Stop", got-settled)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewTickerScheduler(time.Hour)
	if err := s.Start(context.Background(), func(time.Time) {}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.Stop(context.Background()); err != nil {
			t.Fatalf("Stop() call %d error = %v", i+1, err)
		}
	}
}
