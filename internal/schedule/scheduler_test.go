package schedule

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestDailySpec(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{9, 0, "0 9 * * *"},
		{0, 0, "0 0 * * *"},
		{23, 59, "59 23 * * *"},
	}
	for _, tc := range tests {
		if got := dailySpec(tc.hour, tc.minute); got != tc.want {
			t.Errorf("dailySpec(%d, %d) = %q, want %q", tc.hour, tc.minute, got, tc.want)
		}
	}
}

func TestAddDailyRejectsBadSpec(t *testing.T) {
	s := New(testLogger)
	if err := s.AddDaily(25, 0, func() {}); err == nil {
		t.Error("expected error for hour out of range")
	}
	if err := s.AddDaily(9, 0, func() {}); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}
}

func TestShutdownWithoutJobs(t *testing.T) {
	s := New(testLogger)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestShutdownWaitsForRunningJob(t *testing.T) {
	s := New(testLogger)

	release := make(chan struct{})
	started := make(chan struct{})
	job := func() {
		close(started)
		<-release
	}

	s.cron.Schedule(&onceSoon{}, jobFunc(job))
	s.Start()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := s.Shutdown(ctx); err == nil {
		t.Error("expected timeout while job is still running")
	}

	close(release)
}

type jobFunc func()

func (f jobFunc) Run() { f() }

// onceSoon schedules exactly one run right after start.
type onceSoon struct {
	fired bool
}

func (s *onceSoon) Next(t time.Time) time.Time {
	if s.fired {
		return time.Time{}
	}
	s.fired = true
	return t.Add(10 * time.Millisecond)
}
