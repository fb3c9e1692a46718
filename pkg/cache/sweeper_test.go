package cache

import (
	"context"
	"testing"
	"time"
)

func TestSweeperEmptyScheduleDisabled(t *testing.T) {
	store := NewMemory(5 * time.Minute)
	defer store.Close()

	sweeper := NewSweeper(store, "")
	if err := sweeper.Start(context.Background()); err != nil {
		t.Fatalf("start with empty schedule should not fail: %v", err)
	}
	if sweeper.IsRunning() {
		t.Error("sweeper should not run without a schedule")
	}
}

func TestSweeperInvalidSchedule(t *testing.T) {
	store := NewMemory(5 * time.Minute)
	defer store.Close()

	sweeper := NewSweeper(store, "not a cron expression")
	if err := sweeper.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestSweeperStartStop(t *testing.T) {
	store := NewMemory(5 * time.Minute)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sweeper := NewSweeper(store, "*/5 * * * *")
	if err := sweeper.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !sweeper.IsRunning() {
		t.Fatal("sweeper should be running")
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for sweeper.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("sweeper did not stop after context cancellation")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
