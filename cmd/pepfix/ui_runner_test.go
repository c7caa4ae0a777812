package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pepfix/internal/driver"
)

func writeSources(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := range n {
		path := filepath.Join(dir, fmt.Sprintf("m%03d.py", i))
		if err := os.WriteFile(path, []byte("x = 1  \n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}

func runWithDeadline(t *testing.T, fn func() ([]driver.FixResult, error)) ([]driver.FixResult, error) {
	t.Helper()
	type outcome struct {
		results []driver.FixResult
		err     error
	}
	ch := make(chan outcome, 1)
	go func() {
		res, err := fn()
		ch <- outcome{res, err}
	}()
	select {
	case got := <-ch:
		return got.results, got.err
	case <-time.After(5 * time.Second):
		t.Fatal("fixWithProgress did not return")
		return nil, nil
	}
}

func TestFixWithProgressViewQuitsEarly(t *testing.T) {
	dir := writeSources(t, 120)
	quit := func(<-chan driver.Event) error { return nil }

	_, err := runWithDeadline(t, func() ([]driver.FixResult, error) {
		return fixWithProgress(context.Background(), []string{dir}, driver.FixOptions{Check: true, Jobs: 1}, quit)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFixWithProgressViewError(t *testing.T) {
	dir := writeSources(t, 40)
	boom := errors.New("terminal gone")
	failing := func(<-chan driver.Event) error { return boom }

	_, err := runWithDeadline(t, func() ([]driver.FixResult, error) {
		return fixWithProgress(context.Background(), []string{dir}, driver.FixOptions{Check: true}, failing)
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected view error, got %v", err)
	}
}

func TestFixWithProgressDeliversEvents(t *testing.T) {
	dir := writeSources(t, 10)
	var finished int
	consume := func(events <-chan driver.Event) error {
		for ev := range events {
			if ev.File != "" && ev.Status == driver.StatusDone {
				finished++
			}
		}
		return nil
	}

	results, err := runWithDeadline(t, func() ([]driver.FixResult, error) {
		return fixWithProgress(context.Background(), []string{dir}, driver.FixOptions{Check: true}, consume)
	})
	if err != nil {
		t.Fatalf("fixWithProgress: %v", err)
	}
	if len(results) != 10 || finished != 10 {
		t.Fatalf("got %d results and %d done events, want 10", len(results), finished)
	}
}
