package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// startWatcher runs w until the test ends.
func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run() error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Run did not return after cancel")
		}
	})
}

// writeUntil rewrites path until cond holds or the deadline passes. The
// first writes may land before the watch is registered.
func writeUntil(t *testing.T, path string, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for i := 0; time.Now().Before(deadline); i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i%26)}, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(100 * time.Millisecond)
		if cond() {
			return true
		}
	}
	return false
}

func TestDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w, err := New(path,
		WithDebounce(20*time.Millisecond),
		WithOnChange(func() { calls.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	startWatcher(t, w)

	if !writeUntil(t, path, func() bool { return calls.Load() > 0 }) {
		t.Fatal("change was not detected")
	}
}

func TestIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	sibling := filepath.Join(dir, "other.json")

	var calls atomic.Int32
	w, err := New(path,
		WithDebounce(10*time.Millisecond),
		WithOnChange(func() { calls.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	startWatcher(t, w)

	for i := 0; i < 5; i++ {
		os.WriteFile(sibling, []byte("x"), 0o644)
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if n := calls.Load(); n != 0 {
		t.Errorf("sibling writes fired %d changes", n)
	}
}

func TestDebounceCoalesces(t *testing.T) {
	w, err := New("report.json", WithDebounce(80*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	var calls atomic.Int32
	w.onChange = func() { calls.Add(1) }

	for i := 0; i < 10; i++ {
		w.trigger()
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(250 * time.Millisecond)

	if n := calls.Load(); n != 1 {
		t.Errorf("expected 1 change, got %d", n)
	}
}

func TestCancelDropsPending(t *testing.T) {
	w, err := New("report.json", WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	var called atomic.Bool
	w.onChange = func() { called.Store(true) }

	w.trigger()
	w.cancel()
	time.Sleep(120 * time.Millisecond)

	if called.Load() {
		t.Error("callback ran after cancel")
	}
}

func TestRemoveReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	var (
		changed atomic.Int32
		removed atomic.Bool
	)
	w, err := New(path,
		WithDebounce(10*time.Millisecond),
		WithOnChange(func() { changed.Add(1) }),
		WithOnError(func(err error) {
			if errors.Is(err, ErrFileRemoved) {
				removed.Store(true)
			}
		}),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	startWatcher(t, w)

	// Wait until the watch is live before removing.
	if !writeUntil(t, path, func() bool { return changed.Load() > 0 }) {
		t.Fatal("watch never became live")
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !removed.Load() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !removed.Load() {
		t.Error("expected ErrFileRemoved")
	}
}

func TestNewDefaults(t *testing.T) {
	w, err := New("report.json", WithDebounce(0), WithOnChange(nil), WithLogger(nil))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
	if !filepath.IsAbs(w.Path()) {
		t.Errorf("Path() = %q, want absolute", w.Path())
	}
	w.onChange()
}

func TestRunMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nope", "report.json"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Run(context.Background()); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
