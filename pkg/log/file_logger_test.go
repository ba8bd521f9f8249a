package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.etrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("trace file was not created")
	}
}

func TestFileLoggerAppendsAndTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.etrace")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), BuildID: "b"})
		logger.Close()
	}
	if n := countEvents(t, path); n != 2 {
		t.Errorf("after append: got %d events, want 2", n)
	}

	logger, err := CreateFileLogger(path)
	if err != nil {
		t.Fatalf("CreateFileLogger failed: %v", err)
	}
	logger.Log(Event{Timestamp: time.Now(), BuildID: "c"})
	if logger.Events() != 1 {
		t.Errorf("Events() = %d, want 1", logger.Events())
	}
	logger.Close()

	if n := countEvents(t, path); n != 1 {
		t.Errorf("after truncate: got %d events, want 1", n)
	}
}

func TestFileLoggerCloseIsIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "build.etrace"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Logging after close is ignored.
	logger.Log(Event{BuildID: "late"})
	if logger.Events() != 0 {
		t.Errorf("Events() = %d after close, want 0", logger.Events())
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.etrace")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				logger.Log(Event{Timestamp: time.Now(), BuildID: "b", Category: CategoryElement,
					Element: &ElementEvent{Name: "Area"}})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	if n := countEvents(t, path); n != 200 {
		t.Errorf("got %d events, want 200", n)
	}
}

func countEvents(t *testing.T, path string) int {
	t.Helper()
	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	events, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	return len(events)
}
