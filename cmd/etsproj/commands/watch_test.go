package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advancedknx/ets-proj-parser/pkg/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitBuild(t *testing.T, w *Watcher) error {
	t.Helper()
	select {
	case err := <-w.Builds():
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
		return nil
	}
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "home.knxproj")
	require.NoError(t, os.WriteFile(archive, []byte("v1"), 0644))

	var builds atomic.Int32
	w, err := NewWatcher(WatcherConfig{
		Archive:       archive,
		DebounceDelay: 20 * time.Millisecond,
		Logger:        discardLogger(),
		Rebuild: func(ctx context.Context) error {
			builds.Add(1)
			return nil
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Initial build
	require.NoError(t, waitBuild(t, w))
	assert.Equal(t, int32(1), builds.Load())

	// Other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	require.NoError(t, os.WriteFile(archive, []byte("v2"), 0644))
	require.NoError(t, waitBuild(t, w))
	// A write may span two debounce ticks
	assert.GreaterOrEqual(t, builds.Load(), int32(2))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherReportsRebuildErrors(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "home.knxproj")
	require.NoError(t, os.WriteFile(archive, []byte("v1"), 0644))

	errBroken := errors.New("broken archive")
	w, err := NewWatcher(WatcherConfig{
		Archive:       archive,
		DebounceDelay: 20 * time.Millisecond,
		Logger:        discardLogger(),
		Rebuild:       func(ctx context.Context) error { return errBroken },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	assert.ErrorIs(t, waitBuild(t, w), errBroken)
}

func TestNewWatcherRequiresRebuild(t *testing.T) {
	_, err := NewWatcher(WatcherConfig{Archive: "home.knxproj"})
	assert.Error(t, err)
}

func TestServeMetrics(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	m := metrics.NewMetrics()
	m.RecordEntities(map[string]int{"devices": 3})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeMetrics(ctx, addr, m, discardLogger()) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		body = string(data)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	assert.True(t, strings.Contains(body, `etsproj_project_entities{entity="devices"} 3`), body)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestRunWatchStopsMetricsWithWatcher(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	archive := filepath.Join(t.TempDir(), "home.knxproj")
	require.NoError(t, os.WriteFile(archive, []byte("v1"), 0644))

	w, err := NewWatcher(WatcherConfig{
		Archive:       archive,
		DebounceDelay: 20 * time.Millisecond,
		Logger:        discardLogger(),
		Rebuild:       func(ctx context.Context) error { return nil },
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- RunWatch(context.Background(), w, addr, metrics.NewMetrics(), discardLogger())
	}()

	require.NoError(t, waitBuild(t, w))
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("RunWatch did not return after the watcher stopped")
	}
}
