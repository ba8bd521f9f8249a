package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/advancedknx/ets-proj-parser/pkg/metrics"
)

// WatcherConfig configures the archive watcher
type WatcherConfig struct {
	// Archive is the file to watch
	Archive string

	// DebounceDelay is how long to wait for more changes before rebuilding
	DebounceDelay time.Duration

	// Rebuild is called once at start and after every settled change
	Rebuild func(ctx context.Context) error

	// Logger for logging events
	Logger *slog.Logger
}

// Watcher rebuilds a project whenever its archive changes.
type Watcher struct {
	config  WatcherConfig
	archive string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: a change marks the archive dirty until the next tick
	pendingMu sync.Mutex
	pending   bool

	builds chan error
}

// NewWatcher creates a new archive watcher
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Rebuild == nil {
		return nil, errors.New("rebuild function is required")
	}
	archive, err := filepath.Abs(config.Archive)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		archive: archive,
		watcher: fsw,
		logger:  logger,
		builds:  make(chan error, 16),
	}, nil
}

// Builds returns the result of every rebuild. Results are dropped when
// nobody reads them.
func (w *Watcher) Builds() <-chan error {
	return w.builds
}

// Run builds once, then rebuilds on change until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	// Editors and copy tools replace files, so watch the directory
	dir := filepath.Dir(w.archive)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("Watching archive",
		"archive", w.archive,
		"debounce", w.config.DebounceDelay)

	w.rebuild(ctx)

	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if w.takePending() {
				w.rebuild(ctx)
			}
		}
	}
}

// Stop closes the file watcher. A running Run returns nil.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// RunWatch runs w and, when m is set, serves its metrics on addr. It returns
// once the watcher stops, shutting the metrics server down with it.
func RunWatch(ctx context.Context, w *Watcher, addr string, m *metrics.Metrics, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		return w.Run(ctx)
	})
	if m != nil {
		g.Go(func() error { return ServeMetrics(ctx, addr, m, logger) })
	}
	return g.Wait()
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path, err := filepath.Abs(event.Name)
	if err != nil || path != w.archive {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("Archive changed", "op", event.Op.String())

	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()
}

func (w *Watcher) takePending() bool {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	p := w.pending
	w.pending = false
	return p
}

func (w *Watcher) rebuild(ctx context.Context) {
	start := time.Now()
	err := w.config.Rebuild(ctx)
	if err != nil {
		w.logger.Error("Rebuild failed", "error", err)
	} else {
		w.logger.Info("Rebuilt project", "duration", time.Since(start).Round(time.Millisecond))
	}

	select {
	case w.builds <- err:
	default:
	}
}

// ServeMetrics registers m with a fresh registry and serves it on addr at
// /metrics until ctx is done.
func ServeMetrics(ctx context.Context, addr string, m *metrics.Metrics, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
