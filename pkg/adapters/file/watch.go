package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 300 * time.Millisecond

type options struct {
	debounce time.Duration
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures the Loader.
type Option func(*options)

// WithDebounce sets the quiet period used by Watch.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithLogger sets the logger used by Watch.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Watch implements ports.Watchable.
// The parent directory is watched so editors that replace the file by rename
// are still observed.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	target, err := filepath.Abs(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", l.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	ch := make(chan struct{}, 1)
	go l.watchLoop(ctx, watcher, target, ch)
	return ch, nil
}

func (l *Loader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, ch chan<- struct{}) {
	defer close(ch)
	defer watcher.Close()

	timer := time.NewTimer(l.opts.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				l.opts.logger.Debug("definition file changed", "path", event.Name, "op", event.Op.String())
				timer.Reset(l.opts.debounce)
			}

		case <-timer.C:
			select {
			case ch <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.opts.logger.Warn("watcher error", "err", err)
		}
	}
}
