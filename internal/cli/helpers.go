package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/statusmap/internal/logging"
)

// SignalContext is a context cancelled by the first shutdown signal.
// Unlike signal.NotifyContext it remembers which signal arrived, so servers
// can report why they stopped.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	mu  sync.Mutex
	sig os.Signal
}

// NewSignalContext listens for signals (SIGINT and SIGTERM when none are
// given) until the first one arrives or parent is done.
func NewSignalContext(parent context.Context, signals ...os.Signal) *SignalContext {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)

	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()

	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// NewLogger configures the application logger from a level name and a
// format ("text" or "json").
func NewLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch format {
	case "", "text":
		return logging.NewText(w, lvl), nil
	case "json":
		return logging.NewJSON(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
