package async

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SafarGalimzianov/switch-logs/internal/model"
	"github.com/SafarGalimzianov/switch-logs/internal/output"
)

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the channel buffer capacity. Default: 1024.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// Async decouples the UDP read loop from disk writes via a buffered
// channel. When the buffer is full the event is dropped with a warning:
// blocking the read loop would lose datagrams in the kernel anyway, and a
// drop here at least gets counted.
type Async struct {
	inner     output.Output
	ch        chan model.SyslogEvent
	done      chan struct{}
	bufSize   int
	dropped   atomic.Int64
	closeOnce sync.Once
}

// New wraps an output in an async channel-based writer.
// The background drain goroutine starts immediately.
func New(inner output.Output, opts ...Option) *Async {
	a := &Async{
		inner:   inner,
		bufSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan model.SyslogEvent, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

// Write sends the event into the channel, dropping it if the buffer is full.
func (a *Async) Write(_ context.Context, event model.SyslogEvent) error {
	select {
	case a.ch <- event:
	default:
		n := a.dropped.Add(1)
		slog.Warn("async output buffer full, dropping event",
			"src_ip", event.SrcIP, "dropped_total", n)
	}
	return nil
}

// Dropped returns the number of events discarded because the buffer was full.
func (a *Async) Dropped() int64 {
	return a.dropped.Load()
}

// Close stops accepting events, waits for the drain goroutine to finish
// (with a timeout), then closes the inner output.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.ch)
		select {
		case <-a.done:
		case <-time.After(defaultDrainTimeout):
			slog.Warn("async output drain timed out")
		}
		err = a.inner.Close()
	})
	return err
}

// drain moves events from the channel to the inner output.
func (a *Async) drain() {
	defer close(a.done)
	for event := range a.ch {
		if err := a.inner.Write(context.Background(), event); err != nil {
			slog.Warn("async output write error", "error", err)
		}
	}
}
