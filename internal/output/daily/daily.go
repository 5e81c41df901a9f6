package daily

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/SafarGalimzianov/switch-logs/internal/model"
)

const defaultBufSize = 64 * 1024 // 64KB

// Option configures a daily Writer.
type Option func(*Writer)

// WithCompression gzips each day file once the date rolls over.
// The live (current-day) file is never compressed.
func WithCompression() Option {
	return func(w *Writer) { w.compress = true }
}

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(w *Writer) { w.bufSize = bytes }
}

// WithClock overrides the time source used for day boundaries. For tests.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// Writer appends NDJSON events to <dir>/YYYY-MM-DD.jsonl and starts a new
// file when the date (in loc) changes. The resulting files are exactly what
// the jsonl2csv converter consumes.
type Writer struct {
	mu       sync.Mutex
	dir      string
	loc      *time.Location
	day      string
	f        *os.File
	w        *bufio.Writer
	bufSize  int
	compress bool
	now      func() time.Time
}

// New creates a daily writer rooted at dir, creating the directory if
// needed. A nil loc means UTC.
func New(dir string, loc *time.Location, opts ...Option) (*Writer, error) {
	if loc == nil {
		loc = time.UTC
	}
	w := &Writer{
		dir:     dir,
		loc:     loc,
		bufSize: defaultBufSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("daily output: mkdir %s: %w", dir, err)
	}
	return w, nil
}

// Path returns the file an event at t lands in.
func (w *Writer) Path(t time.Time) string {
	return w.pathFor(t.In(w.loc).Format("2006-01-02"))
}

func (w *Writer) pathFor(day string) string {
	return filepath.Join(w.dir, day+".jsonl")
}

// Write JSON-encodes the event and appends it to the current day file,
// rolling to a new file first if the date has changed.
func (w *Writer) Write(_ context.Context, event model.SyslogEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := w.now().In(w.loc).Format("2006-01-02")
	if day != w.day {
		if err := w.roll(day); err != nil {
			return fmt.Errorf("daily output: roll: %w", err)
		}
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("daily output: marshal: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("daily output: write: %w", err)
	}
	// Flush per event: a crash loses at most the in-flight datagram.
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("daily output: flush: %w", err)
	}
	return nil
}

// Close flushes and closes the current day file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return fmt.Errorf("daily output: flush: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("daily output: close: %w", err)
	}
	w.f = nil
	return nil
}

// roll closes the previous day file (optionally compressing it) and opens
// the file for day in append mode, so a daemon restart continues the same
// day file.
func (w *Writer) roll(day string) error {
	if w.f != nil {
		if err := w.w.Flush(); err != nil {
			return err
		}
		if err := w.f.Close(); err != nil {
			return err
		}
		if w.compress {
			if err := compressFile(w.pathFor(w.day)); err != nil {
				return err
			}
		}
	}

	f, err := os.OpenFile(w.pathFor(day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	w.f = f
	if w.w == nil {
		w.w = bufio.NewWriterSize(f, w.bufSize)
	} else {
		w.w.Reset(f)
	}
	w.day = day
	return nil
}

// compressFile gzips path into path.gz and removes the original.
func compressFile(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(dst)
	if _, err := io.Copy(zw, src); err != nil {
		zw.Close()
		dst.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Remove(path)
}
