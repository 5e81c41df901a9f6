package daily

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/SafarGalimzianov/switch-logs/internal/model"
)

func event(raw string, ts time.Time) model.SyslogEvent {
	return model.SyslogEvent{Timestamp: ts, SrcIP: "192.168.1.10", Raw: raw}
}

func TestWriteAppendsToDayFile(t *testing.T) {
	dir := t.TempDir()
	clock := time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)

	w, err := New(dir, time.UTC, WithClock(func() time.Time { return clock }))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := w.Write(context.Background(), event("port up", clock)); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	w.Close()

	if got, want := w.Path(clock), filepath.Join(dir, "2025-08-27.jsonl"); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
	data, err := os.ReadFile(w.Path(clock))
	if err != nil {
		t.Fatalf("read day file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		var ev model.SyslogEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Errorf("line %d: invalid JSON: %v", i, err)
		}
		if ev.Raw != "port up" || ev.SrcIP != "192.168.1.10" {
			t.Errorf("line %d: event = %+v", i, ev)
		}
	}
}

func TestRollsOnDateChange(t *testing.T) {
	dir := t.TempDir()
	clock := time.Date(2025, 8, 27, 23, 59, 0, 0, time.UTC)

	w, err := New(dir, time.UTC, WithClock(func() time.Time { return clock }))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	w.Write(context.Background(), event("before midnight", clock))

	clock = clock.Add(2 * time.Minute) // now 2025-08-28
	w.Write(context.Background(), event("after midnight", clock))
	w.Close()

	for _, name := range []string{"2025-08-27.jsonl", "2025-08-28.jsonl"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestRollRespectsLocation(t *testing.T) {
	dir := t.TempDir()
	// 21:00 UTC on the 27th is already the 28th at UTC+5.
	clock := time.Date(2025, 8, 27, 21, 0, 0, 0, time.UTC)
	loc := time.FixedZone("UTC+5", 5*3600)

	w, err := New(dir, loc, WithClock(func() time.Time { return clock }))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	w.Write(context.Background(), event("evening", clock))
	w.Close()

	if _, err := os.Stat(filepath.Join(dir, "2025-08-28.jsonl")); err != nil {
		t.Errorf("expected local-date file: %v", err)
	}
}

func TestCompressionOnRoll(t *testing.T) {
	dir := t.TempDir()
	clock := time.Date(2025, 8, 27, 12, 0, 0, 0, time.UTC)

	w, err := New(dir, time.UTC, WithCompression(), WithClock(func() time.Time { return clock }))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	w.Write(context.Background(), event("day one", clock))

	clock = clock.Add(24 * time.Hour)
	w.Write(context.Background(), event("day two", clock))
	w.Close()

	// Closed day is gzipped, original removed.
	if _, err := os.Stat(filepath.Join(dir, "2025-08-27.jsonl")); !os.IsNotExist(err) {
		t.Error("uncompressed day file should be gone")
	}
	zf, err := os.Open(filepath.Join(dir, "2025-08-27.jsonl.gz"))
	if err != nil {
		t.Fatalf("open gz: %v", err)
	}
	defer zf.Close()
	zr, err := gzip.NewReader(zf)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	var ev model.SyslogEvent
	if err := json.NewDecoder(zr).Decode(&ev); err != nil {
		t.Fatalf("decode gz content: %v", err)
	}
	if ev.Raw != "day one" {
		t.Errorf("Raw = %q", ev.Raw)
	}

	// Live day is plain.
	if _, err := os.Stat(filepath.Join(dir, "2025-08-28.jsonl")); err != nil {
		t.Errorf("live day file: %v", err)
	}
}

func TestReopenAppendsSameDay(t *testing.T) {
	dir := t.TempDir()
	clock := time.Date(2025, 8, 27, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		w, err := New(dir, time.UTC, WithClock(func() time.Time { return clock }))
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		w.Write(context.Background(), event("restart", clock))
		w.Close()
	}

	data, _ := os.ReadFile(filepath.Join(dir, "2025-08-27.jsonl"))
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines after restart, want 2", len(lines))
	}
}
