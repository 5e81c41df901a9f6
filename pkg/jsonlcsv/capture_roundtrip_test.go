package jsonlcsv_test

import (
	"context"
	"encoding/csv"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/SafarGalimzianov/switch-logs/internal/model"
	"github.com/SafarGalimzianov/switch-logs/internal/output/daily"
	"github.com/SafarGalimzianov/switch-logs/pkg/jsonlcsv"
)

// Day files produced by the capture side must convert cleanly, including
// the gzipped file left behind by a date rollover.
func TestConvertDayFilesFromDailyWriter(t *testing.T) {
	dir := t.TempDir()
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2025, 8, 27, 10, 0, 0, 0, loc)

	w, err := daily.New(dir, loc,
		daily.WithCompression(),
		daily.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("daily.New error: %v", err)
	}

	ctx := context.Background()
	day1 := []model.SyslogEvent{
		{Timestamp: now, SrcIP: "192.168.1.10", Raw: "<134>switch: port 12 up"},
		{Timestamp: now.Add(time.Minute), SrcIP: "192.168.1.11", Raw: `link flap, "unstable"`},
	}
	for _, ev := range day1 {
		if err := w.Write(ctx, ev); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	day1Path := w.Path(now)

	// Next day: the writer rolls and gzips the previous file.
	now = time.Date(2025, 8, 28, 9, 15, 0, 0, loc)
	if err := w.Write(ctx, model.SyslogEvent{Timestamp: now, SrcIP: "10.0.0.1", Raw: "reload requested"}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	day2Path := w.Path(now)
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	conv, err := jsonlcsv.New(quiet())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	res, err := conv.ConvertFile(day2Path, "")
	if err != nil {
		t.Fatalf("ConvertFile(%s) error: %v", day2Path, err)
	}
	if want := []string{"raw", "src_ip", "ts"}; !reflect.DeepEqual(res.Headers, want) {
		t.Errorf("Headers = %v, want %v", res.Headers, want)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	rows := readCSV(t, res.OutputFile)
	want := [][]string{
		{"raw", "src_ip", "ts"},
		{"reload requested", "10.0.0.1", "2025-08-28T09:15:00+05:00"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}

	// The rolled file only exists gzipped; the converter reads it as-is.
	gzPath := day1Path + ".gz"
	if _, err := os.Stat(day1Path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be replaced by %s", day1Path, gzPath)
	}
	res, err = conv.ConvertFile(gzPath, "")
	if err != nil {
		t.Fatalf("ConvertFile(%s) error: %v", gzPath, err)
	}
	if res.RecordsWritten != 2 {
		t.Errorf("RecordsWritten = %d, want 2", res.RecordsWritten)
	}
	rows = readCSV(t, res.OutputFile)
	want = [][]string{
		{"raw", "src_ip", "ts"},
		{"<134>switch: port 12 up", "192.168.1.10", "2025-08-27T10:00:00+05:00"},
		{`link flap, "unstable"`, "192.168.1.11", "2025-08-27T10:01:00+05:00"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}
