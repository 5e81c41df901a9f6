package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/SafarGalimzianov/switch-logs/internal/jsonl"
	"github.com/SafarGalimzianov/switch-logs/internal/model"
)

var (
	// ErrOutputExists means the destination exists and overwriting is off.
	ErrOutputExists = errors.New("output file already exists")
	// ErrNoRecords means the input held no valid JSON objects.
	ErrNoRecords = errors.New("no valid JSON objects found")
)

// Result summarizes one file conversion.
type Result struct {
	InputFile      string
	OutputFile     string
	RecordsWritten int
	Headers        []string
	Warnings       []model.Warning
}

// Converter turns JSONL files into CSV. The whole input is buffered before
// writing: the column set is only known after the last record.
type Converter struct {
	reader    *jsonl.Reader
	overwrite bool
	log       *slog.Logger
}

// New creates a Converter. A nil logger falls back to slog.Default().
func New(policy jsonl.EncodingPolicy, overwrite bool, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.Default()
	}
	return &Converter{
		reader:    jsonl.NewReader(policy),
		overwrite: overwrite,
		log:       log,
	}
}

// Headers returns the sorted union of top-level keys across all records.
// Sorting makes the column order reproducible regardless of input order.
func Headers(records []model.Record) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, rec := range records {
		for k := range rec {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// WriteCSV writes the header row, then one row per record in input order.
// A record missing a header key yields an empty cell for that column.
func WriteCSV(w io.Writer, headers []string, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	row := make([]string, len(headers))
	for _, rec := range records {
		for i, h := range headers {
			row[i] = rec[h]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OutputPath derives the CSV output name from a JSONL input name:
// logs.jsonl -> logs.csv, logs.jsonl.gz -> logs.csv.
func OutputPath(in string) string {
	base := strings.TrimSuffix(in, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
}

// ConvertFile converts one JSONL file to CSV. An empty out derives the
// output name from the input. The destination is not touched when the input
// is missing, holds no valid records, or the destination exists and
// overwriting is off. Skipped lines are logged and reported in the Result,
// never fatal.
func (c *Converter) ConvertFile(in, out string) (Result, error) {
	if out == "" {
		out = OutputPath(in)
	}
	res := Result{InputFile: in, OutputFile: out}

	records, warnings, err := c.reader.ReadFile(in)
	res.Warnings = warnings
	for _, w := range warnings {
		c.log.Warn("skipping line", "file", in, "line", w.Line, "reason", w.Reason)
	}
	if err != nil {
		return res, fmt.Errorf("convert %s: %w", in, err)
	}
	if len(records) == 0 {
		return res, fmt.Errorf("convert %s: %w", in, ErrNoRecords)
	}
	headers := Headers(records)
	if len(headers) == 0 {
		return res, fmt.Errorf("convert %s: no keys across JSON objects", in)
	}
	res.Headers = headers

	if !c.overwrite {
		if _, statErr := os.Stat(out); statErr == nil {
			return res, fmt.Errorf("convert %s: %q: %w", in, out, ErrOutputExists)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return res, fmt.Errorf("convert %s: create %s: %w", in, out, err)
	}
	if err := WriteCSV(f, headers, records); err != nil {
		f.Close()
		return res, fmt.Errorf("convert %s: write %s: %w", in, out, err)
	}
	if err := f.Close(); err != nil {
		return res, fmt.Errorf("convert %s: close %s: %w", in, out, err)
	}
	res.RecordsWritten = len(records)

	c.log.Info("converted",
		"in", in, "out", out,
		"records", res.RecordsWritten, "columns", len(headers))
	return res, nil
}
