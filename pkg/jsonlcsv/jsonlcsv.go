package jsonlcsv

import (
	"fmt"
	"log/slog"

	"github.com/SafarGalimzianov/switch-logs/internal/cliutil"
	"github.com/SafarGalimzianov/switch-logs/internal/convert"
	"github.com/SafarGalimzianov/switch-logs/internal/jsonl"
)

// Sentinel errors for errors.Is checks on ConvertFile failures.
var (
	// ErrOutputExists: the destination exists and WithOverwrite(true) was not set.
	ErrOutputExists = convert.ErrOutputExists
	// ErrNoRecords: the input held no valid JSON object lines.
	ErrNoRecords = convert.ErrNoRecords
)

// Result summarizes one conversion.
type Result struct {
	InputFile      string
	OutputFile     string
	RecordsWritten int
	Headers        []string // sorted column names
	Warnings       []string // one entry per skipped line
}

// Converter converts JSONL files to CSV.
// A Converter is cheap to create and reusable across files.
type Converter struct {
	inner *convert.Converter
}

// New creates a Converter.
func New(opts ...Option) (*Converter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	policy, err := jsonl.ParsePolicy(o.encoding)
	if err != nil {
		return nil, fmt.Errorf("jsonlcsv: %w", err)
	}
	log := o.logger
	if log == nil {
		log = slog.Default()
	}
	return &Converter{inner: convert.New(policy, o.overwrite, log)}, nil
}

// ConvertFile converts one JSONL file (plain or gzip-compressed) to CSV.
// An empty output derives the destination from the input name
// (x.jsonl -> x.csv). The partial Result is returned alongside any error,
// so callers still see the warnings collected before the failure.
func (c *Converter) ConvertFile(input, output string) (Result, error) {
	res, err := c.inner.ConvertFile(input, output)
	out := Result{
		InputFile:      res.InputFile,
		OutputFile:     res.OutputFile,
		RecordsWritten: res.RecordsWritten,
		Headers:        res.Headers,
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	return out, err
}

// OutputPath derives the CSV output name from a JSONL input name:
// logs.jsonl -> logs.csv, logs.jsonl.gz -> logs.csv.
func OutputPath(input string) string {
	return convert.OutputPath(input)
}

// ExpandPatterns expands glob patterns into file paths, passing plain
// paths through and deduplicating while preserving order. Patterns that
// match nothing are returned in unmatched.
func ExpandPatterns(patterns []string) (files, unmatched []string, err error) {
	return cliutil.ExpandPatterns(patterns)
}
