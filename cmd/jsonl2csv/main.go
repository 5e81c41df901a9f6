package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/SafarGalimzianov/switch-logs/internal/cliutil"
	"github.com/SafarGalimzianov/switch-logs/internal/logging"
	"github.com/SafarGalimzianov/switch-logs/pkg/jsonlcsv"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsonl2csv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		output    = fs.String("o", "", "output CSV file (only valid with a single input)")
		overwrite = fs.Bool("overwrite", false, "overwrite existing CSV files without prompting")
		encoding  = fs.String("encoding", "replace", "undecodable byte policy: replace | strict")
		logLevel  = fs.String("log-level", "info", "log level: debug | info | warn | error")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, `jsonl2csv: convert JSON Lines files to CSV

Usage:
  jsonl2csv [flags] <file.jsonl|pattern> ...

Examples:
  jsonl2csv data.jsonl
  jsonl2csv -o output.csv data.jsonl
  jsonl2csv --overwrite '*.jsonl'
  jsonl2csv 2025-08-27.jsonl.gz

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	logging.Init(*logLevel, false)

	args := fs.Args()
	if len(args) == 0 {
		fmt.Fprintln(stderr, "error: no input files specified")
		fs.Usage()
		return 2
	}
	files, unmatched, err := cliutil.ExpandPatterns(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	for _, p := range unmatched {
		fmt.Fprintf(stderr, "warning: no files match pattern %q\n", p)
	}
	if len(files) == 0 {
		fmt.Fprintln(stderr, "error: no input files found")
		return 1
	}
	if *output != "" && len(files) > 1 {
		fmt.Fprintln(stderr, "error: -o is only valid with a single input file")
		return 2
	}

	newConverter := func(force bool) (*jsonlcsv.Converter, error) {
		return jsonlcsv.New(
			jsonlcsv.WithEncoding(*encoding),
			jsonlcsv.WithOverwrite(*overwrite || force),
		)
	}
	conv, err := newConverter(false)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	prompter := bufio.NewReader(stdin)
	exit := 0
	for _, in := range files {
		out := *output
		if out == "" {
			out = jsonlcsv.OutputPath(in)
		}

		c := conv
		if !*overwrite {
			if _, statErr := os.Stat(out); statErr == nil {
				if !cliutil.ConfirmOverwrite(prompter, stdout, out) {
					fmt.Fprintf(stdout, "skipping %q\n", in)
					continue
				}
				// One-off converter with overwriting enabled for the
				// confirmed file.
				forced, fErr := newConverter(true)
				if fErr != nil {
					fmt.Fprintf(stderr, "error: %v\n", fErr)
					return 2
				}
				c = forced
			}
		}

		res, err := c.ConvertFile(in, out)
		if err != nil {
			// A file with nothing convertible is a warning, like its
			// individual unconvertible lines; a sibling file may still
			// succeed.
			if errors.Is(err, jsonlcsv.ErrNoRecords) {
				fmt.Fprintf(stderr, "warning: %v\n", err)
				continue
			}
			fmt.Fprintf(stderr, "error: %v\n", err)
			exit = 1
			continue
		}
		fmt.Fprintf(stdout, "converted %d records to %q (%d columns)\n",
			res.RecordsWritten, res.OutputFile, len(res.Headers))
	}
	return exit
}
