package jsonl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodingPolicy controls how undecodable input bytes are handled.
type EncodingPolicy int

const (
	// EncodingReplace substitutes U+FFFD for invalid UTF-8 sequences.
	// This is the default; partially corrupt logs still convert.
	EncodingReplace EncodingPolicy = iota
	// EncodingStrict skips lines containing invalid UTF-8 with a warning.
	EncodingStrict
)

// ParsePolicy maps a policy name ("replace", "strict") to an EncodingPolicy.
// The empty string means the default, EncodingReplace.
func ParsePolicy(s string) (EncodingPolicy, error) {
	switch s {
	case "", "replace":
		return EncodingReplace, nil
	case "strict":
		return EncodingStrict, nil
	}
	return 0, fmt.Errorf("unknown encoding policy %q (want replace or strict)", s)
}

// Open opens a JSONL file for reading. Files ending in .gz are decompressed
// transparently. Under EncodingReplace the returned reader substitutes
// U+FFFD for invalid UTF-8 byte sequences.
func Open(path string, policy EncodingPolicy) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var r io.Reader = f
	closers := []io.Closer{f}
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(r)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		r = zr
		closers = append(closers, zr)
	}
	if policy == EncodingReplace {
		r = transform.NewReader(r, unicode.UTF8.NewDecoder())
	}
	return &source{r: r, closers: closers}, nil
}

// source bundles the reader chain with the closers it was built from.
type source struct {
	r       io.Reader
	closers []io.Closer
}

func (s *source) Read(p []byte) (int, error) { return s.r.Read(p) }

// Close closes in reverse order so the gzip footer is checked before the
// underlying file goes away.
func (s *source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
