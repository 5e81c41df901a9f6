package jsonl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/valyala/fastjson"

	"github.com/SafarGalimzianov/switch-logs/internal/model"
)

// maxLineSize caps a single JSONL line at 10MB.
const maxLineSize = 10 * 1024 * 1024

// Reader parses JSONL sources into flattened records.
// Invalid lines never abort a read; they produce warnings and parsing
// continues with the next line.
type Reader struct {
	policy  EncodingPolicy
	parsers fastjson.ParserPool
}

// NewReader creates a Reader with the given encoding policy.
func NewReader(policy EncodingPolicy) *Reader {
	return &Reader{policy: policy}
}

// ReadAll consumes src and returns one record per valid object line, in
// input order, plus a warning for every line that was skipped. Lines that
// are blank after trimming are ignored silently. Non-object top-level
// values (bare numbers, arrays) are skipped with a warning: only objects
// map to flat rows.
func (r *Reader) ReadAll(src io.Reader) ([]model.Record, []model.Warning, error) {
	p := r.parsers.Get()
	defer r.parsers.Put(p)

	var (
		records  []model.Record
		warnings []model.Warning
	)
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		s := bytes.TrimSpace(sc.Bytes())
		if len(s) == 0 {
			continue
		}
		if r.policy == EncodingStrict && !utf8.Valid(s) {
			warnings = append(warnings, model.Warning{Line: line, Reason: "invalid UTF-8"})
			continue
		}
		v, err := p.ParseBytes(s)
		if err != nil {
			warnings = append(warnings, model.Warning{Line: line, Reason: fmt.Sprintf("invalid JSON: %v", err)})
			continue
		}
		obj, err := v.Object()
		if err != nil {
			warnings = append(warnings, model.Warning{Line: line, Reason: fmt.Sprintf("non-object JSON (%s)", v.Type())})
			continue
		}
		// Flatten immediately: the parser's values are invalidated by the
		// next ParseBytes call.
		rec := make(model.Record, obj.Len())
		obj.Visit(func(key []byte, val *fastjson.Value) {
			rec[string(key)] = Flatten(val)
		})
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return records, warnings, fmt.Errorf("read: %w", err)
	}
	return records, warnings, nil
}

// ReadFile opens path (plain or gzip-compressed) and reads all records.
func (r *Reader) ReadFile(path string) ([]model.Record, []model.Warning, error) {
	src, err := Open(path, r.policy)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()
	return r.ReadAll(src)
}
