package model

import "fmt"

// Record is one JSONL object with its values already flattened to CSV cell
// text. Keys are the object's top-level keys; a key absent from the map
// renders as an empty cell.
type Record map[string]string

// Warning describes a skipped input line.
type Warning struct {
	Line   int    // 1-based line number in the source
	Reason string // why the line was skipped
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}
