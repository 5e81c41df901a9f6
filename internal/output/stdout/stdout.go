package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/SafarGalimzianov/switch-logs/internal/model"
)

// Output echoes JSON-encoded captured events to stdout, one per line.
// Useful for watching a capture session live while the daily writer
// persists the same events.
type Output struct {
	enc *json.Encoder
}

// New creates a stdout Output.
func New() *Output {
	return NewWriter(os.Stdout)
}

// NewWriter creates an Output writing to w.
func NewWriter(w io.Writer) *Output {
	return &Output{enc: json.NewEncoder(w)}
}

func (o *Output) Write(_ context.Context, event model.SyslogEvent) error {
	if err := o.enc.Encode(event); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
