package multi

import (
	"context"
	"errors"

	"github.com/SafarGalimzianov/switch-logs/internal/model"
	"github.com/SafarGalimzianov/switch-logs/internal/output"
)

// Multi fans out captured events to several destinations, typically the
// daily file writer plus a live stdout echo. A failing destination does not
// stop delivery to the others.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers the event to every wrapped output, collecting errors.
func (m *Multi) Write(ctx context.Context, event model.SyslogEvent) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
