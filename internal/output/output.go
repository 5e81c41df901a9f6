package output

import (
	"context"

	"github.com/SafarGalimzianov/switch-logs/internal/model"
)

// Output defines the interface for captured syslog event destinations.
type Output interface {
	Write(ctx context.Context, event model.SyslogEvent) error
	Close() error
}
