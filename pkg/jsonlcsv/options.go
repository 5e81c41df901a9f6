package jsonlcsv

import "log/slog"

type options struct {
	overwrite bool
	encoding  string
	logger    *slog.Logger
}

// Option configures a Converter.
type Option func(*options)

// WithOverwrite allows ConvertFile to replace an existing output file.
// Default: refuse with ErrOutputExists.
func WithOverwrite(b bool) Option {
	return func(o *options) {
		o.overwrite = b
	}
}

// WithEncoding sets the policy for undecodable input bytes: "replace"
// (default) substitutes U+FFFD so partially corrupt logs still convert,
// "strict" skips the affected line with a warning.
func WithEncoding(policy string) Option {
	return func(o *options) {
		o.encoding = policy
	}
}

// WithLogger routes conversion logs and per-line warnings to l.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{encoding: "replace"}
}
