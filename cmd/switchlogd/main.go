package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SafarGalimzianov/switch-logs/internal/capture"
	"github.com/SafarGalimzianov/switch-logs/internal/config"
	"github.com/SafarGalimzianov/switch-logs/internal/logging"
	"github.com/SafarGalimzianov/switch-logs/internal/output"
	"github.com/SafarGalimzianov/switch-logs/internal/output/async"
	"github.com/SafarGalimzianov/switch-logs/internal/output/daily"
	"github.com/SafarGalimzianov/switch-logs/internal/output/multi"
	"github.com/SafarGalimzianov/switch-logs/internal/output/stdout"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stderr)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "switchlogd: %v\n", err)
		os.Exit(1)
	}
}

// run starts the daemon and blocks until ctx is cancelled or a
// SIGINT/SIGTERM arrives. It returns context.Canceled on a clean stop.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("switchlogd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Logging.Level, true)

	// Day-file writer, decoupled from the UDP read loop.
	var dayOpts []daily.Option
	if cfg.Output.CompressRotated {
		dayOpts = append(dayOpts, daily.WithCompression())
	}
	dw, err := daily.New(cfg.Output.Dir, cfg.Location(), dayOpts...)
	if err != nil {
		return err
	}
	var sink output.Output = async.New(dw)
	if cfg.Output.Echo {
		sink = multi.New(stdout.New(), sink)
	}

	listener, err := capture.New(cfg.Listen.Addr, cfg.Location(), slog.Default())
	if err != nil {
		sink.Close()
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	slog.Info("listening",
		"addr", listener.Addr().String(),
		"dir", cfg.Output.Dir,
		"compress_rotated", cfg.Output.CompressRotated)

	err = listener.Run(ctx, sink)
	if cerr := sink.Close(); cerr != nil && (err == nil || errors.Is(err, context.Canceled)) {
		err = cerr
	}
	return err
}
