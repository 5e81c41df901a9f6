package capture

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/SafarGalimzianov/switch-logs/internal/model"
	"github.com/SafarGalimzianov/switch-logs/internal/output"
)

// maxDatagram bounds a single syslog datagram read.
const maxDatagram = 16384

// Listener receives syslog datagrams over UDP and forwards one event per
// datagram to an output.
type Listener struct {
	conn *net.UDPConn
	loc  *time.Location
	log  *slog.Logger
	now  func() time.Time
}

// New binds a UDP socket on addr (e.g. ":514"). Event timestamps are taken
// in loc; nil means UTC.
func New(addr string, loc *time.Location, log *slog.Logger) (*Listener, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("capture: resolve %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("capture: listen %s: %w", addr, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Listener{conn: conn, loc: loc, log: log, now: time.Now}, nil
}

// Addr returns the bound address. Useful when listening on port 0.
func (l *Listener) Addr() net.Addr {
	return l.conn.LocalAddr()
}

// Run reads datagrams and writes events to out until ctx is cancelled.
// Payloads are decoded as UTF-8 with U+FFFD replacing invalid bytes, so one
// corrupt datagram cannot poison a day file. A failing output write drops
// that event with a warning; the listener keeps going.
func (l *Listener) Run(ctx context.Context, out output.Output) error {
	go func() {
		<-ctx.Done()
		l.conn.Close()
	}()

	buf := make([]byte, maxDatagram)
	for {
		n, src, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("capture: read: %w", err)
		}
		ev := model.SyslogEvent{
			Timestamp: l.now().In(l.loc),
			SrcIP:     src.IP.String(),
			Raw:       strings.ToValidUTF8(string(buf[:n]), "�"),
		}
		if err := out.Write(ctx, ev); err != nil {
			l.log.Warn("dropping event", "src_ip", ev.SrcIP, "error", err)
		}
	}
}
