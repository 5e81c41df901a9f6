package model

import "time"

// SyslogEvent is one captured syslog datagram, as written to the per-day
// JSONL files and later consumed by the converter.
type SyslogEvent struct {
	Timestamp time.Time `json:"ts"`
	SrcIP     string    `json:"src_ip"`
	Raw       string    `json:"raw"`
}
