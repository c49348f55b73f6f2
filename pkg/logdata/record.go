// Package logdata parses simbashlog log artifacts into records and a tabular view.
package logdata

import (
	"strconv"
	"strings"
	"time"

	"github.com/simbashlog/notify-helper/pkg/severity"
)

// Column names of a Table, in order.
const (
	ColumnTimestamp   = "timestamp"
	ColumnHost        = "host"
	ColumnProcessName = "process_name"
	ColumnPID         = "pid"
	ColumnLevel       = "level"
	ColumnMessage     = "message"
)

var columns = []string{ColumnTimestamp, ColumnHost, ColumnProcessName, ColumnPID, ColumnLevel, ColumnMessage}

// Record is one parsed log entry. Optional fields are nil when the source did not carry them.
// Treat records as read-only once parsed.
type Record struct {
	Time        *time.Time // parsed timestamp, nil when absent or not in a known layout
	TimeText    string     // timestamp as written in the source
	Host        *string
	ProcessName *string
	PID         *int
	Level       severity.Level
	Message     string
}

// Warning describes a line or entry that was skipped.
type Warning struct {
	Source string
	Line   int // line number for plain logs and NDJSON, entry number for JSON documents
	Reason string
}

func (w Warning) String() string {
	return w.Source + ":" + strconv.Itoa(w.Line) + ": " + w.Reason
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// parseTime tries the known layouts; naive timestamps are read as local time.
func parseTime(s string) *time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// optional returns nil for empty values and the RFC 5424 NILVALUE "-".
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	return &s
}
