package notifyhelper

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	snherr "github.com/simbashlog/notify-helper/pkg/errors"
	"github.com/simbashlog/notify-helper/pkg/logdata"
	"github.com/simbashlog/notify-helper/pkg/severity"
	"github.com/simbashlog/notify-helper/pkg/summary"
)

const previewRows = 5

// HasLogData reports whether a log table is available.
func (s *StoredLogInfo) HasLogData() bool {
	return s != nil && s.Table != nil
}

func (s *StoredLogInfo) table() (*logdata.Table, error) {
	if !s.HasLogData() {
		return nil, snherr.ErrNoLogData
	}
	return s.Table, nil
}

// EntryCount returns the number of parsed log entries.
func (s *StoredLogInfo) EntryCount() (int, error) {
	t, err := s.table()
	if err != nil {
		return 0, err
	}
	return t.Len(), nil
}

// UniquePIDCount returns the number of distinct process ids in the log.
func (s *StoredLogInfo) UniquePIDCount() (int, error) {
	t, err := s.table()
	if err != nil {
		return 0, err
	}
	seen := map[int]struct{}{}
	for _, r := range t.Rows() {
		if r.PID != nil {
			seen[*r.PID] = struct{}{}
		}
	}
	return len(seen), nil
}

// EntryCountBySeverity returns how many entries have the given level.
func (s *StoredLogInfo) EntryCountBySeverity(level severity.Level) (int, error) {
	counts, err := s.FileSummary()
	if err != nil {
		return 0, err
	}
	if !level.Valid() {
		return 0, snherr.NewOutOfRangeError(int(level))
	}
	return counts[level], nil
}

// HighestSeverity returns the most severe level present in the log.
func (s *StoredLogInfo) HighestSeverity() (severity.Level, error) {
	t, err := s.table()
	if err != nil {
		return 0, err
	}
	if t.Len() == 0 {
		return 0, snherr.ErrEmptyTable
	}
	highest := severity.Debug
	for _, r := range t.Rows() {
		if r.Level.MoreSevereThan(highest) {
			highest = r.Level
		}
	}
	return highest, nil
}

// FileSummary counts all entries of the log per level, including entries without a pid.
func (s *StoredLogInfo) FileSummary() ([severity.Count]int, error) {
	var counts [severity.Count]int
	t, err := s.table()
	if err != nil {
		return counts, err
	}
	for _, r := range t.Rows() {
		if r.Level.Valid() {
			counts[r.Level]++
		}
	}
	return counts, nil
}

// SummaryForPID returns the per-level counts of one pid. A pid that never
// appears yields a zero row.
func (s *StoredLogInfo) SummaryForPID(pid int) (summary.Row, error) {
	if s == nil || s.Summary == nil {
		return summary.Row{}, snherr.ErrNoLogData
	}
	row, ok := s.Summary.Row(pid)
	if !ok {
		return summary.Row{PID: pid}, nil
	}
	return row, nil
}

// String renders an overview with the first rows of the log and summary tables.
func (s *StoredLogInfo) String() string {
	var b strings.Builder
	cfg := s.Config

	fmt.Fprintf(&b, "Process ID: %s\n", optInt(cfg.PID))
	fmt.Fprintf(&b, "Log Level: %s\n", optInt(cfg.LogLevel))
	msg := "None"
	if cfg.Message != nil {
		msg = *cfg.Message
	}
	fmt.Fprintf(&b, "Message: %s\n", msg)
	fmt.Fprintf(&b, "Log File: %s\n", orNone(cfg.LogFile))
	fmt.Fprintf(&b, "JSON Log File: %s\n\n", orNone(cfg.JSONLogFile))

	b.WriteString("Log Data:\n")
	if s.Table == nil {
		b.WriteString("No log data available\n")
	} else {
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(s.Table.Columns(), "\t"))
		for _, r := range s.Table.Head(previewRows) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				orNone(r.TimeText), optString(r.Host), optString(r.ProcessName), optInt(r.PID), r.Level, r.Message)
		}
		tw.Flush()
	}

	b.WriteString("\nSummary Data:\n")
	if s.Summary == nil {
		b.WriteString("No summary data available\n")
	} else {
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(s.Summary.Columns(), "\t"))
		rows := s.Summary.Rows()
		if len(rows) > previewRows {
			rows = rows[:previewRows]
		}
		for _, row := range rows {
			cells := make([]string, 0, severity.Count+1)
			for _, c := range row.Cells() {
				cells = append(cells, strconv.Itoa(c))
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		tw.Flush()
	}

	if len(s.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings: %d\n", len(s.Warnings))
	}
	if s.Err != nil {
		fmt.Fprintf(&b, "Error: %v\n", s.Err)
	}
	return b.String()
}

func optInt(n *int) string {
	if n == nil {
		return "None"
	}
	return strconv.Itoa(*n)
}

func optString(s *string) string {
	if s == nil {
		return "None"
	}
	return *s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
