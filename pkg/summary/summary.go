// Package summary counts log records per process id and severity level.
package summary

import (
	snherr "github.com/simbashlog/notify-helper/pkg/errors"
	"github.com/simbashlog/notify-helper/pkg/logdata"
	"github.com/simbashlog/notify-helper/pkg/severity"
)

// ColumnPID is the first column of a summary table; the severity labels follow.
const ColumnPID = "pid"

// Row holds the per-level counts of one pid.
type Row struct {
	PID    int
	Counts [severity.Count]int
}

// Count returns the number of records of the given level.
func (r Row) Count(level severity.Level) int {
	if !level.Valid() {
		return 0
	}
	return r.Counts[level]
}

// Total returns the number of records of this pid.
func (r Row) Total() int {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	return total
}

// Cells returns a row as the column values: pid, then one count per level.
func (r Row) Cells() []int {
	out := make([]int, 0, severity.Count+1)
	out = append(out, r.PID)
	return append(out, r.Counts[:]...)
}

// Table has one row per distinct pid, in order of first occurrence.
type Table struct {
	rows  []Row
	index map[int]int
}

// Summarize groups the rows of table by pid. Records without a pid are not counted.
// An empty table yields an empty summary, or ErrEmptyTable when requireNonEmpty is set.
func Summarize(table *logdata.Table, requireNonEmpty bool) (*Table, error) {
	if table.Len() == 0 && requireNonEmpty {
		return nil, snherr.ErrEmptyTable
	}

	s := &Table{index: make(map[int]int)}
	for _, r := range table.Rows() {
		if r.PID == nil || !r.Level.Valid() {
			continue
		}
		i, ok := s.index[*r.PID]
		if !ok {
			i = len(s.rows)
			s.index[*r.PID] = i
			s.rows = append(s.rows, Row{PID: *r.PID})
		}
		s.rows[i].Counts[r.Level]++
	}
	return s, nil
}

// Columns returns "pid" followed by the eight severity labels.
func (s *Table) Columns() []string {
	return append([]string{ColumnPID}, severity.Labels()...)
}

// Len returns the number of pids.
func (s *Table) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// Rows returns a copy of the rows.
func (s *Table) Rows() []Row {
	if s == nil {
		return nil
	}
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Row returns the counts of one pid.
func (s *Table) Row(pid int) (Row, bool) {
	if s == nil {
		return Row{}, false
	}
	i, ok := s.index[pid]
	if !ok {
		return Row{}, false
	}
	return s.rows[i], true
}

// Total returns the count of a level across all pids.
func (s *Table) Total(level severity.Level) int {
	total := 0
	for _, r := range s.Rows() {
		total += r.Count(level)
	}
	return total
}
