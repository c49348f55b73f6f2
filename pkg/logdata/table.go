package logdata

import (
	"fmt"
	"strings"

	snherr "github.com/simbashlog/notify-helper/pkg/errors"
)

// Table is the row-oriented view of parsed records. Every row has the same
// column set; absent values stay nil. Row order is file order.
type Table struct {
	rows []Record
}

// Project builds a Table from parsed records without filtering them.
func Project(records []Record) *Table {
	rows := make([]Record, len(records))
	copy(rows, records)
	return &Table{rows: rows}
}

// Columns returns the fixed column names.
func (t *Table) Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns a copy of all rows.
func (t *Table) Rows() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, len(t.rows))
	copy(out, t.rows)
	return out
}

// Row returns the i-th row.
func (t *Table) Row(i int) Record {
	return t.rows[i]
}

// Head returns at most n leading rows.
func (t *Table) Head(n int) []Record {
	rows := t.Rows()
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

// Column returns the values of one column. Absent values are nil; present values
// are string (timestamp, host, process_name, message), int (pid) or severity.Level.
func (t *Table) Column(name string) ([]interface{}, error) {
	get, ok := columnGetters[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]interface{}, t.Len())
	for i, r := range t.Rows() {
		out[i] = get(r)
	}
	return out, nil
}

var columnGetters = map[string]func(Record) interface{}{
	ColumnTimestamp: func(r Record) interface{} {
		if r.TimeText == "" {
			return nil
		}
		return r.TimeText
	},
	ColumnHost:        func(r Record) interface{} { return derefString(r.Host) },
	ColumnProcessName: func(r Record) interface{} { return derefString(r.ProcessName) },
	ColumnPID: func(r Record) interface{} {
		if r.PID == nil {
			return nil
		}
		return *r.PID
	},
	ColumnLevel:   func(r Record) interface{} { return r.Level },
	ColumnMessage: func(r Record) interface{} { return r.Message },
}

func derefString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// Query returns the rows for which the boolean expression holds, in table order.
// Variables: timestamp, host, process_name, pid, has_pid, level, label, message.
// Example: `level <= 3 && has_pid && pid == 123`.
func (t *Table) Query(expression string) ([]Record, error) {
	program, err := compileQuery(strings.TrimSpace(expression))
	if err != nil {
		return nil, snherr.NewExpressionError(expression, err)
	}

	var out []Record
	for _, r := range t.rows {
		ok, err := program.match(r)
		if err != nil {
			return nil, snherr.NewExpressionError(expression, err)
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
