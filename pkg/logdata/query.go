package logdata

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// queryEnv is the row as seen by a query expression.
type queryEnv struct {
	Timestamp   string `expr:"timestamp"`
	Host        string `expr:"host"`
	ProcessName string `expr:"process_name"`
	PID         int    `expr:"pid"`
	HasPID      bool   `expr:"has_pid"`
	Level       int    `expr:"level"`
	Label       string `expr:"label"`
	Message     string `expr:"message"`
}

func newQueryEnv(r Record) queryEnv {
	env := queryEnv{
		Timestamp: r.TimeText,
		Level:     int(r.Level),
		Label:     r.Level.String(),
		Message:   r.Message,
	}
	if r.Host != nil {
		env.Host = *r.Host
	}
	if r.ProcessName != nil {
		env.ProcessName = *r.ProcessName
	}
	if r.PID != nil {
		env.PID = *r.PID
		env.HasPID = true
	}
	return env
}

type query struct {
	program *vm.Program
}

func compileQuery(src string) (*query, error) {
	if src == "" {
		return nil, fmt.Errorf("empty expression")
	}
	program, err := expr.Compile(src, expr.Env(queryEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}
	return &query{program: program}, nil
}

func (q *query) match(r Record) (bool, error) {
	out, err := expr.Run(q.program, newQueryEnv(r))
	if err != nil {
		return false, err
	}
	matched, ok := out.(bool)
	return ok && matched, nil
}
