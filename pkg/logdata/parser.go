package logdata

import (
	"fmt"

	"github.com/simbashlog/notify-helper/pkg/config"
	snherr "github.com/simbashlog/notify-helper/pkg/errors"
)

// Result is the output of a parse: records in file order plus the skipped lines.
type Result struct {
	Records  []Record
	Warnings []Warning
}

// Parser turns one log file into records.
type Parser interface {
	Parse(path string) (*Result, error)
}

// NewParser selects the parser for a declared log kind. The file content is never
// inspected to pick the format. layout only applies to plain logs.
func NewParser(kind config.Kind, layout string) (Parser, error) {
	switch kind {
	case config.KindPlain:
		return NewPlainParser(layout)
	case config.KindJSON:
		return NewJSONParser(), nil
	default:
		return nil, snherr.NewConfigError("kind", kind)
	}
}

// finish applies the all-or-nothing rule shared by both formats.
func finish(path string, res *Result) (*Result, error) {
	if len(res.Records) == 0 {
		return nil, snherr.NewEmptyLogError(path, len(res.Warnings))
	}
	return res, nil
}

func skip(res *Result, path string, line int, format string, args ...interface{}) {
	res.Warnings = append(res.Warnings, Warning{
		Source: path,
		Line:   line,
		Reason: fmt.Sprintf(format, args...),
	})
}
