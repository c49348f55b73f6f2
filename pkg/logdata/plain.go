package logdata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/simbashlog/notify-helper/pkg/config"
	snherr "github.com/simbashlog/notify-helper/pkg/errors"
	"github.com/simbashlog/notify-helper/pkg/severity"
)

// lineLayout splits one non-empty line into a record.
type lineLayout interface {
	split(line string) (Record, error)
}

// PlainParser reads line-oriented text logs.
type PlainParser struct {
	layout lineLayout
}

// NewPlainParser creates a parser for the named plain layout ("" means fields).
func NewPlainParser(layout string) (*PlainParser, error) {
	switch layout {
	case "", config.LayoutFields:
		return &PlainParser{layout: fieldsLayout{}}, nil
	case config.LayoutSimbashlog:
		return &PlainParser{layout: simbashlogLayout{}}, nil
	default:
		return nil, snherr.NewConfigError("log-format", layout)
	}
}

// Parse reads path line by line. Malformed lines become warnings; the parse fails
// only when no line could be used.
func (p *PlainParser) Parse(path string) (*Result, error) {
	res := &Result{}
	err := readLines(path, func(num int, line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		rec, err := p.layout.split(line)
		if err != nil {
			skip(res, path, num, "%v", err)
			return
		}
		res.Records = append(res.Records, rec)
	})
	if err != nil {
		return nil, err
	}
	return finish(path, res)
}

// fieldsLayout is "timestamp host process pid severity message", single-space
// delimited. The message is the remainder of the line and may contain spaces.
// An empty or "-" field is absent.
type fieldsLayout struct{}

const fieldCount = 6

func (fieldsLayout) split(line string) (Record, error) {
	parts := strings.SplitN(line, " ", fieldCount)
	if len(parts) < fieldCount-1 {
		return Record{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(parts))
	}

	level, ok := severity.ParseToken(parts[4])
	if !ok {
		return Record{}, fmt.Errorf("unknown severity %q", parts[4])
	}
	pid, err := parsePID(parts[3])
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Host:        optional(parts[1]),
		ProcessName: optional(parts[2]),
		PID:         pid,
		Level:       level,
	}
	if ts := optional(parts[0]); ts != nil {
		rec.TimeText = *ts
		rec.Time = parseTime(*ts)
	}
	if len(parts) == fieldCount {
		rec.Message = strings.TrimSpace(parts[5])
	}
	return rec, nil
}

// simbashlogLayout is the orchestrator's own line format:
// "2024-01-01 12:00:00 - [script.sh] - [PID: 123] - [ERROR] - message"
type simbashlogLayout struct{}

var simbashlogLine = regexp.MustCompile(`^(?P<timestamp>[\d-]+\s[\d:]+)\s-\s\[(?P<script>.*?)\]\s-\s\[PID:\s(?P<pid>\d+)\]\s-\s\[(?P<level>\w+)\]\s-\s?(?P<message>.*)$`)

func (simbashlogLayout) split(line string) (Record, error) {
	m := simbashlogLine.FindStringSubmatch(line)
	if m == nil {
		return Record{}, fmt.Errorf("line does not match simbashlog layout")
	}
	level, ok := severity.ParseToken(m[4])
	if !ok {
		return Record{}, fmt.Errorf("unknown severity %q", m[4])
	}
	pid, err := parsePID(m[3])
	if err != nil {
		return Record{}, err
	}
	return Record{
		Time:        parseTime(m[1]),
		TimeText:    m[1],
		ProcessName: optional(m[2]),
		PID:         pid,
		Level:       level,
		Message:     strings.TrimSpace(m[5]),
	}, nil
}

func parsePID(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid pid %q", s)
	}
	return &n, nil
}
