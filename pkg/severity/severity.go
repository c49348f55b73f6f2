// Package severity holds the RFC 5424 severity levels and their display metadata.
// Package severity 保存 RFC 5424 严重级别及其显示元数据。
package severity

import (
	"strconv"
	"strings"

	snherr "github.com/simbashlog/notify-helper/pkg/errors"
)

// Level is an RFC 5424 severity, 0 (most severe) to 7.
// Level 是 RFC 5424 严重级别，0（最严重）到 7。
type Level int

const (
	Emerg Level = iota
	Alert
	Crit
	Error
	Warn
	Notice
	Info
	Debug
)

// Count is the number of severity levels defined by RFC 5424.
const Count = 8

// Details describes one severity level.
// Details 描述一个严重级别。
type Details struct {
	Level       Level
	Code        int
	Label       string // EMERG, ALERT, ...
	Severity    string // RFC 5424 severity name
	Description string // RFC 5424 description
	Glyph       string // emoji
	Symbol      string // escaped unicode, for terminals that cannot render Glyph
}

var catalog = [Count]Details{
	{Emerg, 0, "EMERG", "Emergency", "System is unusable", "🚑", `\U0001F691`},
	{Alert, 1, "ALERT", "Alert", "Action must be taken immediately", "🚨", `\U0001F6A8`},
	{Crit, 2, "CRIT", "Critical", "Critical conditions", "🔥", `\U0001F525`},
	{Error, 3, "ERROR", "Error", "Error conditions", "❗", `\u2757`},
	{Warn, 4, "WARN", "Warning", "Warning conditions", "⚠️", `\u26A0\uFE0F`},
	{Notice, 5, "NOTICE", "Notice", "Normal but significant condition", "📝", `\U0001F4DD`},
	{Info, 6, "INFO", "Informational", "Informational messages", "ℹ️", `\u2139\uFE0F`},
	{Debug, 7, "DEBUG", "Debug", "Debug-level messages", "🔍", `\U0001F50D`},
}

// Lookup returns the details for the numerical code.
// Lookup 返回数字代码对应的详细信息。
func Lookup(code int) (Details, error) {
	if code < 0 || code >= Count {
		return Details{}, snherr.NewOutOfRangeError(code)
	}
	return catalog[code], nil
}

// All returns every level from Emergency to Debug. The slice is a copy.
// All 返回从 Emergency 到 Debug 的所有级别（副本）。
func All() []Details {
	out := make([]Details, Count)
	copy(out, catalog[:])
	return out
}

// Labels returns the labels in code order.
func Labels() []string {
	out := make([]string, Count)
	for i, d := range catalog {
		out[i] = d.Label
	}
	return out
}

// ByLabel finds a level by its exact label (e.g. "ERROR").
// ByLabel 按精确标签查找级别。
func ByLabel(label string) (Level, error) {
	for _, d := range catalog {
		if d.Label == label {
			return d.Level, nil
		}
	}
	return 0, snherr.NewSeverityError(label)
}

// ParseToken maps a severity token found in a log to a level.
// Accepted: labels and RFC 5424 names (any case) or a single digit 0-7.
func ParseToken(token string) (Level, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	if len(token) == 1 && token[0] >= '0' && token[0] <= '7' {
		return Level(token[0] - '0'), true
	}
	for _, d := range catalog {
		if strings.EqualFold(d.Label, token) || strings.EqualFold(d.Severity, token) {
			return d.Level, true
		}
	}
	return 0, false
}

// Valid reports whether l is one of the eight defined levels.
func (l Level) Valid() bool {
	return l >= Emerg && l <= Debug
}

// Details returns the catalog entry for l. It panics on an invalid level.
func (l Level) Details() Details {
	if !l.Valid() {
		panic(snherr.NewOutOfRangeError(int(l)))
	}
	return catalog[l]
}

// String returns the label, or the number for invalid levels.
func (l Level) String() string {
	if !l.Valid() {
		return strconv.Itoa(int(l))
	}
	return catalog[l].Label
}

// MoreSevereThan reports whether l is more urgent than other (lower code).
func (l Level) MoreSevereThan(other Level) bool {
	return l < other
}

var keycaps = [10]string{
	"0\uFE0F\u20E3", "1\uFE0F\u20E3", "2\uFE0F\u20E3", "3\uFE0F\u20E3", "4\uFE0F\u20E3",
	"5\uFE0F\u20E3", "6\uFE0F\u20E3", "7\uFE0F\u20E3", "8\uFE0F\u20E3", "9\uFE0F\u20E3",
}

// NumberGlyph renders n with keycap emoji, one per digit. Ten is rendered as 🔟.
// NumberGlyph 使用键帽表情渲染数字。
func NumberGlyph(n int) string {
	if n == 10 {
		return "🔟"
	}
	var b strings.Builder
	if n < 0 {
		b.WriteString("-")
		n = -n
	}
	for _, c := range strconv.Itoa(n) {
		b.WriteString(keycaps[c-'0'])
	}
	return b.String()
}
