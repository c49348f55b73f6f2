package logdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/simbashlog/notify-helper/pkg/config"
	snherr "github.com/simbashlog/notify-helper/pkg/errors"
	"github.com/simbashlog/notify-helper/pkg/severity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func sampleRecords() []Record {
	return []Record{
		{TimeText: "2024-01-01T00:00:00Z", Host: strPtr("h1"), ProcessName: strPtr("a"), PID: intPtr(1), Level: severity.Error, Message: "disk full"},
		{Host: strPtr("h1"), PID: nil, Level: severity.Info, Message: "no pid"},
		{ProcessName: strPtr("b"), PID: intPtr(2), Level: severity.Crit, Message: "boom"},
		{PID: intPtr(1), Level: severity.Debug, Message: "trace"},
	}
}

// TestProject tests the projection keeps every row in order
// TestProject 测试投影按顺序保留所有行
func TestProject(t *testing.T) {
	records := sampleRecords()
	table := Project(records)

	assert.Equal(t, len(records), table.Len())
	assert.Equal(t, []string{"timestamp", "host", "process_name", "pid", "level", "message"}, table.Columns())
	assert.Equal(t, records, table.Rows())
	assert.Equal(t, "boom", table.Row(2).Message)
	assert.Len(t, table.Head(2), 2)
	assert.Len(t, table.Head(10), 4)

	// Mutating the input does not change the table
	records[0].Message = "changed"
	assert.Equal(t, "disk full", table.Row(0).Message)

	empty := Project(nil)
	assert.Equal(t, 0, empty.Len())
	assert.Len(t, empty.Columns(), 6)
}

func TestTable_Column(t *testing.T) {
	table := Project(sampleRecords())

	pids, err := table.Column(ColumnPID)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1, nil, 2, 1}, pids)

	hosts, err := table.Column(ColumnHost)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"h1", "h1", nil, nil}, hosts)

	ts, err := table.Column(ColumnTimestamp)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"2024-01-01T00:00:00Z", nil, nil, nil}, ts)

	levels, err := table.Column(ColumnLevel)
	require.NoError(t, err)
	assert.Equal(t, severity.Crit, levels[2])

	_, err = table.Column("nope")
	assert.Error(t, err)

	var nilTable *Table
	assert.Equal(t, 0, nilTable.Len())
	assert.Nil(t, nilTable.Rows())
}

// TestTable_Query tests expression filtering over rows
// TestTable_Query 测试基于表达式的行过滤
func TestTable_Query(t *testing.T) {
	table := Project(sampleRecords())

	tests := []struct {
		expression string
		messages   []string
	}{
		{"level <= 3", []string{"disk full", "boom"}},
		{"has_pid && pid == 1", []string{"disk full", "trace"}},
		{"!has_pid", []string{"no pid"}},
		{`label == "DEBUG"`, []string{"trace"}},
		{`host == "h1" && message contains "disk"`, []string{"disk full"}},
		{`process_name startsWith "b"`, []string{"boom"}},
		{"level > 7", nil},
	}

	for _, tc := range tests {
		t.Run(tc.expression, func(t *testing.T) {
			rows, err := table.Query(tc.expression)
			require.NoError(t, err)
			var got []string
			for _, r := range rows {
				got = append(got, r.Message)
			}
			assert.Equal(t, tc.messages, got)
		})
	}

	for _, bad := range []string{"", "level +", "unknown_var == 1", "pid + 1"} {
		_, err := table.Query(bad)
		assert.ErrorIs(t, err, snherr.ErrInvalidExpression, bad)
	}
	assert.Equal(t, 4, table.Len())
}

// TestPlainParser_CountProperty checks that N well-formed lines give N records in order
// TestPlainParser_CountProperty 检查 N 行合法日志得到按序的 N 条记录
func TestPlainParser_CountProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	parser, err := NewPlainParser(config.LayoutFields)
	require.NoError(t, err)
	dir := t.TempDir()
	run := 0

	properties.Property("each well-formed line yields one record with its severity", prop.ForAll(
		func(levels []int) bool {
			if len(levels) == 0 {
				return true
			}
			var b strings.Builder
			for i, lvl := range levels {
				fmt.Fprintf(&b, "2024-01-01T00:00:%02dZ host proc %d %s message %d\n", i%60, i, severity.Level(lvl), i)
			}
			run++
			path := writeLogIn(t, dir, fmt.Sprintf("run%d.log", run), b.String())

			res, err := parser.Parse(path)
			if err != nil || len(res.Records) != len(levels) || len(res.Warnings) != 0 {
				return false
			}
			for i, r := range res.Records {
				if int(r.Level) != levels[i] || r.PID == nil || *r.PID != i || r.Message != fmt.Sprintf("message %d", i) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 7)),
	))

	properties.TestingRun(t)
}

func writeLogIn(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	return p
}
