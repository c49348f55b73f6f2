package severity

import (
	"testing"

	snherr "github.com/simbashlog/notify-helper/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLookup tests Lookup for every valid code and the boundaries
// TestLookup 测试所有有效代码及边界
func TestLookup(t *testing.T) {
	for code := 0; code < Count; code++ {
		d, err := Lookup(code)
		require.NoError(t, err)
		assert.Equal(t, code, d.Code)
		assert.Equal(t, Level(code), d.Level)
	}

	for _, code := range []int{-1, 8, 100} {
		_, err := Lookup(code)
		assert.ErrorIs(t, err, snherr.ErrOutOfRange)
	}
}

func TestLookup_Error(t *testing.T) {
	d, err := Lookup(3)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", d.Label)
	assert.Equal(t, "Error", d.Severity)
	assert.Equal(t, "Error conditions", d.Description)
	assert.Equal(t, "❗", d.Glyph)
	assert.Equal(t, `\u2757`, d.Symbol)
}

// TestAll tests ordering and that the result is a copy
// TestAll 测试顺序以及结果为副本
func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, Count)
	assert.Equal(t, "EMERG", all[0].Label)
	assert.Equal(t, "DEBUG", all[7].Label)
	for i, d := range all {
		assert.Equal(t, i, d.Code)
	}

	all[0].Label = "changed"
	assert.Equal(t, "EMERG", All()[0].Label)
	assert.Equal(t, []string{"EMERG", "ALERT", "CRIT", "ERROR", "WARN", "NOTICE", "INFO", "DEBUG"}, Labels())
}

func TestByLabel(t *testing.T) {
	l, err := ByLabel("NOTICE")
	require.NoError(t, err)
	assert.Equal(t, Notice, l)

	_, err = ByLabel("INVALID")
	assert.ErrorIs(t, err, snherr.ErrUnknownSeverity)
}

// TestParseToken tests token mapping
// TestParseToken 测试令牌映射
func TestParseToken(t *testing.T) {
	tests := []struct {
		token string
		want  Level
		ok    bool
	}{
		{"ERROR", Error, true},
		{"error", Error, true},
		{"Warning", Warn, true},
		{"WARN", Warn, true},
		{"Informational", Info, true},
		{"6", Info, true},
		{"0", Emerg, true},
		{" DEBUG ", Debug, true},
		{"8", 0, false},
		{"-1", 0, false},
		{"-0", 0, false},
		{"+3", 0, false},
		{"03", 0, false},
		{"33", 0, false},
		{"FATAL", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			got, ok := ParseToken(tc.token)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestLevel_Methods(t *testing.T) {
	assert.Equal(t, "CRIT", Crit.String())
	assert.Equal(t, "9", Level(9).String())
	assert.True(t, Info.Valid())
	assert.False(t, Level(8).Valid())
	assert.True(t, Error.MoreSevereThan(Warn))
	assert.False(t, Debug.MoreSevereThan(Info))
	assert.Equal(t, "Emergency", Emerg.Details().Severity)
	assert.Panics(t, func() { _ = Level(-1).Details() })
}

func TestNumberGlyph(t *testing.T) {
	assert.Equal(t, "0\uFE0F\u20E3", NumberGlyph(0))
	assert.Equal(t, "🔟", NumberGlyph(10))
	assert.Equal(t, "1\uFE0F\u20E32\uFE0F\u20E3", NumberGlyph(12))
}
