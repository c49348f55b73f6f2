package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVersion tests that version is set
// TestVersion 测试版本已设置
func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version)
	if Version != "dev" {
		t.Logf("Version is: %s (expected 'dev' for development)", Version)
	}
}
