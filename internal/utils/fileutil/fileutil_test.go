package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReadable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(file, []byte("x\n"), 0600))

	assert.NoError(t, CheckReadable(file))
	assert.Error(t, CheckReadable(filepath.Join(dir, "missing.log")))
	assert.Error(t, CheckReadable(dir))
}

func TestOpenLogSource_Plain(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(file, []byte("hello\n"), 0600))

	rc, err := OpenLogSource(file)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

// TestOpenLogSource_Gzip tests transparent decompression
// TestOpenLogSource_Gzip 测试透明解压
func TestOpenLogSource_Gzip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log.gz")
	f, err := os.Create(file)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("compressed line\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	assert.True(t, IsCompressed(file))

	rc, err := OpenLogSource(file)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.NoError(t, rc.Close())
	assert.Equal(t, "compressed line\n", string(data))
}

func TestOpenLogSource_BadGzip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.log.gz")
	require.NoError(t, os.WriteFile(file, []byte("not gzip"), 0600))

	_, err := OpenLogSource(file)
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "cfg.json"), ExpandHome("~/cfg.json"))
	assert.Equal(t, "/etc/cfg.json", ExpandHome("/etc/cfg.json"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
