package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// IsCompressed reports whether path names a gzip-compressed log (e.g. rotated "app.log.gz").
// IsCompressed 判断路径是否为 gzip 压缩的日志。
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// CheckReadable verifies that path exists, is a regular file and can be opened.
// CheckReadable 校验路径存在、是普通文件且可打开。
func CheckReadable(path string) error {
	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	info, err := os.Stat(safePath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("is a directory")
	}
	f, err := os.Open(safePath) // #nosec G304 // path is sanitized with filepath.Clean
	if err != nil {
		return err
	}
	return f.Close()
}

// OpenLogSource opens a log file for reading, decompressing ".gz" files transparently.
// Closing the returned reader closes the underlying file.
// OpenLogSource 打开日志文件，".gz" 文件自动解压。
func OpenLogSource(path string) (io.ReadCloser, error) {
	safePath := filepath.Clean(path)
	f, err := os.Open(safePath) // #nosec G304 // path is sanitized with filepath.Clean
	if err != nil {
		return nil, err
	}
	if !IsCompressed(safePath) {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip stream %s: %w", safePath, err)
	}
	return &gzipFile{Reader: zr, file: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	ferr := g.file.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// ExpandHome replaces a leading "~" with the user's home directory.
// ExpandHome 将开头的 "~" 替换为用户主目录。
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
