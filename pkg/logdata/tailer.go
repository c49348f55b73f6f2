package logdata

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/nxadm/tail"
	"github.com/simbashlog/notify-helper/internal/utils/fileutil"
)

const maxLineSize = 1 << 20

// lineFunc receives each line with its 1-based number, trailing newline removed.
type lineFunc func(num int, text string)

// readLines streams the lines of path in file order and returns once the file is
// fully read and the tailer stopped. Compressed files are read through the gzip
// stream since tail can only follow plain files.
// Never call t.Cleanup here: it starts the process-wide inotify tracker.
func readLines(path string, fn lineFunc) error {
	if fileutil.IsCompressed(path) {
		return readCompressedLines(path, fn)
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:    false, // one pass up to EOF, then Lines is closed
		ReOpen:    false,
		MustExist: true,
		Poll:      true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return err
	}
	var readErr error
	num := 0
	for line := range t.Lines {
		num++
		if line.Err != nil {
			if readErr == nil {
				readErr = fmt.Errorf("read %s line %d: %w", path, num, line.Err)
			}
			continue
		}
		fn(num, strings.TrimRight(line.Text, "\r"))
	}
	if err := t.Stop(); err != nil && readErr == nil {
		readErr = err
	}
	return readErr
}

func readCompressedLines(path string, fn lineFunc) error {
	rc, err := fileutil.OpenLogSource(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	num := 0
	for scanner.Scan() {
		num++
		fn(num, strings.TrimRight(scanner.Text(), "\r"))
	}
	return scanner.Err()
}
