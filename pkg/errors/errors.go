package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNoLogSource         = errors.New("no log source")
	ErrUnreadableFile      = errors.New("unreadable file")
	ErrAmbiguousLogSource  = errors.New("ambiguous log source")
	ErrEmptyOrMalformedLog = errors.New("empty or malformed log")
	ErrOutOfRange          = errors.New("severity level out of range")
	ErrUnknownSeverity     = errors.New("unknown severity")
	ErrEmptyTable          = errors.New("empty log table")
	ErrNoLogData           = errors.New("no log data available")
	ErrInvalidExpression   = errors.New("invalid query expression")
	ErrConfigNotFound      = errors.New("config not found")
	ErrConfigInvalid       = errors.New("invalid configuration")
	ErrFieldMissing        = errors.New("required config field missing")
)

// Is reports whether any error in err's chain matches target.
// Is 报告 err 链中是否有错误与 target 匹配。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func NewUnreadableFileError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, reason)
}

func NewAmbiguousSourceError(logFile, jsonLogFile string) error {
	return fmt.Errorf("%w: both %s and %s given without a primary source", ErrAmbiguousLogSource, logFile, jsonLogFile)
}

func NewEmptyLogError(path string, skipped int) error {
	return fmt.Errorf("%w: %s: no usable records (%d skipped)", ErrEmptyOrMalformedLog, path, skipped)
}

func NewOutOfRangeError(code int) error {
	return fmt.Errorf("%w: %d", ErrOutOfRange, code)
}

func NewSeverityError(token string) error {
	return fmt.Errorf("%w: %q", ErrUnknownSeverity, token)
}

func NewExpressionError(src string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidExpression, src, err)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

func NewConfigNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
}

func NewFieldMissingError(field string) error {
	return fmt.Errorf("%w: %s", ErrFieldMissing, field)
}
