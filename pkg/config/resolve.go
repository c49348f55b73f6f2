// Package config resolves notifier invocation arguments and notifier config files.
// Package config 解析通知器调用参数和通知器配置文件。
package config

import (
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/simbashlog/notify-helper/internal/utils/fileutil"
	snherr "github.com/simbashlog/notify-helper/pkg/errors"
	"github.com/spf13/pflag"
)

// Kind is the declared format of a log source.
// Kind 是日志源声明的格式。
type Kind string

const (
	KindPlain Kind = "log"
	KindJSON  Kind = "json"
)

// Plain line layouts.
const (
	LayoutFields     = "fields"
	LayoutSimbashlog = "simbashlog"
)

// Flag names understood by Resolve.
const (
	FlagLogFile        = "log-file"
	FlagJSONLogFile    = "json-log-file"
	FlagPrimarySource  = "primary-log-source"
	FlagLogFormat      = "log-format"
	FlagMinSeverity    = "min-severity"
	FlagPID            = "pid"
	FlagLogLevel       = "log-level"
	FlagMessage        = "message"
	FlagDryRun         = "dry-run"
	FlagNoSummary      = "no-summary"
	FlagRequireSummary = "require-summary"
	FlagVerbose        = "verbose"
)

// LogSource is a readable log file together with its declared kind.
type LogSource struct {
	Path string
	Kind Kind
}

// Config is the validated form of the invocation arguments.
// It is a value object; Resolve never mutates global state.
// Config 是调用参数校验后的形式。
type Config struct {
	LogFile       string `flag:"log-file"`
	JSONLogFile   string `flag:"json-log-file"`
	PrimarySource Kind   `flag:"primary-log-source" validate:"omitempty,oneof=log json"`
	LogFormat     string `flag:"log-format" validate:"oneof=fields simbashlog"`

	// Sources lists the declared sources, primary first.
	Sources []LogSource `flag:"-"`

	MinSeverity *int    `flag:"min-severity" validate:"omitempty,min=0,max=7"`
	PID         *int    `flag:"pid"`
	LogLevel    *int    `flag:"log-level" validate:"omitempty,min=0,max=7"`
	Message     *string `flag:"message"`

	DryRun         bool `flag:"dry-run"`
	NoSummary      bool `flag:"no-summary"`
	RequireSummary bool `flag:"require-summary"`
	Verbose        bool `flag:"verbose"`

	Display DisplayPrefs `flag:"-"`

	// Positional holds arguments left over after flag parsing.
	Positional []string `flag:"-"`
}

// Primary returns the source parsed first. ok is false when no source is set.
func (c *Config) Primary() (LogSource, bool) {
	if c == nil || len(c.Sources) == 0 {
		return LogSource{}, false
	}
	return c.Sources[0], true
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("flag"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Resolve parses argv (without the program name) into a Config.
// Unknown flags are ignored so newer orchestrators can pass extra flags.
// Resolve 将 argv（不含程序名）解析为 Config，未知标志会被忽略。
func Resolve(argv []string) (*Config, error) {
	fs := pflag.NewFlagSet("simbashlog-notifier", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true

	cfg := &Config{}
	var primary string
	var minSeverity, pid, logLevel int
	var message string

	fs.StringVar(&cfg.LogFile, FlagLogFile, "", "The created *.log file.")
	fs.StringVar(&cfg.JSONLogFile, FlagJSONLogFile, "", "The created *_log.json file.")
	fs.StringVar(&primary, FlagPrimarySource, "", "Source to parse first when both files are given (log|json).")
	fs.StringVar(&cfg.LogFormat, FlagLogFormat, LayoutFields, "Layout of plain log lines (fields|simbashlog).")
	fs.IntVar(&minSeverity, FlagMinSeverity, 0, "Minimum severity level (0-7) forwarded to the notifier.")
	fs.IntVar(&pid, FlagPID, 0, "The used process ID.")
	fs.IntVar(&logLevel, FlagLogLevel, 0, "The used log level / severity number.")
	fs.StringVar(&message, FlagMessage, "", "The logged message.")
	fs.BoolVar(&cfg.DryRun, FlagDryRun, false, "Resolve only, do not read log content.")
	fs.BoolVar(&cfg.NoSummary, FlagNoSummary, false, "Skip the per-pid summary.")
	fs.BoolVar(&cfg.RequireSummary, FlagRequireSummary, false, "Fail the summary when the log table is empty.")
	fs.BoolVarP(&cfg.Verbose, FlagVerbose, "v", false, "Verbose output for the notifier.")
	fs.BoolP("help", "h", false, "")
	cfg.Display.bind(fs)

	if err := fs.Parse(argv); err != nil {
		return nil, snherr.NewConfigError("argv", err)
	}

	cfg.PrimarySource = Kind(primary)
	cfg.Positional = fs.Args()
	if fs.Changed(FlagMinSeverity) {
		cfg.MinSeverity = &minSeverity
	}
	if fs.Changed(FlagPID) {
		cfg.PID = &pid
	}
	if fs.Changed(FlagLogLevel) {
		cfg.LogLevel = &logLevel
	}
	if fs.Changed(FlagMessage) {
		cfg.Message = &message
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, snherr.NewConfigError(verrs[0].Field(), verrs[0].Value())
		}
		return nil, snherr.NewConfigError("config", err)
	}

	sources, err := resolveSources(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

func resolveSources(cfg *Config) ([]LogSource, error) {
	var declared []LogSource
	if cfg.LogFile != "" {
		declared = append(declared, LogSource{Path: cfg.LogFile, Kind: KindPlain})
	}
	if cfg.JSONLogFile != "" {
		declared = append(declared, LogSource{Path: cfg.JSONLogFile, Kind: KindJSON})
	}
	if len(declared) == 0 {
		return nil, snherr.ErrNoLogSource
	}

	for _, src := range declared {
		if err := fileutil.CheckReadable(src.Path); err != nil {
			return nil, snherr.NewUnreadableFileError(src.Path, err)
		}
	}

	if len(declared) == 2 {
		switch cfg.PrimarySource {
		case KindJSON:
			declared[0], declared[1] = declared[1], declared[0]
		case KindPlain:
		default:
			return nil, snherr.NewAmbiguousSourceError(cfg.LogFile, cfg.JSONLogFile)
		}
	}
	return declared, nil
}
