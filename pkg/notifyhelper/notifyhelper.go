// Package notifyhelper is the entry point for simbashlog notifiers: it turns the
// orchestrator's arguments into a StoredLogInfo.
// Package notifyhelper 是 simbashlog 通知器的入口：将编排器参数转换为 StoredLogInfo。
package notifyhelper

import (
	"context"
	"fmt"

	"github.com/simbashlog/notify-helper/internal/utils/logger"
	"github.com/simbashlog/notify-helper/pkg/config"
	snherr "github.com/simbashlog/notify-helper/pkg/errors"
	"github.com/simbashlog/notify-helper/pkg/logdata"
	"github.com/simbashlog/notify-helper/pkg/summary"
)

// StoredLogInfo holds everything a notifier needs from one invocation.
// Table is nil when no log content was read (dry run or parse failure); Summary is
// nil when summarizing was disabled or failed. Err carries the parse or summary
// failure so the notifier can still report "log unavailable".
// StoredLogInfo 保存一次调用中通知器所需的全部信息。
type StoredLogInfo struct {
	Config   *config.Config
	Source   *config.LogSource // source that produced Table
	Table    *logdata.Table
	Summary  *summary.Table
	Warnings []logdata.Warning
	Err      error
}

// ProcessArguments resolves argv (without the program name), parses the referenced
// log and summarizes it. Only resolution errors are returned; later failures are
// recorded on the result.
// ProcessArguments 解析 argv、读取日志并生成汇总。仅返回参数解析错误。
func ProcessArguments(ctx context.Context, argv []string) (*StoredLogInfo, error) {
	log := logger.Get(ctx)

	cfg, err := config.Resolve(argv)
	if err != nil {
		return nil, err
	}
	info := &StoredLogInfo{Config: cfg}

	if cfg.DryRun {
		log.Debugf("[SNH] Dry run, log content not read (sources: %v)", cfg.Sources)
		return info, nil
	}

	src, res, warnings, err := parseSources(ctx, cfg)
	info.Warnings = warnings
	if err != nil {
		log.Warnf("⚠️  Log unavailable: %v", err)
		info.Err = err
		return info, nil
	}
	info.Source = &src
	info.Warnings = append(info.Warnings, res.Warnings...)
	for _, w := range res.Warnings {
		log.Debugf("[SNH] Skipped %s", w)
	}

	info.Table = logdata.Project(res.Records)
	log.Debugf("[SNH] Parsed %d records from %s (%d skipped)", info.Table.Len(), src.Path, len(res.Warnings))

	if cfg.NoSummary {
		return info, nil
	}
	sum, err := summary.Summarize(info.Table, cfg.RequireSummary)
	if err != nil {
		log.Warnf("⚠️  Summary unavailable: %v", err)
		info.Err = err
		return info, nil
	}
	info.Summary = sum
	return info, nil
}

// parseSources parses the primary source and falls back to the secondary one when
// the primary cannot be used. The primary's failure is kept as a warning.
func parseSources(ctx context.Context, cfg *config.Config) (config.LogSource, *logdata.Result, []logdata.Warning, error) {
	log := logger.Get(ctx)

	var warnings []logdata.Warning
	var firstErr error
	for _, src := range cfg.Sources {
		parser, err := logdata.NewParser(src.Kind, cfg.LogFormat)
		if err == nil {
			var res *logdata.Result
			res, err = parser.Parse(src.Path)
			if err == nil {
				return src, res, warnings, nil
			}
		}
		if firstErr == nil {
			firstErr = err
		}
		log.Debugf("[SNH] %s source %s failed: %v", src.Kind, src.Path, err)
		warnings = append(warnings, logdata.Warning{
			Source: src.Path,
			Reason: fmt.Sprintf("source not usable: %v", err),
		})
	}
	if firstErr == nil {
		firstErr = snherr.ErrNoLogSource
	}
	return config.LogSource{}, nil, warnings, firstErr
}
