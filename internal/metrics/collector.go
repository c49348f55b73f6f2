package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/simbashlog/notify-helper/pkg/notifyhelper"
	"github.com/simbashlog/notify-helper/pkg/severity"
)

// Collector holds the gauges describing one notifier invocation.
// Each Collector owns a private registry so repeated runs never collide.
// Collector 保存描述一次通知器调用的指标，每个实例使用独立的注册表。
type Collector struct {
	registry *prometheus.Registry

	// Log metrics
	Entries      *prometheus.GaugeVec
	LinesSkipped prometheus.Gauge
	UniquePIDs   prometheus.Gauge

	// Run metrics
	ParseSuccess    prometheus.Gauge
	HighestSeverity prometheus.Gauge
	SourceInfo      *prometheus.GaugeVec
}

// NewCollector creates a Collector with its own registry.
// NewCollector 创建带独立注册表的 Collector。
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		Entries: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "simbashlog_log_entries",
				Help: "Number of parsed log entries per severity",
			},
			[]string{"severity"},
		),
		LinesSkipped: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "simbashlog_log_lines_skipped",
				Help: "Number of log lines or sources skipped while parsing",
			},
		),
		UniquePIDs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "simbashlog_log_unique_pids",
				Help: "Number of distinct process ids in the log",
			},
		),
		ParseSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "simbashlog_log_parse_success",
				Help: "1 if the log could be parsed, 0 otherwise",
			},
		),
		HighestSeverity: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "simbashlog_log_highest_severity",
				Help: "Code of the most severe entry in the log, -1 if none",
			},
		),
		SourceInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "simbashlog_log_source_info",
				Help: "Log source that produced the table",
			},
			[]string{"path", "kind", "dry_run"},
		),
	}
}

// Registry exposes the private registry, e.g. for an HTTP handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records the state of info.
// Observe 记录 info 的状态。
func (c *Collector) Observe(info *notifyhelper.StoredLogInfo) {
	if info == nil {
		return
	}
	c.LinesSkipped.Set(float64(len(info.Warnings)))

	dryRun := info.Config != nil && info.Config.DryRun
	if info.Source != nil {
		c.SourceInfo.WithLabelValues(info.Source.Path, string(info.Source.Kind), strconv.FormatBool(dryRun)).Set(1)
	}

	counts, err := info.FileSummary()
	if err != nil {
		if info.Err != nil {
			c.ParseSuccess.Set(0)
		} else {
			c.ParseSuccess.Set(1)
		}
		c.HighestSeverity.Set(-1)
		return
	}

	c.ParseSuccess.Set(1)
	for _, d := range severity.All() {
		c.Entries.WithLabelValues(d.Label).Set(float64(counts[d.Level]))
	}
	if n, err := info.UniquePIDCount(); err == nil {
		c.UniquePIDs.Set(float64(n))
	}
	if lvl, err := info.HighestSeverity(); err == nil {
		c.HighestSeverity.Set(float64(lvl))
	} else {
		c.HighestSeverity.Set(-1)
	}
}

// WriteTextfile writes all gauges in the node_exporter textfile format.
// WriteTextfile 以 node_exporter textfile 格式写出全部指标。
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
