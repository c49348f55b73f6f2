package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/simbashlog/notify-helper/internal/metrics"
	"github.com/simbashlog/notify-helper/internal/utils/logger"
	"github.com/simbashlog/notify-helper/pkg/config"
	"github.com/simbashlog/notify-helper/pkg/notifyhelper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cliOptions are the flags owned by snh itself. Everything else is passed
// untouched to the notifier argument resolver.
// cliOptions 是 snh 自身的标志，其余参数原样交给通知器参数解析。
type cliOptions struct {
	MetricsTextfile string
	NotifierConfig  string
	LogFile         string
	Debug           bool
	Help            bool
}

func parseCLIOptions(args []string) cliOptions {
	var opts cliOptions
	fs := pflag.NewFlagSet("snh", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "")
	fs.StringVar(&opts.NotifierConfig, "notifier-config", "", "")
	fs.StringVar(&opts.LogFile, "snh-log-file", "", "")
	fs.BoolVar(&opts.Debug, "snh-debug", false, "")
	fs.BoolVarP(&opts.Help, "help", "h", false, "")
	// Values of unknown flags are skipped by pflag, errors here only concern our own flags.
	_ = fs.Parse(args)
	return opts
}

var RootCmd = &cobra.Command{
	Use:   "snh [notifier arguments]",
	Short: "Inspect the log data a simbashlog notifier would receive",
	// Short: 查看 simbashlog 通知器将接收到的日志数据
	Long: `snh resolves the arguments simbashlog passes to a notifier, parses the
referenced log file and prints the resulting log table and per-pid summary.
snh 解析 simbashlog 传给通知器的参数，读取日志文件并打印日志表和按 pid 汇总。

snh flags (all other flags go to the notifier resolver):
  --metrics-textfile <path>   write run metrics in node_exporter textfile format
  --notifier-config <path>    apply min_required_log_level from a notifier config
  --snh-log-file <path>       write diagnostics to a rotated file instead of stderr
  --snh-debug                 debug diagnostics

Examples:
  snh --log-file /var/log/backup.log --pid 123 --log-level 3 --message "disk full"
  snh --json-log-file /var/log/backup_log.json --metrics-textfile /var/lib/node_exporter/snh.prom`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		opts := parseCLIOptions(args)

		cfg := logger.LoggingConfig{Enabled: true, Level: "warn", Path: opts.LogFile}
		if opts.Debug {
			cfg.Level = "debug"
		}
		logger.Init(cfg)

		// Inject logger into context
		// 将 Logger 注入 Context
		ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
		cmd.SetContext(ctx)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := parseCLIOptions(args)
		if opts.Help {
			return cmd.Help()
		}
		return runNotify(cmd, args, opts)
	},
}

func runNotify(cmd *cobra.Command, args []string, opts cliOptions) error {
	log := logger.Get(cmd.Context())
	defer logger.Sync()

	info, err := notifyhelper.ProcessArguments(cmd.Context(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, info.String())

	if opts.NotifierConfig != "" {
		nc, err := config.LoadNotifierConfig(opts.NotifierConfig)
		if err != nil {
			return err
		}
		decision := "yes"
		if !nc.ShouldNotify(info.Config.LogLevel) {
			decision = "no"
		}
		fmt.Fprintf(out, "\nNotify: %s\n", decision)
	}

	if opts.MetricsTextfile != "" {
		c := metrics.NewCollector()
		c.Observe(info)
		if err := c.WriteTextfile(opts.MetricsTextfile); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
		log.Debugf("[SNH] Metrics written to %s", opts.MetricsTextfile)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(severitiesCmd)

	// Completion is not useful for a pass-through command
	// 透传命令不需要补全
	RootCmd.CompletionOptions.DisableDefaultCmd = true
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
