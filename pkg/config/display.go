package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// DisplayPrefs are the notifier's rendering switches.
// They are forwarded as given and never interpreted by this module.
// DisplayPrefs 是通知器的显示开关，原样转发，不做解释。
type DisplayPrefs struct {
	ShowInConsoleSentMessage    bool `yaml:"show_in_console_sent_message"`
	ShowInHeaderPID             bool `yaml:"show_in_header_pid"`
	ShowInBodyLogFileResult     bool `yaml:"show_in_body_log_file_result"`
	ShowInBodyLogFileContent    bool `yaml:"show_in_body_log_file_content"`
	ShowInBodySummaryForPID     bool `yaml:"show_in_body_summary_for_pid"`
	ShowInBodySummaryForLogFile bool `yaml:"show_in_body_summary_for_log_file"`
	ShowInFooterLogFileNames    bool `yaml:"show_in_footer_log_file_names"`
	ShowInFooterHost            bool `yaml:"show_in_footer_host"`
	ShowInFooterNotifierName    bool `yaml:"show_in_footer_notifier_name"`
}

// fields pairs each config key with its switch. Flag names use dashes instead of underscores.
func (d *DisplayPrefs) fields() []struct {
	key string
	ptr *bool
} {
	return []struct {
		key string
		ptr *bool
	}{
		{"show_in_console_sent_message", &d.ShowInConsoleSentMessage},
		{"show_in_header_pid", &d.ShowInHeaderPID},
		{"show_in_body_log_file_result", &d.ShowInBodyLogFileResult},
		{"show_in_body_log_file_content", &d.ShowInBodyLogFileContent},
		{"show_in_body_summary_for_pid", &d.ShowInBodySummaryForPID},
		{"show_in_body_summary_for_log_file", &d.ShowInBodySummaryForLogFile},
		{"show_in_footer_log_file_names", &d.ShowInFooterLogFileNames},
		{"show_in_footer_host", &d.ShowInFooterHost},
		{"show_in_footer_notifier_name", &d.ShowInFooterNotifierName},
	}
}

func (d *DisplayPrefs) bind(fs *pflag.FlagSet) {
	for _, f := range d.fields() {
		fs.BoolVar(f.ptr, flagName(f.key), false, "Display preference forwarded to the notifier.")
	}
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
