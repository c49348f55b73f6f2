package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/simbashlog/notify-helper/internal/utils/fileutil"
	snherr "github.com/simbashlog/notify-helper/pkg/errors"
	"gopkg.in/yaml.v3"
)

const keyMinRequiredLogLevel = "min_required_log_level"

// NotifierConfig is the per-notifier settings file.
// Values may be native YAML/JSON scalars or the quoted strings older notifiers write ("true", "4").
// NotifierConfig 是每个通知器的配置文件。
type NotifierConfig struct {
	MinRequiredLogLevel *int
	Display             DisplayPrefs
	// Extra holds notifier specific keys (API tokens, chat ids, ...).
	Extra map[string]interface{}
}

// LoadNotifierConfig reads a YAML or JSON notifier config. A leading "~" is expanded.
// Every key in required must be present in the file.
// LoadNotifierConfig 读取 YAML 或 JSON 通知器配置。
func LoadNotifierConfig(path string, required ...string) (*NotifierConfig, error) {
	configPath := fileutil.ExpandHome(path)

	data, err := os.ReadFile(configPath) // #nosec G304 // path is chosen by the notifier author
	if err != nil {
		if os.IsNotExist(err) {
			return nil, snherr.NewConfigNotFoundError(configPath)
		}
		return nil, err
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, snherr.NewConfigError("file", fmt.Sprintf("%s: %v", configPath, err))
	}

	for _, key := range required {
		if _, ok := raw[key]; !ok {
			return nil, snherr.NewFieldMissingError(key)
		}
	}

	cfg := &NotifierConfig{Extra: map[string]interface{}{}}
	known := map[string]bool{keyMinRequiredLogLevel: true}
	for _, f := range cfg.Display.fields() {
		known[f.key] = true
		if v, ok := raw[f.key]; ok {
			b, err := asBool(v)
			if err != nil {
				return nil, snherr.NewConfigError(f.key, v)
			}
			*f.ptr = b
		}
	}

	if v, ok := raw[keyMinRequiredLogLevel]; ok && v != nil {
		level, err := asInt(v)
		if err != nil || level < 0 || level > 7 {
			return nil, snherr.NewConfigError(keyMinRequiredLogLevel, v)
		}
		cfg.MinRequiredLogLevel = &level
	}

	for k, v := range raw {
		if !known[k] {
			cfg.Extra[k] = v
		}
	}
	return cfg, nil
}

// ShouldNotify reports whether a message of the given level passes the minimum level.
// A nil level or an unset minimum always passes.
// ShouldNotify 判断给定级别的消息是否满足最低级别要求。
func (c *NotifierConfig) ShouldNotify(level *int) bool {
	if c == nil || c.MinRequiredLogLevel == nil || level == nil {
		return true
	}
	return *level <= *c.MinRequiredLogLevel
}

// String returns the named extra value as text, or "" when absent.
func (c *NotifierConfig) String(key string) string {
	v, ok := c.Extra[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func asBool(v interface{}) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true"), nil
	default:
		return false, fmt.Errorf("not a boolean: %v", v)
	}
}

func asInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case string:
		return strconv.Atoi(strings.TrimSpace(t))
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}
