package config

import (
	"fmt"
	"time"
)

type Config struct {
	StartURL      string              `yaml:"start_url"`
	SelectorsFile string              `yaml:"selectors_file"`
	Rod           RodConfig           `yaml:"rod"`
	Backoff       BackoffConfig       `yaml:"backoff"`
	Routes        RoutesConfig        `yaml:"routes"`
	Completion    CompletionConfig    `yaml:"completion"`
	ReturnButton  PollConfig          `yaml:"return_button"`
	Unfinished    UnfinishedConfig    `yaml:"unfinished"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type RodConfig struct {
	ChromePath      string `yaml:"chrome_path"`
	RemoteURL       string `yaml:"remote_url"`
	Headless        bool   `yaml:"headless"`
	Stealth         bool   `yaml:"stealth"`
	UserDataDir     string `yaml:"user_data_dir"`
	PageTimeoutS    int    `yaml:"page_timeout_s"`
	NavigateRetries int    `yaml:"navigate_retries"`
}

type BackoffConfig struct {
	MinMS     int `yaml:"min_ms"`
	MaxMS     int `yaml:"max_ms"`
	JitterPct int `yaml:"jitter_pct"`
}

// RoutesConfig holds the URL prefixes that activate each handler.
type RoutesConfig struct {
	CompletionPrefix string `yaml:"completion_prefix"`
	CommentPrefix    string `yaml:"comment_prefix"`
	CoursePrefix     string `yaml:"course_prefix"`
}

type CompletionConfig struct {
	DelayMS  int    `yaml:"delay_ms"`
	Function string `yaml:"function"`
}

type PollConfig struct {
	IntervalMS  int `yaml:"interval_ms"`
	MaxAttempts int `yaml:"max_attempts"`
}

type UnfinishedConfig struct {
	Enabled    bool `yaml:"enabled"`
	PollConfig `yaml:",inline"`
}

type ObservabilityConfig struct {
	LogPath    string `yaml:"log_path"`
	LogLevel   string `yaml:"log_level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default возвращает конфигурацию с константами оригинального скрипта.
func Default() *Config {
	return &Config{
		StartURL: "https://weiban.mycourse.cn/#/",
		Rod: RodConfig{
			Headless:        false,
			Stealth:         true,
			UserDataDir:     ".weban-profile",
			PageTimeoutS:    30,
			NavigateRetries: 3,
		},
		Backoff: BackoffConfig{
			MinMS:     500,
			MaxMS:     5000,
			JitterPct: 20,
		},
		Routes: RoutesConfig{
			CompletionPrefix: "https://mcwk.mycourse.cn",
			CommentPrefix:    "https://weiban.mycourse.cn/#/wk/comment",
			CoursePrefix:     "https://weiban.mycourse.cn/#/course",
		},
		Completion: CompletionConfig{
			DelayMS:  13000,
			Function: "finishWxCourse",
		},
		ReturnButton: PollConfig{
			IntervalMS:  500,
			MaxAttempts: 10,
		},
		Unfinished: UnfinishedConfig{
			Enabled: false,
			PollConfig: PollConfig{
				IntervalMS:  800,
				MaxAttempts: 15,
			},
		},
		Observability: ObservabilityConfig{
			LogPath:    "weban.log",
			LogLevel:   "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 1,
		},
	}
}

// Validation
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return fmt.Errorf("start_url is required")
	}
	if c.Rod.PageTimeoutS <= 0 {
		return fmt.Errorf("rod.page_timeout_s must be > 0")
	}
	if c.Rod.NavigateRetries < 0 {
		return fmt.Errorf("rod.navigate_retries must be >= 0")
	}
	if c.Backoff.MinMS <= 0 {
		return fmt.Errorf("backoff.min_ms must be > 0")
	}
	if c.Backoff.MaxMS <= 0 {
		return fmt.Errorf("backoff.max_ms must be > 0")
	}
	if c.Backoff.MinMS > c.Backoff.MaxMS {
		return fmt.Errorf("backoff.min_ms must be <= backoff.max_ms")
	}
	if c.Backoff.JitterPct < 0 || c.Backoff.JitterPct > 100 {
		return fmt.Errorf("backoff.jitter_pct must be between 0 and 100")
	}
	if c.Routes.CompletionPrefix == "" || c.Routes.CommentPrefix == "" || c.Routes.CoursePrefix == "" {
		return fmt.Errorf("routes.completion_prefix, routes.comment_prefix and routes.course_prefix are required")
	}
	if c.Completion.DelayMS < 0 {
		return fmt.Errorf("completion.delay_ms must be >= 0")
	}
	if c.Completion.Function == "" {
		return fmt.Errorf("completion.function is required")
	}
	if err := c.ReturnButton.validate("return_button"); err != nil {
		return err
	}
	if err := c.Unfinished.validate("unfinished"); err != nil {
		return err
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("observability.log_level must be one of debug, info, warn, error")
	}
	if c.Observability.LogPath != "" && c.Observability.MaxSizeMB <= 0 {
		return fmt.Errorf("observability.max_size_mb must be > 0 when log_path is set")
	}
	return nil
}

func (p PollConfig) validate(section string) error {
	if p.IntervalMS <= 0 {
		return fmt.Errorf("%s.interval_ms must be > 0", section)
	}
	if p.MaxAttempts <= 0 {
		return fmt.Errorf("%s.max_attempts must be > 0", section)
	}
	return nil
}

// Getters
func (c *Config) GetBackoffMin() time.Duration {
	return time.Duration(c.Backoff.MinMS) * time.Millisecond
}

func (c *Config) GetBackoffMax() time.Duration {
	return time.Duration(c.Backoff.MaxMS) * time.Millisecond
}

func (c *Config) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}

func (c *Config) GetCompletionDelay() time.Duration {
	return time.Duration(c.Completion.DelayMS) * time.Millisecond
}

func (p PollConfig) GetInterval() time.Duration {
	return time.Duration(p.IntervalMS) * time.Millisecond
}
