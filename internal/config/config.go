// Package config resolves agent settings from defaults, an optional YAML file,
// the environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/petasbytes/code-agent/internal/provider"
	"github.com/petasbytes/code-agent/internal/runner"
	"github.com/petasbytes/code-agent/internal/telemetry"
)

// ErrMissingAPIKey is returned by Validate when no API key was provided.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY is not set")

// Config holds everything the agent binary needs to start.
type Config struct {
	// APIKey only ever comes from ANTHROPIC_API_KEY.
	APIKey        string `yaml:"-"`
	Model         string `yaml:"model"`
	MaxTokens     int64  `yaml:"max_tokens"`
	MaxToolRounds int    `yaml:"max_tool_rounds"`
	LogLevel      string `yaml:"log_level"`
	// LogFile is empty for stderr.
	LogFile string `yaml:"log_file"`
	// EventsFile is empty when event recording is off.
	EventsFile  string `yaml:"events_file"`
	BaseURL     string `yaml:"base_url"`
	NoColor     bool   `yaml:"no_color"`
	ShowVersion bool   `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Model:         provider.DefaultModel,
		MaxTokens:     provider.DefaultMaxTokens,
		MaxToolRounds: runner.DefaultMaxToolRounds,
		LogLevel:      "warn",
	}
}

// Load builds a Config from args (without the program name) and getenv.
// It returns flag.ErrHelp when -h or -help is given. Validation is skipped
// when -version is set.
func Load(args []string, getenv func(string) string) (Config, error) {
	// First pass only finds -config and rejects bad flags early.
	var scratch Config
	var path string
	if err := newFlagSet(&scratch, &path).Parse(args); err != nil {
		return Config{}, err
	}
	if path == "" {
		path = getenv("AGT_CONFIG")
	}

	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	// Second pass binds flags over the file and environment values.
	if err := newFlagSet(&cfg, &path).Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ShowVersion {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the agent cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive: %d", c.MaxTokens)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// PrintUsage writes the flag reference to w.
func PrintUsage(w io.Writer) {
	cfg := Default()
	var path string
	fs := newFlagSet(&cfg, &path)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func newFlagSet(cfg *Config, path *string) *flag.FlagSet {
	fs := flag.NewFlagSet("agent", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(path, "config", *path, "Path to a YAML config file (env AGT_CONFIG)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "Model ID (env AGT_MODEL)")
	fs.Int64Var(&cfg.MaxTokens, "max-tokens", cfg.MaxTokens, "Maximum tokens per completion (env AGT_MAX_TOKENS)")
	fs.IntVar(&cfg.MaxToolRounds, "max-tool-rounds", cfg.MaxToolRounds, "Tool rounds allowed per input; negative for unbounded (env AGT_MAX_TOOL_ROUNDS)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error (env AGT_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file instead of stderr (env AGT_LOG_FILE)")
	fs.StringVar(&cfg.EventsFile, "events", cfg.EventsFile, "Append JSON turn events to this file (env AGT_EVENTS_FILE)")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Override the API base URL (env ANTHROPIC_BASE_URL)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output (env NO_COLOR)")
	fs.BoolVar(&cfg.ShowVersion, "version", cfg.ShowVersion, "Print the build version and exit")
	return fs
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	cfg.APIKey = getenv("ANTHROPIC_API_KEY")

	if v := getenv("AGT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := getenv("AGT_MAX_TOKENS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("AGT_MAX_TOKENS: %w", err)
		}
		cfg.MaxTokens = n
	}
	if v := getenv("AGT_MAX_TOOL_ROUNDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AGT_MAX_TOOL_ROUNDS: %w", err)
		}
		cfg.MaxToolRounds = n
	}
	if v := getenv("AGT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("AGT_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if getenv("AGT_OBSERVE_JSON") == "1" && cfg.EventsFile == "" {
		cfg.EventsFile = telemetry.DefaultEventsFile
	}
	if v := getenv("AGT_EVENTS_FILE"); v != "" {
		cfg.EventsFile = v
	}
	if v := getenv("ANTHROPIC_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	return nil
}
