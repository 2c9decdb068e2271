package config

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/roster-cli/internal/export"
)

// Config holds the full application configuration.
type Config struct {
	Fetch    FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Output   OutputConfig    `yaml:"output" mapstructure:"output"`
	Chambers []ChamberConfig `yaml:"chambers" mapstructure:"chambers"`
	Log      LogConfig       `yaml:"log" mapstructure:"log"`
}

// FetchConfig configures roster page retrieval.
type FetchConfig struct {
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// OutputConfig configures how rosters are written.
type OutputConfig struct {
	// Strict turns an unparsable office-text block into a fatal error
	// instead of a null field plus an issue report entry.
	Strict bool `yaml:"strict" mapstructure:"strict"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.user_agent", "roster-cli/1.0")
	v.SetDefault("fetch.max_body_bytes", 10<<20)
	v.SetDefault("fetch.requests_per_second", 2)
	v.SetDefault("output.strict", false)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	cfg.Chambers = ApplyChamberDefaults(cfg.Chambers)

	return &cfg, nil
}

// Validate checks that the configuration can drive a scrape.
func (c *Config) Validate() error {
	var missing []string

	if c.Fetch.TimeoutSecs <= 0 {
		missing = append(missing, "fetch.timeout_secs must be > 0")
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		missing = append(missing, "fetch.max_body_bytes must be > 0")
	}
	if c.Fetch.RequestsPerSecond <= 0 {
		missing = append(missing, "fetch.requests_per_second must be > 0")
	}
	if len(c.Chambers) == 0 {
		missing = append(missing, "at least one chamber is required")
	}

	seenNames := make(map[string]bool, len(c.Chambers))
	seenOutputs := make(map[string]string, len(c.Chambers))
	for i, ch := range c.Chambers {
		for _, problem := range ch.problems() {
			missing = append(missing, chamberLabel(i, ch)+": "+problem)
		}
		if ch.Name != "" {
			if seenNames[ch.Name] {
				missing = append(missing, "duplicate chamber name "+ch.Name)
			}
			seenNames[ch.Name] = true
		}
		if ch.Output != "" {
			for _, w := range []struct{ path, label string }{
				{filepath.Clean(ch.Output), ch.Name + " output"},
				{filepath.Clean(export.IssuesPath(ch.Output)), ch.Name + " issue report"},
			} {
				if other, ok := seenOutputs[w.path]; ok {
					missing = append(missing, other+" and "+w.label+" both write "+w.path)
				}
				seenOutputs[w.path] = w.label
			}
		}
	}

	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// Chamber returns the configured chamber with the given name.
func (c *Config) Chamber(name string) (ChamberConfig, bool) {
	for _, ch := range c.Chambers {
		if ch.Name == name {
			return ch, true
		}
	}
	return ChamberConfig{}, false
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
