package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	AWS    AWSConfig    `yaml:"aws" mapstructure:"aws"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Docs   DocsConfig   `yaml:"docs" mapstructure:"docs"`
	RunLog RunLogConfig `yaml:"runlog" mapstructure:"runlog"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// AWSConfig configures access to the Bedrock service.
type AWSConfig struct {
	Profile     string `yaml:"profile" mapstructure:"profile"`
	HomeRegion  string `yaml:"home_region" mapstructure:"home_region"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// OutputConfig configures where catalog documents are written.
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	ReadmePath string `yaml:"readme_path" mapstructure:"readme_path"`
}

// DocsConfig configures the public documentation snapshot.
type DocsConfig struct {
	URL          string `yaml:"url" mapstructure:"url"`
	SnapshotPath string `yaml:"snapshot_path" mapstructure:"snapshot_path"`
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
}

// RunLogConfig configures the local refresh run history.
type RunLogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the catalog API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("BEDROCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("aws.profile", "default")
	v.SetDefault("aws.home_region", "us-east-1")
	v.SetDefault("aws.concurrency", 4)
	v.SetDefault("output.dir", "data")
	v.SetDefault("output.readme_path", "README.md")
	v.SetDefault("docs.url", "https://docs.aws.amazon.com/bedrock/latest/userguide/models-regions.html")
	v.SetDefault("docs.snapshot_path", "temp/bedrock-models-regions.html")
	v.SetDefault("docs.user_agent", "bedrock-catalog/1.0")
	v.SetDefault("runlog.path", "data/runs.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

	return &cfg, nil
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
