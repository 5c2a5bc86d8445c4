// Package config loads application configuration from file and environment.
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
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	Fetch      FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Input      InputConfig      `yaml:"input" mapstructure:"input"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Match      MatchConfig      `yaml:"match" mapstructure:"match"`
	Careers    CareersConfig    `yaml:"careers" mapstructure:"careers"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings for the extraction oracle.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	Model       string `yaml:"model" mapstructure:"model"`
	MaxTokens   int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// PerplexityConfig holds Perplexity API settings for search-grounded queries.
type PerplexityConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Model       string `yaml:"model" mapstructure:"model"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// FetchConfig configures the job page fetcher.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	HostRate    float64 `yaml:"host_rate" mapstructure:"host_rate"`
	MaxBodyKB   int     `yaml:"max_body_kb" mapstructure:"max_body_kb"`
}

// InputConfig configures the identifier source file.
type InputConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// OutputConfig configures the report output. An empty file name means a
// timestamped default is generated at export time.
type OutputConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// MatchConfig holds the job-match preferences injected into extraction prompts.
type MatchConfig struct {
	PreferredLocations  []string `yaml:"preferred_locations" mapstructure:"preferred_locations" json:"preferred_locations"`
	PreferredExperience string   `yaml:"preferred_experience" mapstructure:"preferred_experience" json:"preferred_experience"`
	PreferredSkills     []string `yaml:"preferred_skills" mapstructure:"preferred_skills" json:"preferred_skills"`
	JobType             string   `yaml:"job_type" mapstructure:"job_type" json:"job_type"`
}

// CareersConfig configures the career-page finder command.
type CareersConfig struct {
	InputFile  string `yaml:"input_file" mapstructure:"input_file"`
	OutputFile string `yaml:"output_file" mapstructure:"output_file"`
}

// PipelineConfig configures driver behavior. Concurrency 1 processes
// identifiers strictly in sequence; higher values run whole identifiers in
// parallel while output order is preserved.
type PipelineConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
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
	v.SetEnvPrefix("JOBSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	// Empty key defaults register the keys with viper so the JOBSCOUT_
	// env overrides survive Unmarshal.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("perplexity.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("anthropic.timeout_secs", 60)
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("perplexity.model", "sonar-pro")
	v.SetDefault("perplexity.timeout_secs", 60)
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; JobScoutBot/1.0)")
	v.SetDefault("fetch.host_rate", 2)
	v.SetDefault("fetch.max_body_kb", 512)
	v.SetDefault("input.file", "job_links.txt")
	v.SetDefault("output.file", "")
	v.SetDefault("match.preferred_locations", []string{"Bangalore", "Remote", "Hybrid"})
	v.SetDefault("match.preferred_experience", "2-5 years")
	v.SetDefault("match.preferred_skills", []string{"Python", "AI", "Backend"})
	v.SetDefault("match.job_type", "Full-time")
	v.SetDefault("careers.input_file", "company_list.txt")
	v.SetDefault("careers.output_file", "career_pages.txt")
	v.SetDefault("pipeline.concurrency", 1)

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
