package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dazhuang0717-violet/communicationscorer/internal/score"
)

// Config holds the full application configuration.
type Config struct {
	Reader   ReaderConfig   `yaml:"reader" mapstructure:"reader"`
	Scrape   ScrapeConfig   `yaml:"scrape" mapstructure:"scrape"`
	Gateway  GatewayConfig  `yaml:"gateway" mapstructure:"gateway"`
	Claude   ClaudeConfig   `yaml:"claude" mapstructure:"claude"`
	Judge    JudgeConfig    `yaml:"judge" mapstructure:"judge"`
	Scoring  ScoringConfig  `yaml:"scoring" mapstructure:"scoring"`
	Tiers    TiersConfig    `yaml:"tiers" mapstructure:"tiers"`
	Campaign CampaignConfig `yaml:"campaign" mapstructure:"campaign"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ReaderConfig holds readability proxy settings.
type ReaderConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ScrapeConfig configures the direct page fetch fallback.
type ScrapeConfig struct {
	DirectTimeoutSecs int `yaml:"direct_timeout_secs" mapstructure:"direct_timeout_secs"`
}

// GatewayConfig holds OpenAI-compatible gateway settings.
type GatewayConfig struct {
	Key            string   `yaml:"key" mapstructure:"key"`
	BaseURL        string   `yaml:"base_url" mapstructure:"base_url"`
	Provider       string   `yaml:"provider" mapstructure:"provider"`
	Models         []string `yaml:"models" mapstructure:"models"`
	RequestsPerSec float64  `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// ClaudeConfig holds Anthropic API settings.
type ClaudeConfig struct {
	Key    string   `yaml:"key" mapstructure:"key"`
	Models []string `yaml:"models" mapstructure:"models"`
}

// JudgeConfig selects the LLM backend and pacing behavior.
type JudgeConfig struct {
	Backend            string `yaml:"backend" mapstructure:"backend"`
	RateLimitPauseSecs int    `yaml:"rate_limit_pause_secs" mapstructure:"rate_limit_pause_secs"`
}

// ScoringConfig holds the aggregation weights.
type ScoringConfig struct {
	VolumeQualityWeight     float64 `yaml:"volume_quality_weight" mapstructure:"volume_quality_weight"`
	TierWeight              float64 `yaml:"tier_weight" mapstructure:"tier_weight"`
	KMWeight                float64 `yaml:"km_weight" mapstructure:"km_weight"`
	AudiencePrecisionWeight float64 `yaml:"audience_precision_weight" mapstructure:"audience_precision_weight"`
	TrueDemandWeight        float64 `yaml:"true_demand_weight" mapstructure:"true_demand_weight"`
	AcquisitionWeight       float64 `yaml:"acquisition_weight" mapstructure:"acquisition_weight"`
	VolumeWeight            float64 `yaml:"volume_weight" mapstructure:"volume_weight"`
}

// Weights converts the configured values into scoring weights.
func (c ScoringConfig) Weights() score.Weights {
	return score.Weights{
		VolumeQuality:     c.VolumeQualityWeight,
		Tier:              c.TierWeight,
		KM:                c.KMWeight,
		AudiencePrecision: c.AudiencePrecisionWeight,
		TrueDemand:        c.TrueDemandWeight,
		Acquisition:       c.AcquisitionWeight,
		Volume:            c.VolumeWeight,
	}
}

// TiersConfig holds media tier keyword lists. File, when set, takes
// precedence over the inline comma-separated lists.
type TiersConfig struct {
	File  string `yaml:"file" mapstructure:"file"`
	Tier1 string `yaml:"tier1" mapstructure:"tier1"`
	Tier2 string `yaml:"tier2" mapstructure:"tier2"`
	Tier3 string `yaml:"tier3" mapstructure:"tier3"`
}

// CampaignConfig holds default campaign context for judging.
type CampaignConfig struct {
	KeyMessage         string `yaml:"key_message" mapstructure:"key_message"`
	ProjectDescription string `yaml:"project_description" mapstructure:"project_description"`
	Audience           string `yaml:"audience" mapstructure:"audience"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Credential returns the API key for the configured judge backend.
func (c *Config) Credential() string {
	if c.Judge.Backend == "claude" {
		return c.Claude.Key
	}
	return c.Gateway.Key
}

// Models returns the model candidate list for the configured judge backend.
func (c *Config) Models() []string {
	if c.Judge.Backend == "claude" {
		return c.Claude.Models
	}
	return c.Gateway.Models
}

// Validate checks the configuration for the score command. Credential
// presence is not checked here; a missing key degrades each row to a
// config-error result instead of failing the whole run.
func (c *Config) Validate() error {
	var problems []string

	if c.Judge.Backend != "gateway" && c.Judge.Backend != "claude" {
		problems = append(problems, "judge.backend must be gateway or claude")
	}
	if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 20 {
		problems = append(problems, "batch.concurrency must be between 1 and 20")
	}
	if c.Reader.TimeoutSecs <= 0 {
		problems = append(problems, "reader.timeout_secs must be > 0")
	}
	if c.Scrape.DirectTimeoutSecs <= 0 {
		problems = append(problems, "scrape.direct_timeout_secs must be > 0")
	}
	for _, w := range []float64{
		c.Scoring.VolumeQualityWeight, c.Scoring.TierWeight,
		c.Scoring.KMWeight, c.Scoring.AudiencePrecisionWeight,
		c.Scoring.TrueDemandWeight, c.Scoring.AcquisitionWeight,
		c.Scoring.VolumeWeight,
	} {
		if w < 0 {
			problems = append(problems, "scoring weights must be >= 0")
			break
		}
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMMSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("reader.base_url", "https://r.jina.ai")
	v.SetDefault("reader.timeout_secs", 8)
	v.SetDefault("scrape.direct_timeout_secs", 10)
	v.SetDefault("gateway.base_url", "https://generativelanguage.googleapis.com/v1beta/openai")
	v.SetDefault("gateway.requests_per_sec", 1.0)
	v.SetDefault("gateway.models", []string{
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
		"gemini-2.0-flash",
	})
	v.SetDefault("claude.models", []string{
		"claude-sonnet-4-5-20250929",
		"claude-haiku-4-5-20251001",
	})
	v.SetDefault("judge.backend", "gateway")
	v.SetDefault("judge.rate_limit_pause_secs", 2)
	v.SetDefault("scoring.volume_quality_weight", 0.6)
	v.SetDefault("scoring.tier_weight", 0.4)
	v.SetDefault("scoring.km_weight", 0.6)
	v.SetDefault("scoring.audience_precision_weight", 0.4)
	v.SetDefault("scoring.true_demand_weight", 0.5)
	v.SetDefault("scoring.acquisition_weight", 0.2)
	v.SetDefault("scoring.volume_weight", 0.3)
	v.SetDefault("campaign.audience", "general")
	v.SetDefault("batch.concurrency", 1)
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
