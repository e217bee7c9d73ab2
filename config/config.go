// Package config loads runtime settings for the summarit command from the
// environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/poiesic/summarit/ai"
	"github.com/poiesic/summarit/pipeline"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SUMMARIT_"

// Config holds the settings read from SUMMARIT_* variables.
type Config struct {
	LLMHost         string        `env:"LLM_HOST"         envDefault:"http://localhost:11434/v1"`
	LLMModel        string        `env:"LLM_MODEL"        envDefault:"llama3.1:8b"`
	APIKey          string        `env:"API_KEY"`
	Temperature     float64       `env:"TEMPERATURE"      envDefault:"0.3"`
	TranscribeHost  string        `env:"TRANSCRIBE_HOST"  envDefault:"https://api.openai.com/v1"`
	TranscribeModel string        `env:"TRANSCRIBE_MODEL" envDefault:"whisper-1"`
	MaxConcurrency  int           `env:"MAX_CONCURRENCY"  envDefault:"4"`
	CallTimeout     time.Duration `env:"CALL_TIMEOUT"     envDefault:"0s"`
	HaltOnError     bool          `env:"HALT_ON_ERROR"    envDefault:"false"`
	MaxRetries      int           `env:"MAX_RETRIES"      envDefault:"0"`
	RetryDelay      time.Duration `env:"RETRY_DELAY"      envDefault:"1s"`
	ChunkSize       int           `env:"CHUNK_SIZE"       envDefault:"4000"`
	ChunkOverlap    int           `env:"CHUNK_OVERLAP"    envDefault:"200"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Options{Prefix: Prefix})
}

// LoadFrom reads the configuration from vars instead of the process
// environment. Keys include the prefix.
func LoadFrom(vars map[string]string) (*Config, error) {
	return load(env.Options{Prefix: Prefix, Environment: vars})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that the downstream constructors would reject
// less clearly.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxConcurrency < 1 {
		errs = append(errs, fmt.Errorf("%sMAX_CONCURRENCY must be at least 1, got %d", Prefix, c.MaxConcurrency))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%sMAX_RETRIES cannot be negative, got %d", Prefix, c.MaxRetries))
	}
	if c.CallTimeout < 0 {
		errs = append(errs, fmt.Errorf("%sCALL_TIMEOUT cannot be negative, got %s", Prefix, c.CallTimeout))
	}
	if c.ChunkSize < 1 {
		errs = append(errs, fmt.Errorf("%sCHUNK_SIZE must be positive, got %d", Prefix, c.ChunkSize))
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		errs = append(errs, fmt.Errorf("%sCHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", Prefix, c.ChunkOverlap))
	}
	return errors.Join(errs...)
}

// AIConfig converts the settings into an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithGenerationHost(c.LLMHost),
		ai.WithGenerationModel(c.LLMModel),
		ai.WithTranscriptionHost(c.TranscribeHost),
		ai.WithTranscriptionModel(c.TranscribeModel),
		ai.WithAPIKey(c.APIKey),
		ai.WithTemperature(c.Temperature),
		ai.WithRetries(c.MaxRetries+1, c.RetryDelay),
	)
}

// ErrorPolicy returns the pipeline policy selected by HALT_ON_ERROR.
func (c *Config) ErrorPolicy() pipeline.ErrorPolicy {
	if c.HaltOnError {
		return pipeline.ErrorPolicyHalt
	}
	return pipeline.ErrorPolicyContinue
}
