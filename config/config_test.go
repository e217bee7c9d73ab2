package config

import (
	"testing"
	"time"

	"github.com/poiesic/summarit/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/v1", cfg.LLMHost)
	assert.Equal(t, "llama3.1:8b", cfg.LLMModel)
	assert.Empty(t, cfg.APIKey)
	assert.InDelta(t, 0.3, cfg.Temperature, 1e-9)
	assert.Equal(t, "whisper-1", cfg.TranscribeModel)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Zero(t, cfg.CallTimeout)
	assert.False(t, cfg.HaltOnError)
	assert.Zero(t, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, 4000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.Equal(t, pipeline.ErrorPolicyContinue, cfg.ErrorPolicy())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"SUMMARIT_LLM_HOST":        "https://api.groq.com/openai/v1",
		"SUMMARIT_LLM_MODEL":       "llama-3.1-8b-instant",
		"SUMMARIT_API_KEY":         "secret",
		"SUMMARIT_MAX_CONCURRENCY": "8",
		"SUMMARIT_CALL_TIMEOUT":    "45s",
		"SUMMARIT_HALT_ON_ERROR":   "true",
		"SUMMARIT_MAX_RETRIES":     "2",
		"SUMMARIT_RETRY_DELAY":     "250ms",
	})
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, 45*time.Second, cfg.CallTimeout)
	assert.Equal(t, pipeline.ErrorPolicyHalt, cfg.ErrorPolicy())

	aiCfg := cfg.AIConfig()
	require.NoError(t, aiCfg.Validate())
	assert.Equal(t, "https://api.groq.com/openai/v1", aiCfg.GenerationHost)
	assert.Equal(t, "llama-3.1-8b-instant", aiCfg.GenerationModel)
	assert.Equal(t, "secret", aiCfg.Token())
	assert.Equal(t, 3, aiCfg.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, aiCfg.RetryDelay)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "unparseable int", vars: map[string]string{"SUMMARIT_MAX_CONCURRENCY": "many"}},
		{name: "unparseable duration", vars: map[string]string{"SUMMARIT_CALL_TIMEOUT": "soon"}},
		{name: "zero concurrency", vars: map[string]string{"SUMMARIT_MAX_CONCURRENCY": "0"}},
		{name: "negative retries", vars: map[string]string{"SUMMARIT_MAX_RETRIES": "-1"}},
		{name: "overlap too large", vars: map[string]string{"SUMMARIT_CHUNK_SIZE": "100", "SUMMARIT_CHUNK_OVERLAP": "100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.vars)
			assert.Error(t, err)
		})
	}
}
