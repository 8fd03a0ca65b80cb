package llm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envBaseURL, envModel, envAPIKey, envTimeout, envMode} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearLLMEnv(t)

	t.Run("load from valid file", func(t *testing.T) {
		content := `
base_url: "http://ollama.internal:11434/"
model: "llama3:8b"
mode: "chat"
timeout: "30s"
log_level: "debug"
`
		configPath := filepath.Join(t.TempDir(), "llm.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

		cfg, err := LoadConfig(configPath)
		require.NoError(t, err)
		require.Equal(t, "http://ollama.internal:11434", cfg.BaseURL)
		require.Equal(t, "llama3:8b", cfg.Model)
		require.Equal(t, ModeChat, cfg.Mode)
		require.Equal(t, 30*time.Second, cfg.Timeout)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/llm.yaml")
		require.Error(t, err)
		require.Contains(t, err.Error(), "open llm config")
	})
}

func TestLoadConfigFromReaderDefaults(t *testing.T) {
	clearLLMEnv(t)

	cfg, err := LoadConfigFromReader(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, cfg.BaseURL)
	require.Equal(t, defaultModel, cfg.Model)
	require.Equal(t, ModeGenerate, cfg.Mode)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)
	require.Zero(t, cfg.Timeout)
	require.Empty(t, cfg.APIKey)
}

func TestLoadConfigFromReaderEnvOverrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv(envBaseURL, "gpu-box:11434")
	t.Setenv(envModel, "mistral:7b")
	t.Setenv(envTimeout, "45s")
	t.Setenv(envMode, "CHAT")
	t.Setenv("LLM_TEST_KEY", "expanded")

	cfg, err := LoadConfigFromReader(strings.NewReader(`
base_url: "http://localhost:11434"
model: "llama3:8b"
api_key: "${LLM_TEST_KEY}"
timeout: "10s"
`))
	require.NoError(t, err)
	require.Equal(t, "http://gpu-box:11434", cfg.BaseURL)
	require.Equal(t, "mistral:7b", cfg.Model)
	require.Equal(t, "expanded", cfg.APIKey)
	require.Equal(t, 45*time.Second, cfg.Timeout)
	require.Equal(t, ModeChat, cfg.Mode)
}

func TestLoadConfigFromReaderErrors(t *testing.T) {
	clearLLMEnv(t)

	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"invalid yaml", "base_url: [unclosed", "unmarshal llm config"},
		{"bad timeout", `timeout: "soon"`, "invalid timeout"},
		{"zero timeout", `timeout: "0s"`, "timeout must be positive"},
		{"unknown mode", `mode: "stream"`, "mode must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tt.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := &Config{BaseURL: "http://localhost:11434", Model: "llama3:8b", Mode: ModeGenerate}
	require.NoError(t, valid.Validate())

	missingModel := valid.Clone()
	missingModel.Model = " "
	require.ErrorContains(t, missingModel.Validate(), "model is required")

	missingURL := valid.Clone()
	missingURL.BaseURL = ""
	require.ErrorContains(t, missingURL.Validate(), "base_url is required")

	negative := valid.Clone()
	negative.Timeout = -time.Second
	require.ErrorContains(t, negative.Validate(), "cannot be negative")
}

func TestDefaultConfig(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv(envModel, "phi3")

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "phi3", cfg.Model)
	require.Equal(t, defaultBaseURL, cfg.BaseURL)
}

func TestConfigCloneIsIndependent(t *testing.T) {
	var nilCfg *Config
	require.Nil(t, nilCfg.Clone())

	cfg := &Config{BaseURL: "http://a", Model: "m", Mode: ModeChat}
	cp := cfg.Clone()
	cp.Model = "other"
	require.Equal(t, "m", cfg.Model)
}
