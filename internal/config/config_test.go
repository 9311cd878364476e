package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"data_dir": "/var/lib/resumes",
		"correction_provider": "none",
		"correction_concurrency": 8,
		"gradient": "off",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/var/lib/resumes", cfg.DataDir)
	assert.Equal(t, "none", cfg.CorrectionProvider)
	assert.Equal(t, 8, cfg.CorrectionConcurrency)
	assert.Equal(t, "off", cfg.Gradient)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty is valid", cfg: Config{}},
		{name: "defaults are valid", cfg: Defaults()},
		{name: "unknown provider", cfg: Config{CorrectionProvider: "grammarly"}, wantErr: "correction_provider"},
		{name: "unknown gradient", cfg: Config{Gradient: "sometimes"}, wantErr: "gradient"},
		{name: "bad timeout", cfg: Config{CorrectionTimeout: "ten seconds"}, wantErr: "correction_timeout"},
		{name: "negative timeout", cfg: Config{CorrectionTimeout: "-1s"}, wantErr: "must be positive"},
		{name: "negative concurrency", cfg: Config{CorrectionConcurrency: -1}, wantErr: "non-negative"},
		{name: "bad port", cfg: Config{Port: "http"}, wantErr: "port"},
		{name: "gemini without key", cfg: Config{CorrectionProvider: "gemini"}, wantErr: "gemini_api_key"},
		{name: "gemini with key", cfg: Config{CorrectionProvider: "gemini", GeminiAPIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{DataDir: "mine", CorrectionConcurrency: 2}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "mine", merged.DataDir)
	assert.Equal(t, 2, merged.CorrectionConcurrency)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultGradient, merged.Gradient)
	assert.Equal(t, DefaultCorrectionProvider, merged.CorrectionProvider)

	// receiver unchanged
	assert.Equal(t, "", cfg.Port)
}

func TestMergeWithDefaults_Verbose(t *testing.T) {
	cfg := &Config{}
	assert.True(t, cfg.MergeWithDefaults(Config{Verbose: true}).Verbose)
	assert.False(t, cfg.MergeWithDefaults(Config{}).Verbose)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/data")
	t.Setenv("LT_USERNAME", "ada")
	t.Setenv("LT_API_KEY", "secret")
	t.Setenv("CORRECTION_CONCURRENCY", "6")
	t.Setenv("GRADIENT", "on")
	t.Setenv("LANGUAGETOOL_USERNAME", "")

	cfg := FromEnv()
	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, "ada", cfg.LanguageToolUsername)
	assert.Equal(t, "secret", cfg.LanguageToolAPIKey)
	assert.Equal(t, 6, cfg.CorrectionConcurrency)
	assert.Equal(t, "on", cfg.Gradient)
}

func TestResolve_Precedence(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GRADIENT", "on")
	t.Setenv("DATA_DIR", "")
	path := writeConfig(t, `{"gradient": "off", "data_dir": "from-file"}`)

	flags := &Config{DataDir: "from-flag"}
	cfg, err := flags.Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.DataDir) // flag beats file
	assert.Equal(t, "off", cfg.Gradient)      // file beats env
	assert.Equal(t, "9000", cfg.Port)         // env beats default
	assert.Equal(t, DefaultCorrectionTimeout, cfg.CorrectionTimeout)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, filepath.Join("from-flag", "resumes"), cfg.ResumeDir())
}

func TestResolve_Invalid(t *testing.T) {
	t.Setenv("GRADIENT", "")
	path := writeConfig(t, `{"gradient": "rainbow"}`)

	_, err := (&Config{}).Resolve(path)
	assert.Error(t, err)

	_, err = (&Config{}).Resolve("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestTimeout_Invalid(t *testing.T) {
	cfg := &Config{CorrectionTimeout: "soon"}
	assert.Zero(t, cfg.Timeout())
}
