package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.True(t, config.OCR.Enabled)
	assert.Equal(t, "ocrmypdf", config.OCR.Binary)
	assert.Equal(t, "eng", config.OCR.Language)
	assert.Equal(t, 120, config.OCR.TimeoutSeconds)
	assert.Equal(t, 2, config.OCR.MaxConcurrent)
	assert.Equal(t, 30, config.OCR.MinCharsPerPage)
	assert.Equal(t, 5, config.Extraction.SupplierMinLength)
	assert.Equal(t, 3, config.Extraction.SupplierLetterRun)
	assert.Equal(t, 3, config.Extraction.MaxContacts)
	assert.Equal(t, 5000, config.Server.Port)
	assert.Equal(t, 16, config.Server.MaxUploadMB)
	assert.True(t, config.Cache.Enabled)
	assert.Equal(t, 4, config.Batch.Workers)
	assert.Equal(t, "json", config.Batch.Format)
}

func TestDefault_MatchesInitializeConfig(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	loaded, err := InitializeConfig("")
	require.NoError(t, err)
	assert.Equal(t, loaded, Default())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("DOCFIELDS_LOG_LEVEL", "debug")
	t.Setenv("DOCFIELDS_LOG_FORMAT", "json")
	t.Setenv("DOCFIELDS_OCR_ENABLED", "false")
	t.Setenv("DOCFIELDS_OCR_MIN_CHARS_PER_PAGE", "50")
	t.Setenv("DOCFIELDS_SERVER_PORT", "8080")
	t.Setenv("DOCFIELDS_BATCH_FORMAT", "xlsx")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.False(t, config.OCR.Enabled)
	assert.Equal(t, 50, config.OCR.MinCharsPerPage)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "xlsx", config.Batch.Format)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	chdir(t, dir)

	content := `log:
  level: warn
ocr:
  binary: /opt/ocrmypdf/bin/ocrmypdf
  timeout_seconds: 300
extraction:
  max_contacts: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "/opt/ocrmypdf/bin/ocrmypdf", config.OCR.Binary)
	assert.Equal(t, 300, config.OCR.TimeoutSeconds)
	assert.Equal(t, 5, config.Extraction.MaxContacts)
	assert.Equal(t, "text", config.Log.Format, "unset keys keep defaults")
}

func TestInitializeConfig_ExplicitFileAndPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7000\nbatch:\n  workers: 8\n"), 0600))

	t.Setenv("DOCFIELDS_SERVER_PORT", "9000")

	config, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, config.Server.Port, "environment wins over file")
	assert.Equal(t, 8, config.Batch.Workers, "file wins over defaults")
}

func TestInitializeConfig_MissingExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	_, err := InitializeConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "invalid log level"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "invalid log format"},
		{name: "missing ocr binary", mutate: func(c *Config) { c.OCR.Binary = "" }, wantErr: "ocr.binary"},
		{name: "zero ocr timeout", mutate: func(c *Config) { c.OCR.TimeoutSeconds = 0 }, wantErr: "ocr.timeout_seconds"},
		{name: "zero ocr concurrency", mutate: func(c *Config) { c.OCR.MaxConcurrent = 0 }, wantErr: "ocr.max_concurrent"},
		{name: "negative threshold", mutate: func(c *Config) { c.OCR.MinCharsPerPage = -1 }, wantErr: "ocr.min_chars_per_page"},
		{name: "zero contacts", mutate: func(c *Config) { c.Extraction.MaxContacts = 0 }, wantErr: "extraction.max_contacts"},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "zero upload size", mutate: func(c *Config) { c.Server.MaxUploadMB = 0 }, wantErr: "server.max_upload_mb"},
		{name: "zero rate", mutate: func(c *Config) { c.Server.RequestsPerSecond = 0 }, wantErr: "server.requests_per_second"},
		{name: "zero workers", mutate: func(c *Config) { c.Batch.Workers = 0 }, wantErr: "batch.workers"},
		{name: "bad batch format", mutate: func(c *Config) { c.Batch.Format = "pdf" }, wantErr: "invalid batch format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_OCRDisabledAllowsEmptyBinary(t *testing.T) {
	cfg := Default()
	cfg.OCR.Enabled = false
	cfg.OCR.Binary = ""
	assert.NoError(t, validateConfig(cfg))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	os.Unsetenv("DOCFIELDS_TEST_FROM_DOTENV")
	t.Cleanup(func() { os.Unsetenv("DOCFIELDS_TEST_FROM_DOTENV") })

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCFIELDS_TEST_FROM_DOTENV=yes\n"), 0600))
	loaded, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "yes", os.Getenv("DOCFIELDS_TEST_FROM_DOTENV"))
}

func clearTestEnvVars(t *testing.T) {
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] != '=' {
				continue
			}
			key := kv[:i]
			if len(key) > len(EnvPrefix) && key[:len(EnvPrefix)+1] == EnvPrefix+"_" {
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			break
		}
	}
}
