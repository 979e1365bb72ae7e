package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/some/path"},
		Catalog: CatalogConfig{
			BaseURL: "https://www.googleapis.com/books/v1/volumes",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"ERROR", true}, // compared case-insensitively
		{"verbose", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_RequiresCatalogURL(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.BaseURL = ""
	assert.Error(t, cfg.Validate())

	// An empty API key is allowed.
	cfg = validConfig()
	cfg.Catalog.APIKey = ""
	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name        string
		path        string
		defaultPath string
		want        string
	}{
		{"empty uses default", "", "/default", "/default"},
		{"absolute unchanged", "/abs/path", "/default", "/abs/path"},
		{"tilde expanded", "~/data", "/default", filepath.Join(home, "data")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.path, tt.defaultPath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	const envKey = "BOOKCLUB_TEST_CONFIG_VALUE"
	t.Setenv(envKey, "from-env")

	// Flag wins over env.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", envKey, "default"))
	// Env wins over default.
	assert.Equal(t, "from-env", getConfigValue("", envKey, "default"))
	// Default when nothing else set.
	assert.Equal(t, "default", getConfigValue("", "BOOKCLUB_TEST_UNSET", "default"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nBOOKCLUB_TEST_ENVFILE_A=hello\nBOOKCLUB_TEST_ENVFILE_B=\"quoted\"\nmalformed line\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("BOOKCLUB_TEST_ENVFILE_A")
		os.Unsetenv("BOOKCLUB_TEST_ENVFILE_B")
	})

	require.NoError(t, loadEnvFile(envPath))

	assert.Equal(t, "hello", os.Getenv("BOOKCLUB_TEST_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("BOOKCLUB_TEST_ENVFILE_B"))
}
