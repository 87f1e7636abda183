package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		APIBaseURL:     "http://localhost:5000/api",
		DatabasePath:   "sweetshop.db",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"SWEETSHOP_API_URL=http://env.example/api\n"+
			"SWEETSHOP_DB=env.db\n"+
			"SWEETSHOP_REQUEST_TIMEOUT=20s\n"+
			"SWEETSHOP_LOG_LEVEL=warn\n"), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{EnvAPIBaseURL, EnvDatabasePath, EnvRequestTimeout, EnvLogLevel} {
			_ = os.Unsetenv(k)
		}
	})

	jsonFile := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"database_path":   "json.db",
		"request_timeout": "30s",
	})

	cfg, err := load([]string{"-c", jsonFile, "-l", "debug"}, envFile)
	require.NoError(t, err)

	want := &Config{
		APIBaseURL:     "http://env.example/api",
		DatabasePath:   "json.db",
		RequestTimeout: 30 * time.Second,
		LogLevel:       "debug",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	cfg, err := load(nil, filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseEnv_ProcessEnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SWEETSHOP_DB=file.db\n"), 0o600))
	t.Setenv(EnvDatabasePath, "process.db")

	cfg := defaults()
	require.NoError(t, parseEnv(cfg, envFile))
	assert.Equal(t, "process.db", cfg.DatabasePath)
}

func TestParseEnv_BadTimeout(t *testing.T) {
	t.Setenv(EnvRequestTimeout, "soon")
	err := parseEnv(defaults(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvRequestTimeout)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://shop.example/api", "-d", "/tmp/s.db", "-t", "3", "-l", "error"},
			expected: &Config{
				APIBaseURL:     "https://shop.example/api",
				DatabasePath:   "/tmp/s.db",
				RequestTimeout: 3 * time.Second,
				LogLevel:       "error",
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-x", "1", "-config", "cfg.json"},
			expected: defaults(),
		},
		{
			name:    "incorrect timeout",
			args:    []string{"-t", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
