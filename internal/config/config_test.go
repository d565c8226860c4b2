// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"AUPSTREAM_ENV", "AUPSTREAM_LOG_LEVEL", "AUPSTREAM_LOG_FORMAT",
		"AUPSTREAM_FORMAT", "AUPSTREAM_OUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFormat)
	assert.Equal(t, "wav", cfg.Format)
	assert.Equal(t, ".", cfg.OutDir)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUPSTREAM_FORMAT", "AIFF")
	t.Setenv("AUPSTREAM_LOG_LEVEL", "debug")
	t.Setenv("AUPSTREAM_OUT", "/tmp/out")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "aiff", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/out", cfg.OutDir)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AUPSTREAM_LOG_FORMAT=json\n"), 0o644))
	// godotenv never overrides a variable that is set, even to ""
	require.NoError(t, os.Unsetenv("AUPSTREAM_LOG_FORMAT"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestLoad_InvalidFormat(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUPSTREAM_FORMAT", "mp3")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Format")
	assert.Contains(t, err.Error(), "mp3")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{Env: "production", LogLevel: "warn", Format: "aiff", OutDir: "out"},
		},
		{
			name:    "bad env",
			cfg:     Config{Env: "staging", LogLevel: "info", Format: "wav", OutDir: "."},
			wantErr: "Env",
		},
		{
			name:    "bad log format",
			cfg:     Config{Env: "development", LogLevel: "info", LogFormat: "xml", Format: "wav", OutDir: "."},
			wantErr: "LogFormat",
		},
		{
			name:    "missing out dir",
			cfg:     Config{Env: "development", LogLevel: "info", Format: "wav"},
			wantErr: "OutDir is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

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
