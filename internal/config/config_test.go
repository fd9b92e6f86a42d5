package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"jwt_secret": "s",
		"database": {"path": "a.db"},
		"file_store": {"data": {"dir": "uploads"}},
		"ai": {"provider": "gemini", "model": "gemini-pro", "data": {"api_key": "k"}}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.Equal(t, "local", cfg.FileStore.Type)
	require.Equal(t, 72, cfg.JWTTTLHours)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, int64(defaultMaxFileSize), cfg.Upload.MaxFileSize)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing port",
			body: `{"jwt_secret":"s","database":{"path":"a.db"},"ai":{"provider":"gemini","model":"m"}}`,
		},
		{
			name: "missing jwt secret",
			body: `{"port":1,"database":{"path":"a.db"},"ai":{"provider":"gemini","model":"m"}}`,
		},
		{
			name: "sqlite without path",
			body: `{"port":1,"jwt_secret":"s","database":{"driver":"sqlite"},"ai":{"provider":"gemini","model":"m"}}`,
		},
		{
			name: "postgres without host",
			body: `{"port":1,"jwt_secret":"s","database":{"driver":"postgres","dbname":"x"},"ai":{"provider":"gemini","model":"m"}}`,
		},
		{
			name: "unknown driver",
			body: `{"port":1,"jwt_secret":"s","database":{"driver":"mysql"},"ai":{"provider":"gemini","model":"m"}}`,
		},
		{
			name: "missing ai model",
			body: `{"port":1,"jwt_secret":"s","database":{"path":"a.db"},"ai":{"provider":"gemini"}}`,
		},
		{
			name: "unknown file store",
			body: `{"port":1,"jwt_secret":"s","database":{"path":"a.db"},"file_store":{"type":"ftp"},"ai":{"provider":"gemini","model":"m"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadPostgresDSN(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"jwt_secret": "s",
		"database": {"driver": "postgres", "dsn": "postgres://u:p@localhost/db"},
		"ai": {"provider": "openai", "model": "gpt-4o-mini"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, cfg.Database.Driver)
	require.Equal(t, 5432, cfg.Database.Port)
}
