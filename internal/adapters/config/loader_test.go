package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/margin/internal/adapters/config"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "margin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	return config.NewLoader(mocks.NewMockLogger(ctrl))
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  api_endpoint: /notes
  inject: false
  upstream: http://localhost:3000
storage:
  driver: sqlite
  path: /tmp/notes.db
  redis_db: 2
telemetry:
  otlp_endpoint: http://collector:4318
log:
  json: true
`)

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.ServerConfig{
		Addr:        ":9090",
		APIEndpoint: "/notes",
		Inject:      false,
		Upstream:    "http://localhost:3000",
	}, cfg.Server)
	assert.Equal(t, domain.StorageConfig{
		Driver:    domain.DriverSQLite,
		Path:      "/tmp/notes.db",
		RedisAddr: "localhost:6379",
		RedisDB:   2,
	}, cfg.Storage)
	assert.Equal(t, "http://collector:4318", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, "margin", cfg.Telemetry.ServiceName)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := newLoader(t).Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")

	_, err := newLoader(t).Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	t.Setenv("MARGIN_ADDR", ":7070")
	t.Setenv("MARGIN_STORAGE_DRIVER", "redis")
	t.Setenv("MARGIN_REDIS_DB", "3")
	t.Setenv("MARGIN_INJECT", "false")
	t.Setenv("MARGIN_LOG_JSON", "true")

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, domain.DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Storage.RedisDB)
	assert.False(t, cfg.Server.Inject)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeConfig(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"), []byte("MARGIN_STATIC_DIR=./public\n"), 0o600))
	t.Setenv("MARGIN_STATIC_DIR", "")
	require.NoError(t, os.Unsetenv("MARGIN_STATIC_DIR"))

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./public", cfg.Server.StaticDir)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "unknown driver",
			content: "storage:\n  driver: mongo\n",
			wantErr: domain.ErrUnknownStorageDriver,
		},
		{
			name:    "relative endpoint",
			content: "server:\n  api_endpoint: api\n",
			wantErr: domain.ErrInvalidEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr.Error())
		})
	}
}
