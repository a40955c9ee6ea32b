package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"arthurchat/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func testDirs(t *testing.T) (configDir, workDir string) {
	t.Helper()
	root := t.TempDir()
	return filepath.Join(root, "config"), filepath.Join(root, "work")
}

func TestLoadDefaults(t *testing.T) {
	configDir, workDir := testDirs(t)

	cfg, err := Load(New(), Options{ConfigDir: configDir, WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, storage.BackendFile, cfg.StorageBackend)
	assert.Equal(t, filepath.Join(configDir, "data"), cfg.StorageDir)
	assert.Equal(t, "http://localhost:8000/chat", cfg.BackendURL)
	assert.Equal(t, time.Duration(0), cfg.BackendTimeout)
	assert.Equal(t, ".", cfg.DownloadDir)
	assert.False(t, cfg.NoColor)
	assert.Empty(t, cfg.Sources)
}

func TestLoadPrecedence(t *testing.T) {
	configDir, workDir := testDirs(t)

	writeFile(t, filepath.Join(workDir, "arthur.yaml"), `
storage:
  backend: sqlite
backend:
  url: http://yaml.example/chat
  timeout: 10s
download:
  dir: /from/yaml
`)
	writeFile(t, filepath.Join(configDir, ".env"), `
ARTHUR_BACKEND_URL=http://configdir.example/chat
ARTHUR_DOWNLOAD_DIR=/from/configdir
OPENAI_API_KEY=ignored
`)
	writeFile(t, filepath.Join(workDir, ".env"), `
ARTHUR_DOWNLOAD_DIR=/from/local
`)
	t.Setenv("ARTHUR_BACKEND_TIMEOUT", "3s")

	cfg, err := Load(New(), Options{ConfigDir: configDir, WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, storage.BackendSQLite, cfg.StorageBackend, "yaml over default")
	assert.Equal(t, "http://configdir.example/chat", cfg.BackendURL, "config .env over yaml")
	assert.Equal(t, "/from/local", cfg.DownloadDir, "local .env over config .env")
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout, "env over files")
	assert.Len(t, cfg.Sources, 3)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	configDir, workDir := testDirs(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "storage:\n  backend: memory\n")

	cfg, err := Load(New(), Options{ConfigFile: path, ConfigDir: configDir, WorkDir: workDir})
	require.NoError(t, err)
	assert.Equal(t, storage.BackendMemory, cfg.StorageBackend)
	assert.Equal(t, []string{path}, cfg.Sources)

	_, err = Load(New(), Options{ConfigFile: filepath.Join(workDir, "missing.yaml"), ConfigDir: configDir, WorkDir: workDir})
	assert.Error(t, err)
}

func TestLoadTestModeSkipsFiles(t *testing.T) {
	configDir, workDir := testDirs(t)
	writeFile(t, filepath.Join(workDir, "arthur.yaml"), "storage:\n  backend: bolt\n")
	writeFile(t, filepath.Join(workDir, ".env"), "ARTHUR_DOWNLOAD_DIR=/nope\n")

	cfg, err := Load(New(), Options{ConfigDir: configDir, WorkDir: workDir, TestMode: true})
	require.NoError(t, err)
	assert.Equal(t, storage.BackendFile, cfg.StorageBackend)
	assert.Equal(t, ".", cfg.DownloadDir)
	assert.Empty(t, cfg.Sources)
}

func TestLoadFlagOverride(t *testing.T) {
	configDir, workDir := testDirs(t)
	t.Setenv("ARTHUR_STORAGE_BACKEND", "bolt")

	v := New()
	v.Set(KeyStorageBackend, "Memory")
	cfg, err := Load(v, Options{ConfigDir: configDir, WorkDir: workDir})
	require.NoError(t, err)
	assert.Equal(t, storage.BackendMemory, cfg.StorageBackend)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"ARTHUR_STORAGE_BACKEND": "redis"}},
		{"bad timeout", map[string]string{"ARTHUR_BACKEND_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"ARTHUR_BACKEND_TIMEOUT": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configDir, workDir := testDirs(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(New(), Options{ConfigDir: configDir, WorkDir: workDir})
			assert.Error(t, err)
		})
	}
}

func TestEnvNameToKey(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"ARTHUR_STORAGE_BACKEND", "storage.backend", true},
		{"arthur_log_level", "log.level", true},
		{"ARTHUR_UI_NO_COLOR", "ui.no_color", true},
		{"ARTHUR_", "", false},
		{"ARTHUR_LOG", "", false},
		{"OPENAI_API_KEY", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := envNameToKey(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMalformedDotEnv(t *testing.T) {
	configDir, workDir := testDirs(t)
	writeFile(t, filepath.Join(workDir, ".env"), "ARTHUR_LOG_LEVEL='unterminated\n")

	_, err := Load(New(), Options{ConfigDir: configDir, WorkDir: workDir})
	assert.Error(t, err)
}
