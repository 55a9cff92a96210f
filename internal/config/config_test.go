package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "text_image_api", cfg.Store.Database)
	assert.Equal(t, "genimage_prompts", cfg.Store.Collection)
	assert.Equal(t, "gemma-3n-e4b-it", cfg.Text.Model)
	assert.Equal(t, "imagen-3.0-generate-002", cfg.Image.Model)
	assert.Equal(t, ImageBackendVertex, cfg.Image.Backend)
	assert.Equal(t, 120*time.Second, cfg.Image.Timeout)
	assert.Equal(t, StorageProviderLocal, cfg.Storage.Provider)
	assert.Equal(t, "static", cfg.Storage.StaticDir)
	assert.Equal(t, 72*time.Hour, cfg.Task.OutputRetention)
	assert.Equal(t, 30, cfg.Limit.PerMinute)
}

func TestLoad_EnvFileAndOverride(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "SERVER_PORT=9100\nTEXT_MODEL=gemini-2.0-flash\nSTORE_DRIVER=postgres\nPOSTGRES_DSN=host=db\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// 环境变量优先于文件
	t.Setenv("SERVER_PORT", "9200")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "9200", cfg.Server.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Text.Model)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "host=db", cfg.Store.PostgresDSN)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "not-exist.env"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoad_InvalidEnum(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"存储驱动", "STORE_DRIVER", "redis"},
		{"图片后端", "IMAGE_BACKEND", "dalle"},
		{"落盘方式", "STORAGE_PROVIDER", "ftp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestConfig_MissingCredentials(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	missing := cfg.MissingCredentials()
	assert.Contains(t, missing, "GENAI_API_KEY")
	assert.Contains(t, missing, "PROJECT_ID")
	assert.Contains(t, missing, "GOOGLE_APPLICATION_CREDENTIALS")
	assert.NotContains(t, missing, "MONGODB_URL")
}
