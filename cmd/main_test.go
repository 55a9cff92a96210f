package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text_image_api_202610/internal/provider"
)

// 不依赖外部服务的配置文件
func writeOfflineEnv(t *testing.T) string {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "STORE_DRIVER=postgres\n" +
		"IMAGE_BACKEND=gemini-rest\n" +
		"STATIC_DIR=" + filepath.Join(dir, "static") + "\n" +
		"LOG_LEVEL=error\n" +
		"GIN_MODE=" + gin.TestMode + "\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	return envFile
}

func runCLI(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(append([]string{"text-image-api"}, args...))
	return out.String(), err
}

func TestCLI_History(t *testing.T) {
	out, err := runCLI(t, "--env-file", writeOfflineEnv(t), "history", "--limit", "3")
	require.NoError(t, err)
	assert.JSONEq(t, `{"history":[]}`, out)
}

func TestCLI_GenerateRequiresTitle(t *testing.T) {
	_, err := runCLI(t, "--env-file", writeOfflineEnv(t), "generate", "--tag", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestCLI_GenerateModelNotConfigured(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "")

	out, err := runCLI(t, "--env-file", writeOfflineEnv(t), "generate", "--title", "Fox", "--tag", "snow", "--tag", "night")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrModelNotConfigured)
	assert.Empty(t, out)
}
