package provider

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	gemini "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFromResponse(t *testing.T) {
	tests := []struct {
		name string
		resp *gemini.GenerateContentResponse
		want string
	}{
		{name: "nil 响应", resp: nil, want: ""},
		{name: "无候选", resp: &gemini.GenerateContentResponse{}, want: ""},
		{
			name: "无内容",
			resp: &gemini.GenerateContentResponse{Candidates: []*gemini.Candidate{{}}},
			want: "",
		},
		{
			name: "多段文本拼接",
			resp: &gemini.GenerateContentResponse{Candidates: []*gemini.Candidate{{
				Content: &gemini.Content{Parts: []gemini.Part{
					gemini.Text("A lone traveler "),
					gemini.Blob{MIMEType: "image/png", Data: []byte{0x1}},
					gemini.Text("crosses the dunes."),
				}},
			}}},
			want: "A lone traveler crosses the dunes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textFromResponse(tt.resp))
		})
	}
}

func TestNewGeminiTextModel_NoAPIKey(t *testing.T) {
	m, err := NewGeminiTextModel(context.Background(), "", "gemma-3n-e4b-it")
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, "gemma-3n-e4b-it", m.Name())

	_, err = m.Generate(context.Background(), "hello", TextGenerationOptions{})
	assert.ErrorIs(t, err, ErrModelNotConfigured)
	assert.Contains(t, err.Error(), "GENAI_API_KEY")
}

func TestGeminiTextModel_Generate(t *testing.T) {
	apiKey := os.Getenv("GENAI_API_KEY")
	if apiKey == "" {
		t.Skip("跳过: 需要设置 GENAI_API_KEY 环境变量")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	m, err := NewGeminiTextModel(ctx, apiKey, "gemma-3n-e4b-it")
	require.NoError(t, err)
	defer m.Close()

	text, err := m.Generate(ctx, "Describe a red apple in one sentence.", TextGenerationOptions{
		Temperature:     0.7,
		TopP:            0.9,
		TopK:            40,
		MaxOutputTokens: 300,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(text))
}
