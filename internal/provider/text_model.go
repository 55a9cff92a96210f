package provider

//go:generate mockgen -source=text_model.go -destination=mocks/mock_text_model.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ==================== 接口定义 ====================

// TextGenerationOptions 采样参数
type TextGenerationOptions struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// TextModel 文本生成模型
type TextModel interface {
	// Generate 单轮生成，返回拼接后的文本
	Generate(ctx context.Context, prompt string, opts TextGenerationOptions) (string, error)
	// Name 模型标识，写入生成记录
	Name() string
	// Close 释放客户端
	Close() error
}

// ==================== Gemini 实现 ====================

// ProviderGemini 文本模型错误归类用的服务商名
const ProviderGemini = "gemini"

type geminiTextModel struct {
	client    *gemini.Client
	modelName string
}

// NewGeminiTextModel 创建 Gemini 文本模型客户端
// apiKey 为空时返回未配置实现，调用时才报错
func NewGeminiTextModel(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (TextModel, error) {
	if apiKey == "" {
		return NewUnconfiguredTextModel(modelName, "GENAI_API_KEY"), nil
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := gemini.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("Gemini 初始化失败: %w", err)
	}

	return &geminiTextModel{client: client, modelName: modelName}, nil
}

func (m *geminiTextModel) Generate(ctx context.Context, prompt string, opts TextGenerationOptions) (string, error) {
	// GenerativeModel 持有可变配置，每次调用单独创建
	model := m.client.GenerativeModel(m.modelName)
	if opts.Temperature > 0 {
		model.SetTemperature(opts.Temperature)
	}
	if opts.TopP > 0 {
		model.SetTopP(opts.TopP)
	}
	if opts.TopK > 0 {
		model.SetTopK(opts.TopK)
	}
	if opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, gemini.Text(prompt))
	if err != nil {
		return "", AsVendorError(ProviderGemini, err)
	}

	return textFromResponse(resp), nil
}

func (m *geminiTextModel) Name() string {
	return m.modelName
}

func (m *geminiTextModel) Close() error {
	return m.client.Close()
}

// textFromResponse 取第一个候选的全部文本片段
func textFromResponse(resp *gemini.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(gemini.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}

// ==================== 未配置占位 ====================

type unconfiguredTextModel struct {
	modelName string
	missing   string
}

// NewUnconfiguredTextModel 凭据缺失时使用
func NewUnconfiguredTextModel(modelName, missing string) TextModel {
	return &unconfiguredTextModel{modelName: modelName, missing: missing}
}

func (m *unconfiguredTextModel) Generate(ctx context.Context, prompt string, opts TextGenerationOptions) (string, error) {
	return "", fmt.Errorf("%w: text model %s 缺少 %s", ErrModelNotConfigured, m.modelName, m.missing)
}

func (m *unconfiguredTextModel) Name() string {
	return m.modelName
}

func (m *unconfiguredTextModel) Close() error {
	return nil
}
