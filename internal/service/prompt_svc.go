package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"text_image_api_202610/internal/provider"
)

// ErrEmptyPrompt 文本模型返回空内容
var ErrEmptyPrompt = errors.New("text model returned an empty prompt")

// DefaultPromptOptions 提示词扩写的固定采样参数
var DefaultPromptOptions = provider.TextGenerationOptions{
	Temperature:     0.7,
	TopP:            0.9,
	TopK:            40,
	MaxOutputTokens: 300,
}

const promptTemplate = `You are an expert visual‐prompt engineer. Your job is to convert a simple title plus a list of descriptive tags into a rich, coherent, and evocative prompt for a vision model. Be concise, precise, and imaginative.

Title: %s
Tags: %s

Guidelines:
1. Capture the core concept implied by the title.
2. Weave in each tag so that it influences the style, mood, color palette, composition, or atmosphere.
3. Describe setting, lighting, textures, and any dramatic details.
4. If appropriate, sprinkle in a brief nod to a genre or artist‐style
5. Do not exceed 180 words.

**Important Guideline**
Output only the final image prompt. Do not preface with explanations or anything extra.

Examples:
• Title: “Desert Wanderer”
Tags: “solitary figure, golden dunes, twilight, wind-swept, 8k”
→ Prompt: “A lone traveler in flowing robes walks across vast golden dunes at twilight; wind-swept sand ripples under a deep purple sky, silhouette backlit by a low sun—evoking epic solitude in 8K detail.”
Generate the image prompt now.`

// BuildPrompt 渲染提示词扩写模板，标签按原顺序以逗号拼接
func BuildPrompt(title string, tags []string) string {
	return fmt.Sprintf(promptTemplate, title, strings.Join(tags, ", "))
}

// ==================== 服务 ====================

// PromptService 把标题和标签扩写为图片提示词
type PromptService struct {
	model provider.TextModel
	opts  provider.TextGenerationOptions
}

// NewPromptService 创建提示词服务
func NewPromptService(model provider.TextModel) *PromptService {
	return &PromptService{model: model, opts: DefaultPromptOptions}
}

// Synthesize 调用一次文本模型，返回去除首尾空白的提示词
// 不重试，不兜底
func (s *PromptService) Synthesize(ctx context.Context, title string, tags []string) (string, error) {
	text, err := s.model.Generate(ctx, BuildPrompt(title, tags), s.opts)
	if err != nil {
		return "", err
	}

	prompt := strings.TrimSpace(text)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}

// ModelName 文本模型标识
func (s *PromptService) ModelName() string {
	return s.model.Name()
}
