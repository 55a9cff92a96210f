package provider

//go:generate mockgen -source=image_model.go -destination=mocks/mock_image_model.go -package=mocks

import (
	"context"
	"fmt"
)

// DefaultImageMimeType 未声明类型时按 PNG 处理
const DefaultImageMimeType = "image/png"

// GeneratedImage 模型返回的单张图片
type GeneratedImage struct {
	Data     []byte
	MimeType string
}

// ImageModel 图片生成模型
// 每次调用只请求一张图
type ImageModel interface {
	Generate(ctx context.Context, prompt string) (*GeneratedImage, error)
	Name() string
}

// ==================== 未配置占位 ====================

type unconfiguredImageModel struct {
	modelName string
	missing   string
}

// NewUnconfiguredImageModel 凭据缺失时使用
func NewUnconfiguredImageModel(modelName, missing string) ImageModel {
	return &unconfiguredImageModel{modelName: modelName, missing: missing}
}

func (m *unconfiguredImageModel) Generate(ctx context.Context, prompt string) (*GeneratedImage, error) {
	return nil, fmt.Errorf("%w: image model %s 缺少 %s", ErrModelNotConfigured, m.modelName, m.missing)
}

func (m *unconfiguredImageModel) Name() string {
	return m.modelName
}
