package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"text_image_api_202610/internal/provider"
)

// SynthesizedImage 已生成并落盘的图片
type SynthesizedImage struct {
	Data       []byte
	MimeType   string
	StoredName string // 请求级唯一文件名
	URL        string // 存储访问地址
}

// ImageService 调用图片模型并保存结果
type ImageService struct {
	model   provider.ImageModel
	storage StorageProvider
	log     *zap.Logger
}

// NewImageService 创建图片服务
func NewImageService(model provider.ImageModel, storage StorageProvider, log *zap.Logger) *ImageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageService{model: model, storage: storage, log: log}
}

// Synthesize 生成一张图片，按请求级唯一名称保存
// filename 只决定名称前缀和扩展名
func (s *ImageService) Synthesize(ctx context.Context, prompt, filename string) (*SynthesizedImage, error) {
	img, err := s.model.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if img == nil || len(img.Data) == 0 {
		return nil, fmt.Errorf("图片模型返回为空")
	}

	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = provider.DefaultImageMimeType
	}

	storedName := ScopedFilename(filename)
	url, err := s.storage.Upload(ctx, img.Data, storedName, mimeType)
	if err != nil {
		return nil, fmt.Errorf("保存图片失败: %w", err)
	}

	s.log.Debug("图片已保存",
		zap.String("stored_name", storedName),
		zap.String("url", url),
		zap.Int("bytes", len(img.Data)),
	)

	return &SynthesizedImage{
		Data:       img.Data,
		MimeType:   mimeType,
		StoredName: storedName,
		URL:        url,
	}, nil
}

// ModelName 图片模型标识
func (s *ImageService) ModelName() string {
	return s.model.Name()
}
