package provider

import (
	"context"
	"fmt"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"
)

// ProviderVertex Vertex AI 错误归类用的服务商名
const ProviderVertex = "vertex"

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// VertexImageConfig Vertex Imagen 参数
type VertexImageConfig struct {
	Model           string
	ProjectID       string
	Location        string
	CredentialsFile string
}

type vertexImageModel struct {
	client    *genai.Client
	modelName string
}

// NewVertexImageModel 创建 Vertex AI Imagen 客户端
// ProjectID 为空时返回未配置实现
// CredentialsFile 为空时使用应用默认凭据
func NewVertexImageModel(ctx context.Context, cfg VertexImageConfig) (ImageModel, error) {
	if cfg.ProjectID == "" {
		return NewUnconfiguredImageModel(cfg.Model, "PROJECT_ID"), nil
	}

	clientCfg := &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  cfg.ProjectID,
		Location: cfg.Location,
	}

	if cfg.CredentialsFile != "" {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			CredentialsFile: cfg.CredentialsFile,
			Scopes:          []string{cloudPlatformScope},
		})
		if err != nil {
			return nil, fmt.Errorf("加载服务账号凭据失败: %w", err)
		}
		clientCfg.Credentials = creds
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("Vertex AI 初始化失败: %w", err)
	}

	return &vertexImageModel{client: client, modelName: cfg.Model}, nil
}

func (m *vertexImageModel) Generate(ctx context.Context, prompt string) (*GeneratedImage, error) {
	resp, err := m.client.Models.GenerateImages(ctx, m.modelName, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: DefaultImageMimeType,
	})
	if err != nil {
		return nil, AsVendorError(ProviderVertex, err)
	}

	return imageFromVertexResponse(resp)
}

func (m *vertexImageModel) Name() string {
	return m.modelName
}

// imageFromVertexResponse 取第一张图
// 被安全策略过滤时没有图片字节，只有 RAIFilteredReason
func imageFromVertexResponse(resp *genai.GenerateImagesResponse) (*GeneratedImage, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, &VendorError{Provider: ProviderVertex, Message: "no image returned"}
	}

	first := resp.GeneratedImages[0]
	if first == nil || first.Image == nil || len(first.Image.ImageBytes) == 0 {
		reason := "no image returned"
		if first != nil && first.RAIFilteredReason != "" {
			reason = first.RAIFilteredReason
		}
		return nil, &VendorError{Provider: ProviderVertex, Message: reason}
	}

	mimeType := first.Image.MIMEType
	if mimeType == "" {
		mimeType = DefaultImageMimeType
	}
	return &GeneratedImage{Data: first.Image.ImageBytes, MimeType: mimeType}, nil
}
