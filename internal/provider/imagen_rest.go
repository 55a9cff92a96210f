package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"text_image_api_202610/pkg/utils"
)

// ProviderGeminiREST Gemini Developer API 错误归类用的服务商名
const ProviderGeminiREST = "gemini-rest"

// DefaultGeminiBaseURL Gemini Developer API 地址
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// RESTImageConfig Imagen REST 参数
type RESTImageConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type restImageModel struct {
	client    *resty.Client
	apiKey    string
	modelName string
}

// NewRESTImageModel 通过 :predict 接口调用 Imagen
// APIKey 为空时返回未配置实现
func NewRESTImageModel(cfg RESTImageConfig) ImageModel {
	if cfg.APIKey == "" {
		return NewUnconfiguredImageModel(cfg.Model, "GENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}

	return &restImageModel{
		client: utils.NewRestClient(utils.ClientOptions{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}),
		apiKey:    cfg.APIKey,
		modelName: cfg.Model,
	}
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount int `json:"sampleCount"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
		RAIFilteredReason  string `json:"raiFilteredReason"`
	} `json:"predictions"`
}

type restErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (m *restImageModel) Generate(ctx context.Context, prompt string) (*GeneratedImage, error) {
	var result predictResponse
	var errBody restErrorBody

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", m.apiKey).
		SetPathParam("model", m.modelName).
		SetBody(predictRequest{
			Instances:  []predictInstance{{Prompt: prompt}},
			Parameters: predictParameters{SampleCount: 1},
		}).
		SetResult(&result).
		SetError(&errBody).
		Post("/v1beta/models/{model}:predict")
	if err != nil {
		return nil, fmt.Errorf("Imagen 请求失败: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		msg := errBody.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		code := errBody.Error.Code
		if code == 0 {
			code = resp.StatusCode()
		}
		return nil, &VendorError{Provider: ProviderGeminiREST, Code: code, Message: msg}
	}

	for _, pred := range result.Predictions {
		if pred.BytesBase64Encoded == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(pred.BytesBase64Encoded)
		if err != nil {
			return nil, fmt.Errorf("Base64 解码失败: %v", err)
		}
		mimeType := pred.MimeType
		if mimeType == "" {
			mimeType = DefaultImageMimeType
		}
		return &GeneratedImage{Data: data, MimeType: mimeType}, nil
	}

	reason := "no image returned"
	if len(result.Predictions) > 0 && result.Predictions[0].RAIFilteredReason != "" {
		reason = result.Predictions[0].RAIFilteredReason
	}
	return nil, &VendorError{Provider: ProviderGeminiREST, Message: reason}
}

func (m *restImageModel) Name() string {
	return m.modelName
}
