package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// ClientOptions Resty 客户端参数
type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	ProxyURL  string
	Debug     bool
}

// NewRestClient 创建一个配置好超时、UA 和代理的 Resty 客户端
// 外部模型 REST 调用统一从这里取客户端
func NewRestClient(opts ClientOptions) *resty.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "text-image-api/1.0"
	}

	client := resty.New().
		SetDebug(opts.Debug).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent)

	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}
	if opts.ProxyURL != "" {
		client.SetProxy(opts.ProxyURL)
	}

	return client
}
