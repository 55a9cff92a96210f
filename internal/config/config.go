package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 服务整体配置
// 所有字段均来自环境变量或 .env 文件，缺失时按功能降级，不阻止进程启动
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Store   StoreConfig
	Text    TextModelConfig
	Image   ImageModelConfig
	Storage StorageConfig
	Task    TaskConfig
	Limit   RateLimitConfig
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | console
}

// StoreConfig 生成记录存储配置
type StoreConfig struct {
	Driver      string // mongo | postgres
	MongoURL    string
	Database    string
	Collection  string
	PostgresDSN string
	PingTimeout time.Duration
}

// TextModelConfig 文本模型配置 (提示词扩写)
type TextModelConfig struct {
	APIKey string
	Model  string
}

// ImageModelConfig 图片模型配置
type ImageModelConfig struct {
	Backend         string // vertex | gemini-rest
	Model           string
	APIKey          string // gemini-rest 使用
	CredentialsFile string // vertex 使用
	ProjectID       string
	Location        string
	Timeout         time.Duration
}

// StorageConfig 图片落盘配置
type StorageConfig struct {
	Provider  string // local | s3
	StaticDir string
	URLPrefix string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // S3 兼容存储 (MinIO / COS) 自定义端点
	CDNDomain string
	BasePath  string
}

// TaskConfig 定时任务配置
type TaskConfig struct {
	OutputRetention  time.Duration
	StoreMonitorSpec string
}

// RateLimitConfig 生成接口限流配置
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// ==================== 默认值 ====================

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"

	ImageBackendVertex     = "vertex"
	ImageBackendGeminiREST = "gemini-rest"

	StorageProviderLocal = "local"
	StorageProviderS3    = "s3"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STORE_DRIVER", StoreDriverMongo)
	v.SetDefault("MONGODB_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "text_image_api")
	v.SetDefault("MONGODB_COLLECTION", "genimage_prompts")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("STORE_PING_TIMEOUT", "5s")

	v.SetDefault("GENAI_API_KEY", "")
	v.SetDefault("TEXT_MODEL", "gemma-3n-e4b-it")

	v.SetDefault("IMAGE_BACKEND", ImageBackendVertex)
	v.SetDefault("IMAGE_MODEL", "imagen-3.0-generate-002")
	v.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	v.SetDefault("PROJECT_ID", "")
	v.SetDefault("LOCATION", "us-central1")
	v.SetDefault("IMAGE_TIMEOUT", "120s")

	v.SetDefault("STORAGE_PROVIDER", StorageProviderLocal)
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("STATIC_URL_PREFIX", "/static")
	v.SetDefault("AWS_BUCKET", "")
	v.SetDefault("AWS_REGION", "")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_ENDPOINT", "")
	v.SetDefault("AWS_CDN_DOMAIN", "")
	v.SetDefault("STORAGE_BASE_PATH", "text-image")

	v.SetDefault("OUTPUT_RETENTION", "72h")
	v.SetDefault("STORE_MONITOR_SPEC", "0 */5 * * * *")

	v.SetDefault("GENERATE_RATE_PER_MINUTE", 30)
	v.SetDefault("GENERATE_BURST", 5)
}

// ==================== 加载 ====================

// Load 读取配置
// envFile 为空或文件不存在时只读取环境变量，环境变量优先于文件
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("读取配置文件 %s 失败: %w", envFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("检查配置文件 %s 失败: %w", envFile, err)
		}
	}

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			GinMode:         v.GetString("GIN_MODE"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(v.GetString("STORE_DRIVER")),
			MongoURL:    v.GetString("MONGODB_URL"),
			Database:    v.GetString("MONGODB_DATABASE"),
			Collection:  v.GetString("MONGODB_COLLECTION"),
			PostgresDSN: v.GetString("POSTGRES_DSN"),
			PingTimeout: v.GetDuration("STORE_PING_TIMEOUT"),
		},
		Text: TextModelConfig{
			APIKey: v.GetString("GENAI_API_KEY"),
			Model:  v.GetString("TEXT_MODEL"),
		},
		Image: ImageModelConfig{
			Backend:         strings.ToLower(v.GetString("IMAGE_BACKEND")),
			Model:           v.GetString("IMAGE_MODEL"),
			APIKey:          v.GetString("GENAI_API_KEY"),
			CredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
			ProjectID:       v.GetString("PROJECT_ID"),
			Location:        v.GetString("LOCATION"),
			Timeout:         v.GetDuration("IMAGE_TIMEOUT"),
		},
		Storage: StorageConfig{
			Provider:  strings.ToLower(v.GetString("STORAGE_PROVIDER")),
			StaticDir: v.GetString("STATIC_DIR"),
			URLPrefix: v.GetString("STATIC_URL_PREFIX"),
			Bucket:    v.GetString("AWS_BUCKET"),
			Region:    v.GetString("AWS_REGION"),
			AccessKey: v.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			Endpoint:  v.GetString("AWS_ENDPOINT"),
			CDNDomain: v.GetString("AWS_CDN_DOMAIN"),
			BasePath:  v.GetString("STORAGE_BASE_PATH"),
		},
		Task: TaskConfig{
			OutputRetention:  v.GetDuration("OUTPUT_RETENTION"),
			StoreMonitorSpec: v.GetString("STORE_MONITOR_SPEC"),
		},
		Limit: RateLimitConfig{
			PerMinute: v.GetInt("GENERATE_RATE_PER_MINUTE"),
			Burst:     v.GetInt("GENERATE_BURST"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate 只校验枚举值，凭据缺失不算错误
func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMongo, StoreDriverPostgres:
	default:
		return fmt.Errorf("不支持的 STORE_DRIVER: %s", c.Store.Driver)
	}

	switch c.Image.Backend {
	case ImageBackendVertex, ImageBackendGeminiREST:
	default:
		return fmt.Errorf("不支持的 IMAGE_BACKEND: %s", c.Image.Backend)
	}

	switch c.Storage.Provider {
	case StorageProviderLocal, StorageProviderS3:
	default:
		return fmt.Errorf("不支持的 STORAGE_PROVIDER: %s", c.Storage.Provider)
	}

	return nil
}

// MissingCredentials 返回缺失的关键配置项，用于启动时告警
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.Text.APIKey == "" {
		missing = append(missing, "GENAI_API_KEY")
	}
	switch c.Image.Backend {
	case ImageBackendVertex:
		if c.Image.ProjectID == "" {
			missing = append(missing, "PROJECT_ID")
		}
		if c.Image.Location == "" {
			missing = append(missing, "LOCATION")
		}
		if c.Image.CredentialsFile == "" {
			missing = append(missing, "GOOGLE_APPLICATION_CREDENTIALS")
		}
	}
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Store.MongoURL == "" {
			missing = append(missing, "MONGODB_URL")
		}
	case StoreDriverPostgres:
		if c.Store.PostgresDSN == "" {
			missing = append(missing, "POSTGRES_DSN")
		}
	}
	if c.Storage.Provider == StorageProviderS3 && c.Storage.Bucket == "" {
		missing = append(missing, "AWS_BUCKET")
	}
	return missing
}
