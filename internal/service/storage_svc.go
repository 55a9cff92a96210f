package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ==================== 接口定义 ====================

// StoredObject 已落盘的图片
type StoredObject struct {
	Name    string
	URL     string
	ModTime time.Time
}

// StorageProvider 存储提供者接口
type StorageProvider interface {
	// Upload 按给定名称写入，返回访问地址
	Upload(ctx context.Context, data []byte, name string, contentType string) (url string, err error)

	// List 列出全部已存图片
	List(ctx context.Context) ([]StoredObject, error)

	// Delete 删除文件
	Delete(ctx context.Context, url string) error
}

// ==================== 配置 ====================

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type StorageConfig struct {
	Provider  string // "local" | "s3"
	StaticDir string // 本地目录
	URLPrefix string // 本地访问前缀
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 自定义端点 (MinIO / 腾讯云COS 等 S3 兼容存储)
	CDNDomain string // CDN域名 (可选)
	BasePath  string // S3 key 前缀
}

// ==================== 工厂方法 ====================

func NewStorageProvider(ctx context.Context, cfg *StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case StorageS3:
		return NewS3Storage(ctx, cfg)
	case StorageLocal, "":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== 文件名 ====================

// DefaultFilename 请求未指定文件名时使用
const DefaultFilename = "generated_image.png"

// SanitizeFilename 去掉目录部分，只保留文件名
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." || base == "" {
		return DefaultFilename
	}
	return base
}

// ScopedFilename 生成请求级唯一文件名: <stem>_<uuid8><ext>
// 并发请求即使文件名相同也不会互相覆盖
func ScopedFilename(name string) string {
	base := SanitizeFilename(name)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".png"
	}
	if stem == "" {
		stem = "image"
	}
	return fmt.Sprintf("%s_%s%s", stem, uuid.New().String()[:8], ext)
}

// ==================== 本地存储 ====================

type LocalStorage struct {
	dir       string
	urlPrefix string
}

func NewLocalStorage(cfg *StorageConfig) (*LocalStorage, error) {
	dir := cfg.StaticDir
	if dir == "" {
		dir = "static"
	}
	urlPrefix := strings.TrimSuffix(cfg.URLPrefix, "/")
	if urlPrefix == "" {
		urlPrefix = "/static"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %v", err)
	}

	return &LocalStorage{dir: dir, urlPrefix: urlPrefix}, nil
}

// Dir 本地输出目录
func (s *LocalStorage) Dir() string {
	return s.dir
}

// URLPrefix 本地访问前缀
func (s *LocalStorage) URLPrefix() string {
	return s.urlPrefix
}

func (s *LocalStorage) Upload(ctx context.Context, data []byte, name string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = SanitizeFilename(name)
	target := filepath.Join(s.dir, name)

	// 先写临时文件再改名，读方不会看到半张图
	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("创建临时文件失败: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("写入图片失败: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("写入图片失败: %v", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("保存图片失败: %v", err)
	}

	return s.urlPrefix + "/" + name, nil
}

func (s *LocalStorage) List(ctx context.Context) ([]StoredObject, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("读取输出目录失败: %v", err)
	}

	objects := make([]StoredObject, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		objects = append(objects, StoredObject{
			Name:    entry.Name(),
			URL:     s.urlPrefix + "/" + entry.Name(),
			ModTime: info.ModTime(),
		})
	}
	return objects, nil
}

func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	name := strings.TrimPrefix(url, s.urlPrefix+"/")
	if name == "" || name != SanitizeFilename(name) {
		return fmt.Errorf("无法解析文件路径: %s", url)
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	cdnDomain string
	basePath  string
	now       func() time.Time
}

func NewS3Storage(ctx context.Context, cfg *StorageConfig) (*S3Storage, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3StorageWithClient(client, cfg), nil
}

func newS3StorageWithClient(client *s3.Client, cfg *StorageConfig) *S3Storage {
	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		cdnDomain: cfg.CDNDomain,
		basePath:  strings.Trim(cfg.BasePath, "/"),
		now:       time.Now,
	}
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, name string, contentType string) (string, error) {
	key := s.generateKey(name)

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}

	return s.getPublicURL(key), nil
}

func (s *S3Storage) List(ctx context.Context) ([]StoredObject, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}
	if s.basePath != "" {
		input.Prefix = aws.String(s.basePath + "/")
	}

	var objects []StoredObject
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("列出S3对象失败: %v", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			objects = append(objects, StoredObject{
				Name:    path.Base(key),
				URL:     s.getPublicURL(key),
				ModTime: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := s.extractKey(url)
	if key == "" {
		return fmt.Errorf("无法解析文件路径")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) generateKey(name string) string {
	datePath := s.now().UTC().Format("2006/01/02")
	name = SanitizeFilename(name)
	if s.basePath != "" {
		return fmt.Sprintf("%s/%s/%s", s.basePath, datePath, name)
	}
	return fmt.Sprintf("%s/%s", datePath, name)
}

func (s *S3Storage) urlPrefix() string {
	switch {
	case s.cdnDomain != "":
		return fmt.Sprintf("https://%s/", s.cdnDomain)
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/", s.endpoint, s.bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	}
}

func (s *S3Storage) getPublicURL(key string) string {
	return s.urlPrefix() + key
}

func (s *S3Storage) extractKey(url string) string {
	prefix := s.urlPrefix()
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
