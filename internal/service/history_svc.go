package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"text_image_api_202610/internal/model"
	"text_image_api_202610/internal/repository"
)

const (
	StoreStatusConnected    = "connected"
	StoreStatusDisconnected = "disconnected"
)

// SaveRecordInput 待保存的生成信息
type SaveRecordInput struct {
	Title           string
	Tags            []string
	Filename        string
	ImageURL        string
	GeneratedPrompt string
	TextModel       string
	ImageModel      string
}

// SaveResult 保存结果
// 保存失败不影响请求，调用方据此决定是否返回记录 ID
type SaveResult struct {
	ID    string
	Saved bool
	Err   error
}

// HistoryService 生成记录读写
// 所有存储错误在这里记录日志并吞掉
type HistoryService struct {
	repo repository.GenerationRepository
	log  *zap.Logger
	now  func() time.Time
}

// NewHistoryService 创建历史记录服务
func NewHistoryService(repo repository.GenerationRepository, log *zap.Logger) *HistoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &HistoryService{repo: repo, log: log, now: time.Now}
}

// SaveRecord 追加一条 completed 记录，created_at 取当前 UTC 时间
func (s *HistoryService) SaveRecord(ctx context.Context, in SaveRecordInput) (result SaveResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("保存生成记录 panic", zap.Any("panic", r))
			result = SaveResult{Err: fmt.Errorf("保存生成记录 panic: %v", r)}
		}
	}()

	record := &model.GenerationRecord{
		Title:           in.Title,
		Tags:            in.Tags,
		Filename:        in.Filename,
		ImageURL:        in.ImageURL,
		GeneratedPrompt: in.GeneratedPrompt,
		TextModel:       in.TextModel,
		ImageModel:      in.ImageModel,
		CreatedAt:       s.now().UTC(),
		Status:          model.GenerationStatusCompleted,
	}

	id, err := s.repo.Create(ctx, record)
	if err != nil {
		s.log.Warn("保存生成记录失败", zap.String("title", in.Title), zap.Error(err))
		return SaveResult{Err: err}
	}

	return SaveResult{ID: id, Saved: true}
}

// ListRecent 按时间倒序返回最近记录，limit <= 0 时取默认值
// 失败时返回空列表
func (s *HistoryService) ListRecent(ctx context.Context, limit int) []model.GenerationRecord {
	if limit <= 0 {
		limit = repository.DefaultHistoryLimit
	}

	records, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.log.Warn("查询生成记录失败", zap.Int("limit", limit), zap.Error(err))
		return []model.GenerationRecord{}
	}
	if records == nil {
		return []model.GenerationRecord{}
	}
	return records
}

// Status 存储连通状态
func (s *HistoryService) Status(ctx context.Context) string {
	if err := s.repo.Ping(ctx); err != nil {
		return StoreStatusDisconnected
	}
	return StoreStatusConnected
}

// Ping 存储连通性检查，返回原始错误
func (s *HistoryService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
