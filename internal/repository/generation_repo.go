package repository

//go:generate mockgen -source=generation_repo.go -destination=mocks/mock_generation_repo.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"gorm.io/gorm"

	"text_image_api_202610/internal/model"
	"text_image_api_202610/pkg/database"
)

// ==================== 仓储接口 ====================

// ErrStoreUnavailable 存储未连接
var ErrStoreUnavailable = errors.New("generation store unavailable")

// DefaultHistoryLimit 历史记录默认条数
const DefaultHistoryLimit = 50

// GenerationRepository 生成记录仓储接口
// 只追加、只读取，不提供修改和删除
type GenerationRepository interface {
	// Create 写入一条记录，返回存储分配的 ID
	Create(ctx context.Context, record *model.GenerationRecord) (string, error)
	// ListRecent 按 created_at 倒序返回最多 limit 条
	ListRecent(ctx context.Context, limit int) ([]model.GenerationRecord, error)
	// Ping 连通性检查
	Ping(ctx context.Context) error
	// Close 释放连接
	Close(ctx context.Context) error
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}

// ==================== Mongo 实现 ====================

type mongoGenerationRepo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoGenerationRepository 创建 Mongo 生成记录仓储
func NewMongoGenerationRepository(client *mongo.Client, dbName, collection string) GenerationRepository {
	return &mongoGenerationRepo{
		client:     client,
		collection: client.Database(dbName).Collection(collection),
	}
}

func (r *mongoGenerationRepo) Create(ctx context.Context, record *model.GenerationRecord) (string, error) {
	doc := model.NewGenerationDocument(record)
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("写入 Mongo 失败: %w", err)
	}

	switch id := res.InsertedID.(type) {
	case bson.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

func (r *mongoGenerationRepo) ListRecent(ctx context.Context, limit int) ([]model.GenerationRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(normalizeLimit(limit)))

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("查询 Mongo 失败: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []model.GenerationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("解析 Mongo 文档失败: %w", err)
	}

	records := make([]model.GenerationRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].ToRecord())
	}
	return records, nil
}

func (r *mongoGenerationRepo) Ping(ctx context.Context) error {
	return database.PingMongo(ctx, r.client)
}

func (r *mongoGenerationRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// ==================== GORM 实现 ====================

type gormGenerationRepo struct {
	db *gorm.DB
}

// NewGormGenerationRepository 创建关系库生成记录仓储 (postgres / sqlite)
func NewGormGenerationRepository(db *gorm.DB) GenerationRepository {
	return &gormGenerationRepo{db: db}
}

func (r *gormGenerationRepo) Create(ctx context.Context, record *model.GenerationRecord) (string, error) {
	row := model.NewGenerationLog(record)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", fmt.Errorf("写入生成记录失败: %w", err)
	}
	return row.ToRecord().ID, nil
}

func (r *gormGenerationRepo) ListRecent(ctx context.Context, limit int) ([]model.GenerationRecord, error) {
	var rows []model.GenerationLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(normalizeLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询生成记录失败: %w", err)
	}

	records := make([]model.GenerationRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].ToRecord())
	}
	return records, nil
}

func (r *gormGenerationRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *gormGenerationRepo) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ==================== 不可用占位 ====================

type unavailableGenerationRepo struct {
	cause error
}

// NewUnavailableGenerationRepository 启动时连不上存储时使用
// 所有操作返回 ErrStoreUnavailable，历史功能静默降级
func NewUnavailableGenerationRepository(cause error) GenerationRepository {
	return &unavailableGenerationRepo{cause: cause}
}

func (r *unavailableGenerationRepo) err() error {
	if r.cause == nil {
		return ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, r.cause)
}

func (r *unavailableGenerationRepo) Create(ctx context.Context, record *model.GenerationRecord) (string, error) {
	return "", r.err()
}

func (r *unavailableGenerationRepo) ListRecent(ctx context.Context, limit int) ([]model.GenerationRecord, error) {
	return nil, r.err()
}

func (r *unavailableGenerationRepo) Ping(ctx context.Context) error {
	return r.err()
}

func (r *unavailableGenerationRepo) Close(ctx context.Context) error {
	return nil
}
