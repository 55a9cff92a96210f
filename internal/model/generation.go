package model

import (
	"strconv"
	"time"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/datatypes"
)

// ==================== 状态常量 ====================

const (
	GenerationStatusCompleted = "completed"
)

// ==================== 领域视图 ====================

// GenerationRecord 一次成功生成的记录
// 与具体存储无关，ID 统一为字符串 (Mongo ObjectID hex / 自增主键十进制)
type GenerationRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Tags            []string  `json:"tags"`
	Filename        string    `json:"filename"`
	ImageURL        string    `json:"image_url,omitempty"`
	GeneratedPrompt string    `json:"generated_prompt"`
	TextModel       string    `json:"text_model,omitempty"`
	ImageModel      string    `json:"image_model,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	Status          string    `json:"status"`
}

// ==================== Mongo 文档 ====================

// GenerationDocument genimage_prompts 集合中的文档
type GenerationDocument struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	Title           string        `bson:"title"`
	Tags            []string      `bson:"tags"`
	Filename        string        `bson:"filename"`
	ImageURL        string        `bson:"image_url,omitempty"`
	GeneratedPrompt string        `bson:"generated_prompt"`
	TextModel       string        `bson:"text_model,omitempty"`
	ImageModel      string        `bson:"image_model,omitempty"`
	CreatedAt       time.Time     `bson:"created_at"`
	Status          string        `bson:"status"`
}

// NewGenerationDocument 由领域记录构建文档，ID 交给 Mongo 分配
func NewGenerationDocument(rec *GenerationRecord) *GenerationDocument {
	return &GenerationDocument{
		Title:           rec.Title,
		Tags:            nonNilTags(rec.Tags),
		Filename:        rec.Filename,
		ImageURL:        rec.ImageURL,
		GeneratedPrompt: rec.GeneratedPrompt,
		TextModel:       rec.TextModel,
		ImageModel:      rec.ImageModel,
		CreatedAt:       rec.CreatedAt,
		Status:          rec.Status,
	}
}

// ToRecord 转换为领域记录
func (d *GenerationDocument) ToRecord() GenerationRecord {
	rec := GenerationRecord{
		Title:           d.Title,
		Tags:            nonNilTags(d.Tags),
		Filename:        d.Filename,
		ImageURL:        d.ImageURL,
		GeneratedPrompt: d.GeneratedPrompt,
		TextModel:       d.TextModel,
		ImageModel:      d.ImageModel,
		CreatedAt:       d.CreatedAt.UTC(),
		Status:          d.Status,
	}
	if !d.ID.IsZero() {
		rec.ID = d.ID.Hex()
	}
	return rec
}

// ==================== 关系库行 ====================

// GenerationLog generation_logs 表 (postgres)
type GenerationLog struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt       time.Time         `gorm:"index;comment:生成时间(UTC)" json:"created_at"`
	Title           string            `gorm:"size:255;comment:标题" json:"title"`
	Tags            pq.StringArray    `gorm:"type:text[];comment:标签" json:"tags"`
	Filename        string            `gorm:"size:255;comment:请求文件名" json:"filename"`
	ImageURL        string            `gorm:"size:1024;comment:图片存储地址" json:"image_url"`
	GeneratedPrompt string            `gorm:"type:text;comment:扩写后的提示词" json:"generated_prompt"`
	Status          string            `gorm:"size:32;index;default:completed;comment:状态" json:"status"`
	Meta            datatypes.JSONMap `gorm:"type:jsonb;comment:模型等附加信息" json:"meta"`
}

func (GenerationLog) TableName() string {
	return "generation_logs"
}

const (
	metaKeyTextModel  = "text_model"
	metaKeyImageModel = "image_model"
)

// NewGenerationLog 由领域记录构建行
func NewGenerationLog(rec *GenerationRecord) *GenerationLog {
	meta := datatypes.JSONMap{}
	if rec.TextModel != "" {
		meta[metaKeyTextModel] = rec.TextModel
	}
	if rec.ImageModel != "" {
		meta[metaKeyImageModel] = rec.ImageModel
	}

	return &GenerationLog{
		CreatedAt:       rec.CreatedAt,
		Title:           rec.Title,
		Tags:            pq.StringArray(nonNilTags(rec.Tags)),
		Filename:        rec.Filename,
		ImageURL:        rec.ImageURL,
		GeneratedPrompt: rec.GeneratedPrompt,
		Status:          rec.Status,
		Meta:            meta,
	}
}

// ToRecord 转换为领域记录
func (l *GenerationLog) ToRecord() GenerationRecord {
	rec := GenerationRecord{
		Title:           l.Title,
		Tags:            nonNilTags(l.Tags),
		Filename:        l.Filename,
		ImageURL:        l.ImageURL,
		GeneratedPrompt: l.GeneratedPrompt,
		CreatedAt:       l.CreatedAt.UTC(),
		Status:          l.Status,
	}
	if l.ID > 0 {
		rec.ID = strconv.FormatInt(l.ID, 10)
	}
	if v, ok := l.Meta[metaKeyTextModel].(string); ok {
		rec.TextModel = v
	}
	if v, ok := l.Meta[metaKeyImageModel].(string); ok {
		rec.ImageModel = v
	}
	return rec
}

// nonNilTags 保证序列化为 [] 而不是 null
func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
