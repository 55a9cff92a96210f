package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ==================== 阶段 ====================

const (
	StagePrompt = "prompt"
	StageImage  = "image"
)

// StageError 标记失败发生在哪个阶段
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ==================== 编排 ====================

// GenerateInput 一次生成请求
type GenerateInput struct {
	Title    string
	Tags     []string
	Filename string
}

// GenerateOutput 生成结果
type GenerateOutput struct {
	Prompt string
	Image  *SynthesizedImage
	Record SaveResult
}

// GenerationService 请求编排: 扩写提示词 -> 生成图片 -> 保存记录
type GenerationService struct {
	prompts *PromptService
	images  *ImageService
	history *HistoryService
	log     *zap.Logger
}

// NewGenerationService 创建编排服务
func NewGenerationService(prompts *PromptService, images *ImageService, history *HistoryService, log *zap.Logger) *GenerationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GenerationService{prompts: prompts, images: images, history: history, log: log}
}

// Generate 顺序执行三个阶段
// 前两个阶段失败直接返回；保存失败不影响结果，只体现在 Record 中
func (s *GenerationService) Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error) {
	filename := in.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	filename = SanitizeFilename(filename)

	prompt, err := s.prompts.Synthesize(ctx, in.Title, in.Tags)
	if err != nil {
		return nil, &StageError{Stage: StagePrompt, Err: err}
	}
	s.log.Info("提示词已生成", zap.String("title", in.Title), zap.Int("prompt_len", len(prompt)))

	img, err := s.images.Synthesize(ctx, prompt, filename)
	if err != nil {
		return nil, &StageError{Stage: StageImage, Err: err}
	}

	record := s.history.SaveRecord(ctx, SaveRecordInput{
		Title:           in.Title,
		Tags:            in.Tags,
		Filename:        filename,
		ImageURL:        img.URL,
		GeneratedPrompt: prompt,
		TextModel:       s.prompts.ModelName(),
		ImageModel:      s.images.ModelName(),
	})
	if !record.Saved {
		s.log.Warn("生成成功但记录未保存", zap.String("stored_name", img.StoredName), zap.Error(record.Err))
	}

	return &GenerateOutput{Prompt: prompt, Image: img, Record: record}, nil
}
