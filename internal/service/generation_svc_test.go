package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"text_image_api_202610/internal/model"
	"text_image_api_202610/internal/provider"
	"text_image_api_202610/internal/provider/mocks"
	"text_image_api_202610/internal/repository"
	repomocks "text_image_api_202610/internal/repository/mocks"
)

type generationFixture struct {
	text  *mocks.MockTextModel
	image *mocks.MockImageModel
	repo  *repomocks.MockGenerationRepository
	svc   *GenerationService
}

func newGenerationFixture(t *testing.T) *generationFixture {
	ctrl := gomock.NewController(t)
	f := &generationFixture{
		text:  mocks.NewMockTextModel(ctrl),
		image: mocks.NewMockImageModel(ctrl),
		repo:  repomocks.NewMockGenerationRepository(ctrl),
	}
	f.text.EXPECT().Name().Return("gemma-3n-e4b-it").AnyTimes()
	f.image.EXPECT().Name().Return("imagen-3.0-generate-002").AnyTimes()

	storage, _ := newLocalStorageForTest(t)
	f.svc = NewGenerationService(
		NewPromptService(f.text),
		NewImageService(f.image, storage, nil),
		NewHistoryService(f.repo, nil),
		nil,
	)
	return f
}

func TestGenerationService_Generate(t *testing.T) {
	f := newGenerationFixture(t)

	f.text.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("  A misty harbor.  ", nil)
	f.image.EXPECT().Generate(gomock.Any(), "A misty harbor.").
		Return(&provider.GeneratedImage{Data: []byte("png"), MimeType: "image/png"}, nil)

	var saved *model.GenerationRecord
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *model.GenerationRecord) (string, error) {
			saved = rec
			return "rec-1", nil
		}).
		Times(1)

	start := time.Now().UTC()
	out, err := f.svc.Generate(context.Background(), GenerateInput{Title: "Harbor", Tags: []string{"mist"}})
	end := time.Now().UTC()
	require.NoError(t, err)

	assert.Equal(t, "A misty harbor.", out.Prompt)
	assert.Equal(t, []byte("png"), out.Image.Data)
	assert.True(t, out.Record.Saved)
	assert.Equal(t, "rec-1", out.Record.ID)

	require.NotNil(t, saved)
	assert.Equal(t, model.GenerationStatusCompleted, saved.Status)
	assert.Equal(t, "Harbor", saved.Title)
	assert.Equal(t, []string{"mist"}, saved.Tags)
	assert.Equal(t, DefaultFilename, saved.Filename)
	assert.Equal(t, "A misty harbor.", saved.GeneratedPrompt)
	assert.Equal(t, out.Image.URL, saved.ImageURL)
	assert.Equal(t, "gemma-3n-e4b-it", saved.TextModel)
	assert.Equal(t, "imagen-3.0-generate-002", saved.ImageModel)
	assert.False(t, saved.CreatedAt.Before(start), "created_at 不应早于请求开始")
	assert.False(t, saved.CreatedAt.After(end), "created_at 不应晚于请求结束")
}

func TestGenerationService_PromptFailure(t *testing.T) {
	f := newGenerationFixture(t)

	f.text.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("deadline exceeded"))
	f.image.EXPECT().Generate(gomock.Any(), gomock.Any()).Times(0)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.svc.Generate(context.Background(), GenerateInput{Title: "x"})

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StagePrompt, stageErr.Stage)
	assert.Contains(t, err.Error(), "deadline exceeded")
}

func TestGenerationService_ImageVendorFailure(t *testing.T) {
	f := newGenerationFixture(t)

	f.text.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("prompt", nil)
	f.image.EXPECT().Generate(gomock.Any(), "prompt").
		Return(nil, &provider.VendorError{Provider: "vertex", Code: 429, Message: "Quota exceeded"})
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.svc.Generate(context.Background(), GenerateInput{Title: "x"})

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageImage, stageErr.Stage)

	var vendorErr *provider.VendorError
	require.True(t, errors.As(err, &vendorErr), "服务商错误分类必须穿透 StageError")
	assert.Equal(t, "Quota exceeded", vendorErr.Message)
}

func TestGenerationService_StoreUnavailable(t *testing.T) {
	f := newGenerationFixture(t)

	f.text.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("prompt", nil)
	f.image.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(&provider.GeneratedImage{Data: []byte("png")}, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", repository.ErrStoreUnavailable).Times(1)

	out, err := f.svc.Generate(context.Background(), GenerateInput{Title: "x", Filename: "../f.png"})
	require.NoError(t, err, "存储失败不影响生成结果")

	assert.False(t, out.Record.Saved)
	assert.ErrorIs(t, out.Record.Err, repository.ErrStoreUnavailable)
	assert.Equal(t, []byte("png"), out.Image.Data)
	assert.Regexp(t, `^f_[0-9a-f]{8}\.png$`, out.Image.StoredName)
}

func TestStageError(t *testing.T) {
	inner := errors.New("boom")
	err := &StageError{Stage: StageImage, Err: inner}

	assert.Equal(t, "image stage: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}
