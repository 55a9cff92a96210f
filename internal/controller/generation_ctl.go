package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"text_image_api_202610/internal/api/dto"
	"text_image_api_202610/internal/provider"
	"text_image_api_202610/internal/service"
)

const (
	// MaxHistoryLimit 单次查询上限
	MaxHistoryLimit = 200

	HeaderImageURL = "X-Image-URL"
	HeaderRecordID = "X-Record-ID"

	statusPingTimeout = 2 * time.Second
)

// ==================== 控制器 ====================

// GenerationController 图片生成与历史记录
type GenerationController struct {
	generation *service.GenerationService
	history    *service.HistoryService
	log        *zap.Logger
}

func NewGenerationController(generation *service.GenerationService, history *service.HistoryService, log *zap.Logger) *GenerationController {
	if log == nil {
		log = zap.NewNop()
	}
	return &GenerationController{generation: generation, history: history, log: log}
}

// ==================== API 方法 ====================

// Root 服务心跳
// @Summary 服务状态
// @Tags System
// @Produce json
// @Success 200 {object} dto.RootResp
// @Router / [get]
func (ctrl *GenerationController) Root(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statusPingTimeout)
	defer cancel()

	c.JSON(http.StatusOK, dto.RootResp{
		Status:   "running",
		Docs:     "/docs/index.html",
		ImageAPI: "/api/v1/images/",
		Database: ctrl.history.Status(ctx),
	})
}

// Generate 根据标题和标签生成图片
// @Summary 标题+标签生成图片
// @Description 先用文本模型扩写提示词，再调用图片模型，返回 PNG 字节流
// @Tags Images
// @Accept json
// @Produce png
// @Param body body dto.GenerateImageReq true "生成请求"
// @Success 200 {file} binary
// @Header 200 {string} X-Image-URL "图片存储地址"
// @Header 200 {string} X-Record-ID "生成记录ID (保存成功时)"
// @Failure 422 {object} dto.ErrorResp
// @Failure 429 {object} dto.ErrorResp
// @Failure 500 {object} dto.ErrorResp
// @Router /api/v1/images/generate [post]
func (ctrl *GenerationController) Generate(c *gin.Context) {
	var req dto.GenerateImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResp{Detail: err.Error()})
		return
	}

	out, err := ctrl.generation.Generate(c.Request.Context(), service.GenerateInput{
		Title:    *req.Title,
		Tags:     req.Tags,
		Filename: req.Filename,
	})
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	c.Header(HeaderImageURL, out.Image.URL)
	if out.Record.Saved {
		c.Header(HeaderRecordID, out.Record.ID)
	}
	c.Data(http.StatusOK, out.Image.MimeType, out.Image.Data)
}

// History 最近的生成记录
// @Summary 生成历史
// @Tags Images
// @Produce json
// @Param limit query int false "条数，默认50，最大200"
// @Success 200 {object} dto.HistoryResp
// @Failure 422 {object} dto.ErrorResp
// @Router /api/v1/history [get]
func (ctrl *GenerationController) History(c *gin.Context) {
	var req dto.ListHistoryReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResp{Detail: err.Error()})
		return
	}
	if req.Limit > MaxHistoryLimit {
		req.Limit = MaxHistoryLimit
	}

	c.JSON(http.StatusOK, dto.HistoryResp{
		History: ctrl.history.ListRecent(c.Request.Context(), req.Limit),
	})
}

// ==================== 错误映射 ====================

// fail 服务商错误和其他错误统一返回 500，detail 前缀不同
func (ctrl *GenerationController) fail(c *gin.Context, err error) {
	stage := ""
	cause := err
	var stageErr *service.StageError
	if errors.As(err, &stageErr) {
		stage = stageErr.Stage
		cause = stageErr.Err
	}

	var vendorErr *provider.VendorError
	if errors.As(err, &vendorErr) {
		ctrl.log.Error("服务商接口错误",
			zap.String("stage", stage),
			zap.String("provider", vendorErr.Provider),
			zap.Int("code", vendorErr.Code),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResp{Detail: "Google API error: " + vendorErr.Message})
		return
	}

	ctrl.log.Error("生成失败", zap.String("stage", stage), zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResp{Detail: "Processing error: " + cause.Error()})
}
