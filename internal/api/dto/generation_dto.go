package dto

import "text_image_api_202610/internal/model"

// ==================== 请求 DTO ====================

// GenerateImageReq 生成图片请求
// title 和 tags 不能缺失；空字符串和空数组不做校验
type GenerateImageReq struct {
	Title    *string  `json:"title" binding:"required" example:"Desert Wanderer"`
	Tags     []string `json:"tags" binding:"required" example:"solitary figure,golden dunes,twilight"`
	Filename string   `json:"filename,omitempty" example:"generated_image.png"`
}

// ListHistoryReq 历史记录查询
type ListHistoryReq struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// ==================== 响应 DTO ====================

// RootResp 服务心跳
type RootResp struct {
	Status   string `json:"status" example:"running"`
	Docs     string `json:"docs" example:"/docs/index.html"`
	ImageAPI string `json:"image_api" example:"/api/v1/images/"`
	Database string `json:"database" example:"connected"`
}

// HistoryResp 历史记录列表
type HistoryResp struct {
	History []model.GenerationRecord `json:"history"`
}

// ErrorResp 错误响应
type ErrorResp struct {
	Detail string `json:"detail" example:"Google API error: Quota exceeded"`
}
