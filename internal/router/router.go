package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"text_image_api_202610/internal/controller"
	"text_image_api_202610/internal/middleware"

	_ "text_image_api_202610/docs"
)

// Options 路由可选项
type Options struct {
	// StaticDir 非空时以 StaticURL 对外提供本地图片
	StaticDir string
	StaticURL string
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(log *zap.Logger, gc *controller.GenerationController, limiter *middleware.ClientRateLimiter, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))

	// 1. 心跳
	r.GET("/", gc.Root)

	// 2. Swagger 文档路由
	// 访问 http://localhost:8000/docs/index.html 即可查看
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 3. 本地图片
	if opts.StaticDir != "" {
		staticURL := opts.StaticURL
		if staticURL == "" {
			staticURL = "/static"
		}
		r.Static(staticURL, opts.StaticDir)
	}

	// 4. API 路由组
	api := r.Group("/api/v1")
	{
		images := api.Group("/images")
		{
			// POST /api/v1/images/generate
			images.POST("/generate", middleware.RateLimit(limiter), gc.Generate)
		}

		// GET /api/v1/history?limit=50
		api.GET("/history", gc.History)
	}

	return r
}
