package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"text_image_api_202610/internal/config"
	"text_image_api_202610/internal/controller"
	"text_image_api_202610/internal/middleware"
	"text_image_api_202610/internal/model"
	"text_image_api_202610/internal/provider"
	"text_image_api_202610/internal/repository"
	"text_image_api_202610/internal/router"
	"text_image_api_202610/internal/service"
	"text_image_api_202610/internal/task"
	"text_image_api_202610/pkg/database"
)

// ==================== 依赖容器 ====================

// App 进程级依赖容器
type App struct {
	Config *config.Config
	Log    *zap.Logger

	Repo       repository.GenerationRepository
	TextModel  provider.TextModel
	ImageModel provider.ImageModel
	Storage    service.StorageProvider

	Prompts    *service.PromptService
	Images     *service.ImageService
	History    *service.HistoryService
	Generation *service.GenerationService

	Limiter *middleware.ClientRateLimiter
	Router  *gin.Engine
	Tasks   *task.TaskManager
}

// New 按配置组装所有依赖
// 外部依赖不可用时降级，不返回错误；只有本地输出目录无法创建时失败
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	app := &App{Config: cfg, Log: log}

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		log.Warn("缺少配置项，相关功能将在调用时失败", zap.Strings("missing", missing))
	}

	// -------- 存储层 --------
	app.Repo = openStore(ctx, cfg.Store, log)

	storage, err := initStorage(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	app.Storage = storage

	// -------- 模型 --------
	app.TextModel = initTextModel(ctx, cfg.Text, log)
	app.ImageModel = initImageModel(ctx, cfg.Image, log)

	// -------- 服务层 --------
	app.Prompts = service.NewPromptService(app.TextModel)
	app.Images = service.NewImageService(app.ImageModel, app.Storage, log)
	app.History = service.NewHistoryService(app.Repo, log)
	app.Generation = service.NewGenerationService(app.Prompts, app.Images, app.History, log)

	// -------- HTTP --------
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	app.Limiter = middleware.NewClientRateLimiter(cfg.Limit.PerMinute, cfg.Limit.Burst)

	routerOpts := router.Options{}
	if local, ok := app.Storage.(*service.LocalStorage); ok {
		routerOpts.StaticDir = local.Dir()
		routerOpts.StaticURL = local.URLPrefix()
	}
	gc := controller.NewGenerationController(app.Generation, app.History, log)
	app.Router = router.SetupRouter(log, gc, app.Limiter, routerOpts)

	// -------- 定时任务 --------
	app.Tasks = task.NewTaskManager(log,
		task.NewOutputCleanupTask(app.Storage, cfg.Task.OutputRetention, log),
		task.NewStoreMonitorTask(app.History, cfg.Task.StoreMonitorSpec, log),
		task.NewLimiterSweepTask(app.Limiter, log),
	)

	return app, nil
}

// Close 释放模型客户端和存储连接
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.TextModel != nil {
		if err := a.TextModel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("关闭文本模型失败: %w", err))
		}
	}
	if a.Repo != nil {
		if err := a.Repo.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("关闭记录存储失败: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ==================== 初始化函数 ====================

// openStore 连接记录存储，无法创建客户端时返回不可用占位
func openStore(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) repository.GenerationRepository {
	switch cfg.Driver {
	case config.StoreDriverPostgres:
		if cfg.PostgresDSN == "" {
			return repository.NewUnavailableGenerationRepository(errors.New("POSTGRES_DSN 未配置"))
		}
		db, err := database.InitDB(cfg.PostgresDSN, database.DefaultPostgresOptions(), &model.GenerationLog{})
		if err != nil {
			log.Warn("Postgres 不可用，历史记录功能关闭", zap.Error(err))
			return repository.NewUnavailableGenerationRepository(err)
		}
		log.Info("已连接 Postgres")
		return repository.NewGormGenerationRepository(db)

	default:
		if cfg.MongoURL == "" {
			return repository.NewUnavailableGenerationRepository(errors.New("MONGODB_URL 未配置"))
		}
		client, err := database.ConnectMongo(cfg.MongoURL, database.MongoOptions{
			AppName:        "text-image-api",
			ConnectTimeout: cfg.PingTimeout,
		})
		if err != nil {
			log.Warn("MongoDB 不可用，历史记录功能关闭", zap.Error(err))
			return repository.NewUnavailableGenerationRepository(err)
		}

		// 启动检查失败只告警，保留客户端，驱动在 Mongo 恢复后自动重连
		pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
		if err := database.PingMongo(pingCtx, client); err != nil {
			log.Warn("MongoDB 启动检查失败", zap.Error(err))
		} else {
			log.Info("已连接 MongoDB", zap.String("database", cfg.Database), zap.String("collection", cfg.Collection))
		}
		return repository.NewMongoGenerationRepository(client, cfg.Database, cfg.Collection)
	}
}

// initStorage S3 初始化失败时退回本地目录
func initStorage(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (service.StorageProvider, error) {
	storageCfg := &service.StorageConfig{
		Provider:  cfg.Provider,
		StaticDir: cfg.StaticDir,
		URLPrefix: cfg.URLPrefix,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Endpoint:  cfg.Endpoint,
		CDNDomain: cfg.CDNDomain,
		BasePath:  cfg.BasePath,
	}

	storage, err := service.NewStorageProvider(ctx, storageCfg)
	if err == nil {
		return storage, nil
	}
	if cfg.Provider != service.StorageS3 {
		return nil, err
	}

	log.Warn("S3 存储初始化失败，改用本地目录", zap.Error(err), zap.String("dir", cfg.StaticDir))
	storageCfg.Provider = service.StorageLocal
	return service.NewStorageProvider(ctx, storageCfg)
}

func initTextModel(ctx context.Context, cfg config.TextModelConfig, log *zap.Logger) provider.TextModel {
	m, err := provider.NewGeminiTextModel(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		log.Warn("文本模型初始化失败", zap.String("model", cfg.Model), zap.Error(err))
		return provider.NewUnconfiguredTextModel(cfg.Model, "GENAI_API_KEY")
	}
	return m
}

func initImageModel(ctx context.Context, cfg config.ImageModelConfig, log *zap.Logger) provider.ImageModel {
	if cfg.Backend == config.ImageBackendGeminiREST {
		return provider.NewRESTImageModel(provider.RESTImageConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	}

	m, err := provider.NewVertexImageModel(ctx, provider.VertexImageConfig{
		Model:           cfg.Model,
		ProjectID:       cfg.ProjectID,
		Location:        cfg.Location,
		CredentialsFile: cfg.CredentialsFile,
	})
	if err != nil {
		log.Warn("Vertex AI 初始化失败", zap.String("model", cfg.Model), zap.Error(err))
		return provider.NewUnconfiguredImageModel(cfg.Model, "GOOGLE_APPLICATION_CREDENTIALS")
	}
	return m
}
