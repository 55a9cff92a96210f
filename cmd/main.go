package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"text_image_api_202610/internal/bootstrap"
	"text_image_api_202610/internal/config"
	"text_image_api_202610/internal/service"
	"text_image_api_202610/pkg/logger"
)

// @title Text-to-Image API
// @version 1.0
// @description 标题+标签 → 文本模型扩写提示词 → 图片模型出图
// @BasePath /
func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp 命令行定义
func newApp() *cli.App {
	return &cli.App{
		Name:  "text-image-api",
		Usage: "标题和标签生成图片的 HTTP 服务",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Value:   ".env",
				Usage:   "配置文件路径，不存在时只读环境变量",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "启动 HTTP 服务 (默认)",
				Action: serve,
			},
			{
				Name:  "generate",
				Usage: "生成一张图片并打印存储地址",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringSliceFlag{Name: "tag", Usage: "可重复指定"},
					&cli.StringFlag{Name: "filename", Value: service.DefaultFilename},
				},
				Action: generate,
			},
			{
				Name:  "history",
				Usage: "以 JSON 打印最近的生成记录",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 50},
				},
				Action: history,
			},
		},
	}
}

// ==================== 初始化 ====================

// setup 读取配置、创建日志并组装依赖
func setup(c *cli.Context) (*bootstrap.App, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	return bootstrap.New(c.Context, cfg, log)
}

// ==================== 命令 ====================

// serve 启动服务和定时任务，收到退出信号后优雅关闭
func serve(c *cli.Context) error {
	app, err := setup(c)
	if err != nil {
		return err
	}
	log := app.Log
	defer log.Sync()

	if err := app.Tasks.Start(); err != nil {
		log.Warn("部分定时任务未启动", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + app.Config.Server.Port,
		Handler: app.Router,
	}

	// 异步启动服务
	serverErr := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
		log.Info("正在关闭服务...")
	case runErr = <-serverErr:
		log.Error("服务启动失败", zap.Error(runErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
	}
	app.Tasks.Stop()
	if err := app.Close(ctx); err != nil {
		log.Warn("释放资源失败", zap.Error(err))
	}

	log.Info("服务已退出")
	return runErr
}

// generate 命令行直接走一次生成流程
func generate(c *cli.Context) error {
	app, err := setup(c)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	out, err := app.Generation.Generate(c.Context, service.GenerateInput{
		Title:    c.String("title"),
		Tags:     c.StringSlice("tag"),
		Filename: c.String("filename"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "image_url: %s\n", out.Image.URL)
	if out.Record.Saved {
		fmt.Fprintf(c.App.Writer, "record_id: %s\n", out.Record.ID)
	}
	return nil
}

// history 打印最近记录
func history(c *cli.Context) error {
	app, err := setup(c)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
	defer cancel()

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"history": app.History.ListRecent(ctx, c.Int("limit")),
	})
}
