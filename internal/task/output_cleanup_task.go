package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"text_image_api_202610/internal/service"
)

// DefaultOutputCleanupSpec 每小时第 0 分执行
const DefaultOutputCleanupSpec = "0 0 * * * *"

// OutputCleanupTask 清理超过保留期的生成图片
type OutputCleanupTask struct {
	storage   service.StorageProvider
	retention time.Duration
	spec      string
	Cron      *cron.Cron
	log       *zap.Logger
	now       func() time.Time
}

func NewOutputCleanupTask(storage service.StorageProvider, retention time.Duration, log *zap.Logger) *OutputCleanupTask {
	if log == nil {
		log = zap.NewNop()
	}
	return &OutputCleanupTask{
		storage:   storage,
		retention: retention,
		spec:      DefaultOutputCleanupSpec,
		Cron:      cron.New(cron.WithSeconds()),
		log:       log.Named("output_cleanup"),
		now:       time.Now,
	}
}

func (t *OutputCleanupTask) Name() string {
	return "output_cleanup"
}

// Start 注册定时清理，retention <= 0 时不启动
func (t *OutputCleanupTask) Start() error {
	if t.retention <= 0 {
		t.log.Info("保留期为 0，跳过图片清理任务")
		return nil
	}

	_, err := t.Cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.Execute(ctx)
	})
	if err != nil {
		return err
	}

	t.Cron.Start()
	t.log.Info("图片清理任务已启动", zap.String("spec", t.spec), zap.Duration("retention", t.retention))
	return nil
}

func (t *OutputCleanupTask) Stop() {
	<-t.Cron.Stop().Done()
}

// Execute 删除修改时间早于 now-retention 的图片，返回删除数量
func (t *OutputCleanupTask) Execute(ctx context.Context) int {
	objects, err := t.storage.List(ctx)
	if err != nil {
		t.log.Warn("列出图片失败", zap.Error(err))
		return 0
	}

	cutoff := t.now().Add(-t.retention)
	removed := 0
	for _, obj := range objects {
		if ctx.Err() != nil {
			break
		}
		if !obj.ModTime.Before(cutoff) {
			continue
		}
		if err := t.storage.Delete(ctx, obj.URL); err != nil {
			t.log.Warn("删除图片失败", zap.String("url", obj.URL), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		t.log.Info("已清理过期图片", zap.Int("removed", removed), zap.Int("scanned", len(objects)))
	}
	return removed
}
