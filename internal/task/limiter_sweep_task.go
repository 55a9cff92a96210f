package task

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"text_image_api_202610/internal/middleware"
)

const (
	limiterSweepSpec = "0 */10 * * * *"
	limiterIdleTTL   = 30 * time.Minute
)

// LimiterSweepTask 回收空闲客户端的令牌桶
type LimiterSweepTask struct {
	limiter *middleware.ClientRateLimiter
	Cron    *cron.Cron
	log     *zap.Logger
}

func NewLimiterSweepTask(limiter *middleware.ClientRateLimiter, log *zap.Logger) *LimiterSweepTask {
	if log == nil {
		log = zap.NewNop()
	}
	return &LimiterSweepTask{
		limiter: limiter,
		Cron:    cron.New(cron.WithSeconds()),
		log:     log.Named("limiter_sweep"),
	}
}

func (t *LimiterSweepTask) Name() string {
	return "limiter_sweep"
}

// Start 未启用限流时不启动
func (t *LimiterSweepTask) Start() error {
	if t.limiter == nil {
		return nil
	}

	_, err := t.Cron.AddFunc(limiterSweepSpec, func() {
		if n := t.limiter.Sweep(limiterIdleTTL); n > 0 {
			t.log.Debug("已回收空闲令牌桶", zap.Int("removed", n))
		}
	})
	if err != nil {
		return err
	}

	t.Cron.Start()
	return nil
}

func (t *LimiterSweepTask) Stop() {
	<-t.Cron.Stop().Done()
}
