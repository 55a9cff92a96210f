package task

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"text_image_api_202610/internal/service"
)

// StoreMonitorTask 定时检查记录存储的连通性
// 只记录状态变化，不做重连
type StoreMonitorTask struct {
	history *service.HistoryService
	spec    string
	timeout time.Duration
	Cron    *cron.Cron
	log     *zap.Logger

	mu         sync.Mutex
	lastStatus string
}

func NewStoreMonitorTask(history *service.HistoryService, spec string, log *zap.Logger) *StoreMonitorTask {
	if log == nil {
		log = zap.NewNop()
	}
	return &StoreMonitorTask{
		history: history,
		spec:    spec,
		timeout: 5 * time.Second,
		Cron:    cron.New(cron.WithSeconds()),
		log:     log.Named("store_monitor"),
	}
}

func (m *StoreMonitorTask) Name() string {
	return "store_monitor"
}

// Start 注册巡检，spec 为空时不启动
func (m *StoreMonitorTask) Start() error {
	if m.spec == "" {
		return nil
	}

	_, err := m.Cron.AddFunc(m.spec, func() {
		m.Execute(context.Background())
	})
	if err != nil {
		return err
	}

	m.Cron.Start()
	m.log.Info("存储巡检任务已启动", zap.String("spec", m.spec))
	return nil
}

func (m *StoreMonitorTask) Stop() {
	<-m.Cron.Stop().Done()
}

// Execute 执行一次巡检，返回当前状态
func (m *StoreMonitorTask) Execute(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.history.Ping(ctx)
	status := service.StoreStatusConnected
	if err != nil {
		status = service.StoreStatusDisconnected
	}

	m.mu.Lock()
	changed := status != m.lastStatus
	m.lastStatus = status
	m.mu.Unlock()

	if changed {
		if err != nil {
			m.log.Warn("记录存储不可用", zap.Error(err))
		} else {
			m.log.Info("记录存储已连接")
		}
	}
	return status
}
