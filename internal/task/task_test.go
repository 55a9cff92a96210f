package task

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"text_image_api_202610/internal/middleware"
	"text_image_api_202610/internal/repository/mocks"
	"text_image_api_202610/internal/service"
)

// ==================== 测试辅助 ====================

func setupLocalStorage(t *testing.T) *service.LocalStorage {
	storage, err := service.NewLocalStorage(&service.StorageConfig{
		StaticDir: t.TempDir(),
		URLPrefix: "/static",
	})
	require.NoError(t, err)
	return storage
}

func writeImage(t *testing.T, dir, name string, modTime time.Time) {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

// ==================== OutputCleanupTask ====================

func TestOutputCleanupTask_Execute(t *testing.T) {
	storage := setupLocalStorage(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	writeImage(t, storage.Dir(), "old_1a2b3c4d.png", now.Add(-73*time.Hour))
	writeImage(t, storage.Dir(), "older_5e6f7a8b.png", now.Add(-240*time.Hour))
	writeImage(t, storage.Dir(), "fresh_9c0d1e2f.png", now.Add(-time.Hour))

	task := NewOutputCleanupTask(storage, 72*time.Hour, zap.NewNop())
	task.now = func() time.Time { return now }

	removed := task.Execute(context.Background())
	assert.Equal(t, 2, removed)

	objects, err := storage.List(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "fresh_9c0d1e2f.png", objects[0].Name)
}

func TestOutputCleanupTask_SkipsTempFiles(t *testing.T) {
	storage := setupLocalStorage(t)
	now := time.Now()

	// 正在写入的临时文件
	writeImage(t, storage.Dir(), ".cat.png.123.tmp", now.Add(-100*time.Hour))

	task := NewOutputCleanupTask(storage, time.Hour, zap.NewNop())
	assert.Equal(t, 0, task.Execute(context.Background()))

	_, err := os.Stat(filepath.Join(storage.Dir(), ".cat.png.123.tmp"))
	assert.NoError(t, err)
}

func TestOutputCleanupTask_DisabledWithZeroRetention(t *testing.T) {
	task := NewOutputCleanupTask(setupLocalStorage(t), 0, zap.NewNop())
	require.NoError(t, task.Start())
	assert.Empty(t, task.Cron.Entries())
	task.Stop()
}

func TestOutputCleanupTask_StartRegistersJob(t *testing.T) {
	task := NewOutputCleanupTask(setupLocalStorage(t), time.Hour, zap.NewNop())
	require.NoError(t, task.Start())
	defer task.Stop()

	assert.Len(t, task.Cron.Entries(), 1)
}

// ==================== StoreMonitorTask ====================

func TestStoreMonitorTask_LogsOnStatusChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGenerationRepository(ctrl)

	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	gomock.InOrder(
		repo.EXPECT().Ping(gomock.Any()).Return(nil),
		repo.EXPECT().Ping(gomock.Any()).Return(nil),
		repo.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")),
		repo.EXPECT().Ping(gomock.Any()).Return(nil),
	)

	monitor := NewStoreMonitorTask(service.NewHistoryService(repo, zap.NewNop()), "@every 1m", log)
	ctx := context.Background()

	assert.Equal(t, service.StoreStatusConnected, monitor.Execute(ctx))
	assert.Equal(t, service.StoreStatusConnected, monitor.Execute(ctx))
	assert.Equal(t, service.StoreStatusDisconnected, monitor.Execute(ctx))
	assert.Equal(t, service.StoreStatusConnected, monitor.Execute(ctx))

	// 4 次巡检，3 次状态变化
	assert.Equal(t, 3, logs.Len())
	assert.Equal(t, 1, logs.FilterMessage("记录存储不可用").Len())
}

func TestStoreMonitorTask_EmptySpecDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGenerationRepository(ctrl)

	monitor := NewStoreMonitorTask(service.NewHistoryService(repo, nil), "", nil)
	require.NoError(t, monitor.Start())
	assert.Empty(t, monitor.Cron.Entries())
	monitor.Stop()
}

func TestStoreMonitorTask_InvalidSpec(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGenerationRepository(ctrl)

	monitor := NewStoreMonitorTask(service.NewHistoryService(repo, nil), "not a cron", nil)
	assert.Error(t, monitor.Start())
}

// ==================== TaskManager ====================

type fakeTask struct {
	name     string
	startErr error
	events   *[]string
}

func (f *fakeTask) Name() string { return f.name }

func (f *fakeTask) Start() error {
	*f.events = append(*f.events, "start:"+f.name)
	return f.startErr
}

func (f *fakeTask) Stop() {
	*f.events = append(*f.events, "stop:"+f.name)
}

func TestTaskManager_StartStopOrder(t *testing.T) {
	var events []string
	tm := NewTaskManager(zap.NewNop(),
		&fakeTask{name: "a", events: &events},
		nil,
		&fakeTask{name: "b", startErr: errors.New("bad spec"), events: &events},
		&fakeTask{name: "c", events: &events},
	)

	err := tm.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b: bad spec")

	tm.Stop()
	// 启动失败的任务不需要停止
	assert.Equal(t, []string{"start:a", "start:b", "start:c", "stop:c", "stop:a"}, events)
}

func TestTaskManager_WithRealTasks(t *testing.T) {
	limiter := middleware.NewClientRateLimiter(60, 5)
	tm := NewTaskManager(zap.NewNop(),
		NewOutputCleanupTask(setupLocalStorage(t), time.Hour, nil),
		NewLimiterSweepTask(limiter, nil),
		NewLimiterSweepTask(nil, nil),
	)

	require.NoError(t, tm.Start())
	tm.Stop()
}
