package task

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Task 后台定时任务
type Task interface {
	Name() string
	Start() error
	Stop()
}

// ==================== TaskManager 任务管理器 ====================

// TaskManager 统一启动和停止后台任务
type TaskManager struct {
	tasks   []Task
	started []Task
	log     *zap.Logger
}

// NewTaskManager 创建任务管理器，nil 任务会被忽略
func NewTaskManager(log *zap.Logger, tasks ...Task) *TaskManager {
	if log == nil {
		log = zap.NewNop()
	}
	tm := &TaskManager{log: log}
	for _, t := range tasks {
		if t != nil {
			tm.tasks = append(tm.tasks, t)
		}
	}
	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务，单个任务失败不影响其他任务
func (tm *TaskManager) Start() error {
	var errs []error
	for _, t := range tm.tasks {
		if err := t.Start(); err != nil {
			tm.log.Error("任务启动失败", zap.String("task", t.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
			continue
		}
		tm.started = append(tm.started, t)
	}

	tm.log.Info("后台任务已启动", zap.Int("count", len(tm.started)))
	return errors.Join(errs...)
}

// Stop 按启动的逆序停止任务，等待正在执行的任务结束
func (tm *TaskManager) Stop() {
	for i := len(tm.started) - 1; i >= 0; i-- {
		tm.started[i].Stop()
	}
	tm.started = nil
	tm.log.Info("后台任务已全部停止")
}
