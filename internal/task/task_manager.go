package task

import (
	"storefront_dev_v1_202601/pkg/logger"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台定时任务
// 目前只有目录同步一个任务，保留管理器结构方便后续扩展
type TaskManager struct {
	catalogTask *CatalogSyncTask
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	CatalogEnabled bool
	CatalogSpec    string // cron 表达式 (带秒)
}

// NewTaskManager 创建任务管理器
func NewTaskManager(catalogTask *CatalogSyncTask) *TaskManager {
	return &TaskManager{catalogTask: catalogTask}
}

// Start 启动所有启用的任务
func (tm *TaskManager) Start(cfg *TaskManagerConfig) error {
	if cfg.CatalogEnabled {
		if err := tm.catalogTask.Start(cfg.CatalogSpec); err != nil {
			return err
		}
	} else {
		logger.L().Info("目录同步任务未启用")
	}
	return nil
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	if tm.catalogTask != nil {
		tm.catalogTask.Stop()
	}
}
