package task

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/internal/repository"
	"storefront_dev_v1_202601/internal/service"
	"storefront_dev_v1_202601/pkg/logger"
)

// ==================== CatalogSyncTask 目录同步任务 ====================

// CatalogSyncTask 目录快照同步定时任务
// 定期全量拉取外部目录写入快照表，目录接口抖动时页面用快照兜底。
// 同步是尽力而为的：失败只记日志，老快照继续服务
type CatalogSyncTask struct {
	catalogService *service.CatalogService
	snapRepo       repository.ProductSnapshotRepository
	cron           *cron.Cron

	// 防止上一轮还没跑完下一轮又进来
	mu      sync.Mutex
	running bool

	timeout time.Duration
}

// NewCatalogSyncTask 创建目录同步任务
func NewCatalogSyncTask(
	catalogService *service.CatalogService,
	snapRepo repository.ProductSnapshotRepository,
) *CatalogSyncTask {
	return &CatalogSyncTask{
		catalogService: catalogService,
		snapRepo:       snapRepo,
		cron:           cron.New(cron.WithSeconds()),
		timeout:        2 * time.Minute,
	}
}

// Start 按 spec 启动定时同步，并立刻先跑一轮
// spec: 带秒的 cron 表达式，如 "0 */30 * * * *"
func (t *CatalogSyncTask) Start(spec string) error {
	if _, err := t.cron.AddFunc(spec, t.runOnce); err != nil {
		return err
	}
	t.cron.Start()

	// 启动先同步一次，冷库也能马上有兜底数据
	go t.runOnce()

	logger.L().Info("目录同步任务已启动", zap.String("spec", spec))
	return nil
}

// Stop 停止任务，等当前一轮跑完
func (t *CatalogSyncTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	logger.L().Info("目录同步任务已停止")
}

// runOnce 执行一轮全量同步
func (t *CatalogSyncTask) runOnce() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		logger.L().Warn("上一轮目录同步还在执行，本轮跳过")
		return
	}
	t.running = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if err := t.SyncOnce(ctx); err != nil {
		logger.L().Warn("目录同步失败，保留旧快照", zap.Error(err))
	}
}

// SyncOnce 同步一轮：拉全量 -> UPSERT 快照 -> 清理下架商品 -> 失效列表缓存
func (t *CatalogSyncTask) SyncOnce(ctx context.Context) error {
	start := time.Now()

	products, err := t.catalogService.FetchProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		// 空结果大概率是目录侧异常，不能把快照表清成空的
		logger.L().Warn("目录返回空列表，跳过本轮快照写入")
		return nil
	}

	now := time.Now()
	snapshots := make([]model.ProductSnapshot, 0, len(products))
	keepIDs := make([]int64, 0, len(products))
	for i := range products {
		snapshots = append(snapshots, service.ToSnapshot(&products[i], now))
		keepIDs = append(keepIDs, products[i].ID)
	}

	if err := t.snapRepo.BatchUpsert(ctx, snapshots); err != nil {
		return err
	}
	if err := t.snapRepo.DeleteMissing(ctx, keepIDs); err != nil {
		return err
	}

	// 快照更新完让列表缓存失效，下一次读取拿新数据
	t.catalogService.InvalidateCache()

	logger.L().Info("目录同步完成",
		zap.Int("count", len(snapshots)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
