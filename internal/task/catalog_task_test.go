package task

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/internal/repository"
	"storefront_dev_v1_202601/internal/service"
)

// ==================== 测试辅助 ====================

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&model.ProductSnapshot{})
	return db
}

func newTaskCatalogServer(payload string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
}

func newTaskUnderTest(t *testing.T, catalogURL string, db *gorm.DB) (*CatalogSyncTask, repository.ProductSnapshotRepository) {
	snapRepo := repository.NewProductSnapshotRepository(db)
	catalogSvc := service.NewCatalogService(&service.CatalogConfig{
		BaseURL:    catalogURL,
		Timeout:    2 * time.Second,
		RetryCount: 0,
		CacheTTL:   time.Minute,
	}, snapRepo)
	return NewCatalogSyncTask(catalogSvc, snapRepo), snapRepo
}

// ==================== 同步逻辑 ====================

func TestSyncOnceWritesSnapshots(t *testing.T) {
	srv := newTaskCatalogServer(`{
		"products": [
			{"id": 1, "title": "Red Shoe", "price": 30},
			{"id": 2, "title": "Blue Hat", "price": 10}
		],
		"total": 2, "skip": 0, "limit": 30
	}`)
	defer srv.Close()

	db := setupTaskTestDB(t)
	task, snapRepo := newTaskUnderTest(t, srv.URL, db)

	if err := task.SyncOnce(context.Background()); err != nil {
		t.Fatalf("同步失败: %v", err)
	}

	count, _ := snapRepo.Count(context.Background())
	if count != 2 {
		t.Fatalf("期望写入 2 条快照，实际 %d 条", count)
	}
}

func TestSyncOnceRemovesDelistedProducts(t *testing.T) {
	db := setupTaskTestDB(t)
	snapRepo := repository.NewProductSnapshotRepository(db)

	// 先种一条已下架的旧快照
	snapRepo.BatchUpsert(context.Background(), []model.ProductSnapshot{
		{ID: 99, Title: "Old Gone", Price: 1, LastSyncAt: time.Now()},
	})

	srv := newTaskCatalogServer(`{
		"products": [{"id": 1, "title": "Red Shoe", "price": 30}],
		"total": 1, "skip": 0, "limit": 30
	}`)
	defer srv.Close()

	task, _ := newTaskUnderTest(t, srv.URL, db)
	if err := task.SyncOnce(context.Background()); err != nil {
		t.Fatalf("同步失败: %v", err)
	}

	if _, err := snapRepo.GetByID(context.Background(), 99); err == nil {
		t.Fatalf("下架商品 99 应被清理")
	}
	if _, err := snapRepo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("在售商品 1 应保留: %v", err)
	}
}

func TestSyncOnceEmptyResultKeepsOldSnapshots(t *testing.T) {
	db := setupTaskTestDB(t)
	snapRepo := repository.NewProductSnapshotRepository(db)
	snapRepo.BatchUpsert(context.Background(), []model.ProductSnapshot{
		{ID: 1, Title: "Red Shoe", Price: 30, LastSyncAt: time.Now()},
	})

	// 目录抽风返回空列表，旧快照必须原样保留
	srv := newTaskCatalogServer(`{"products": [], "total": 0, "skip": 0, "limit": 30}`)
	defer srv.Close()

	task, _ := newTaskUnderTest(t, srv.URL, db)
	if err := task.SyncOnce(context.Background()); err != nil {
		t.Fatalf("空结果不应报错: %v", err)
	}

	count, _ := snapRepo.Count(context.Background())
	if count != 1 {
		t.Fatalf("空结果不应清空快照表，实际剩 %d 条", count)
	}
}

func TestSyncOnceFetchFailureReturnsError(t *testing.T) {
	db := setupTaskTestDB(t)
	task, snapRepo := newTaskUnderTest(t, "http://127.0.0.1:1", db)

	if err := task.SyncOnce(context.Background()); err == nil {
		t.Fatalf("拉取失败应向上返回错误")
	}

	count, _ := snapRepo.Count(context.Background())
	if count != 0 {
		t.Fatalf("拉取失败不应写入任何快照")
	}
}
