package repository

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront_dev_v1_202601/internal/model"
)

// ==================== 测试辅助 ====================

func setupSnapshotTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.ProductSnapshot{})
	return db
}

func sampleSnapshots(syncAt time.Time) []model.ProductSnapshot {
	return []model.ProductSnapshot{
		{
			ID: 1, Title: "Red Shoe", Price: 30, Rating: 4.5,
			Category: "footwear", Brand: "Acme",
			Tags:       pq.StringArray{"shoe", "red"},
			Images:     pq.StringArray{"a.jpg", "b.jpg"},
			LastSyncAt: syncAt,
		},
		{ID: 2, Title: "Blue Hat", Price: 10, Rating: 3.8, Category: "hats", LastSyncAt: syncAt},
		{ID: 3, Title: "Red Scarf", Price: 20, Rating: 4.1, Category: "scarves", LastSyncAt: syncAt},
	}
}

// ==================== 单元测试 ====================

func TestProductSnapshotRepo_BatchUpsertAndList(t *testing.T) {
	repo := NewProductSnapshotRepository(setupSnapshotTestDB(t))
	ctx := context.Background()
	now := time.Now()

	if err := repo.BatchUpsert(ctx, sampleSnapshots(now)); err != nil {
		t.Fatalf("批量写入失败: %v", err)
	}

	snaps, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("期望 3 条快照，实际 %d 条", len(snaps))
	}

	// List 按目录侧 ID 升序
	for i, want := range []int64{1, 2, 3} {
		if snaps[i].ID != want {
			t.Fatalf("第 %d 位期望 ID %d，实际 %d", i, want, snaps[i].ID)
		}
	}

	// 数组字段要能往返
	if len(snaps[0].Tags) != 2 || snaps[0].Tags[0] != "shoe" {
		t.Fatalf("Tags 往返失败: %+v", snaps[0].Tags)
	}
}

func TestProductSnapshotRepo_UpsertUpdatesExisting(t *testing.T) {
	repo := NewProductSnapshotRepository(setupSnapshotTestDB(t))
	ctx := context.Background()
	now := time.Now()

	repo.BatchUpsert(ctx, sampleSnapshots(now))

	// 同 ID 再写一次，价格变了
	updated := []model.ProductSnapshot{
		{ID: 1, Title: "Red Shoe", Price: 25, Rating: 4.5, LastSyncAt: now},
	}
	if err := repo.BatchUpsert(ctx, updated); err != nil {
		t.Fatalf("二次写入失败: %v", err)
	}

	snap, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if snap.Price != 25 {
		t.Fatalf("UPSERT 应更新价格，期望 25，实际 %.0f", snap.Price)
	}

	total, _ := repo.Count(ctx)
	if total != 3 {
		t.Fatalf("UPSERT 不应产生重复行，期望 3 行，实际 %d 行", total)
	}
}

func TestProductSnapshotRepo_SearchByTitle(t *testing.T) {
	repo := NewProductSnapshotRepository(setupSnapshotTestDB(t))
	ctx := context.Background()

	repo.BatchUpsert(ctx, sampleSnapshots(time.Now()))

	// 大小写不敏感
	snaps, err := repo.SearchByTitle(ctx, "RED")
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("期望命中 2 条，实际 %d 条", len(snaps))
	}
}

func TestProductSnapshotRepo_DeleteMissing(t *testing.T) {
	repo := NewProductSnapshotRepository(setupSnapshotTestDB(t))
	ctx := context.Background()

	repo.BatchUpsert(ctx, sampleSnapshots(time.Now()))

	// 本轮同步只拉到 1 和 3，商品 2 已下架
	if err := repo.DeleteMissing(ctx, []int64{1, 3}); err != nil {
		t.Fatalf("清理失败: %v", err)
	}

	if _, err := repo.GetByID(ctx, 2); err == nil {
		t.Fatalf("下架商品应已删除")
	}
	total, _ := repo.Count(ctx)
	if total != 2 {
		t.Fatalf("期望剩 2 条，实际 %d 条", total)
	}
}
