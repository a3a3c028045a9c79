package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront_dev_v1_202601/internal/model"
)

// ==================== 接口定义 ====================

// ProductSnapshotRepository 商品快照仓储接口
// 快照表是外部目录的本地副本，同步任务写、展示层读
type ProductSnapshotRepository interface {
	// 基础查询
	GetByID(ctx context.Context, id int64) (*model.ProductSnapshot, error)
	List(ctx context.Context) ([]model.ProductSnapshot, error)
	SearchByTitle(ctx context.Context, keyword string) ([]model.ProductSnapshot, error)
	Count(ctx context.Context) (int64, error)

	// 同步写入
	BatchUpsert(ctx context.Context, snapshots []model.ProductSnapshot) error
	DeleteMissing(ctx context.Context, keepIDs []int64) error
}

// ==================== 仓储实现 ====================

type productSnapshotRepo struct {
	db *gorm.DB
}

// NewProductSnapshotRepository 创建商品快照仓储
func NewProductSnapshotRepository(db *gorm.DB) ProductSnapshotRepository {
	return &productSnapshotRepo{db: db}
}

func (r *productSnapshotRepo) GetByID(ctx context.Context, id int64) (*model.ProductSnapshot, error) {
	var snap model.ProductSnapshot
	if err := r.db.WithContext(ctx).First(&snap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &snap, nil
}

// List 按目录侧 ID 排序返回全量快照
// 目录接口按 id 递增返回，保持同一顺序，兜底展示时前端感知不到切换
func (r *productSnapshotRepo) List(ctx context.Context) ([]model.ProductSnapshot, error) {
	var snaps []model.ProductSnapshot
	err := r.db.WithContext(ctx).Order("id ASC").Find(&snaps).Error
	return snaps, err
}

func (r *productSnapshotRepo) SearchByTitle(ctx context.Context, keyword string) ([]model.ProductSnapshot, error) {
	var snaps []model.ProductSnapshot
	// LOWER + LIKE 在 Postgres 与测试用的 SQLite 下行为一致
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%").
		Order("id ASC").
		Find(&snaps).Error
	return snaps, err
}

func (r *productSnapshotRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.ProductSnapshot{}).Count(&total).Error
	return total, err
}

// BatchUpsert 批量写入快照 (UPSERT)
// id 冲突时只更新展示字段与同步时间，created_at 保持首次入库值
func (r *productSnapshotRepo) BatchUpsert(ctx context.Context, snapshots []model.ProductSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "category", "price", "discount_percentage",
			"rating", "stock", "brand", "sku", "availability_status",
			"thumbnail", "tags", "images", "reviews",
			"last_sync_at", "updated_at",
		}),
	}).CreateInBatches(snapshots, 100).Error
}

// DeleteMissing 删掉目录里已经下架的快照
// keepIDs 为本轮同步拉到的全量 ID 集合
func (r *productSnapshotRepo) DeleteMissing(ctx context.Context, keepIDs []int64) error {
	if len(keepIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id NOT IN ?", keepIDs).
		Delete(&model.ProductSnapshot{}).Error
}
