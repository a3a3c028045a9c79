package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/pkg/logger"
)

// ==================== 接口定义 ====================

// CartStore 购物车键值存储边界
// 每个会话一个 key，value 是整车的 JSON 序列化结果，整存整取
// 约定：Load 对 "key 不存在" 和 "内容损坏" 都返回空车，绝不向上抛错
type CartStore interface {
	Load(ctx context.Context, key string) *model.Cart
	Save(ctx context.Context, key string, cart *model.Cart) error
	Clear(ctx context.Context, key string) error
	Ping(ctx context.Context) bool
}

// ==================== GORM 键值实现 ====================

// CartEntry 购物车持久化条目 (单行单 key)
type CartEntry struct {
	Key       string         `gorm:"primaryKey;size:100"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (CartEntry) TableName() string {
	return "cart_entries"
}

type kvCartStore struct {
	db *gorm.DB
}

var _ CartStore = (*kvCartStore)(nil)

// NewKVCartStore 创建基于数据库键值表的购物车存储
func NewKVCartStore(db *gorm.DB) CartStore {
	return &kvCartStore{db: db}
}

// Load 读取购物车
// key 不存在、payload 解析失败都按空车处理
func (s *kvCartStore) Load(ctx context.Context, key string) *model.Cart {
	var entry CartEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.L().Warn("读取购物车失败，按空车处理",
				zap.String("key", key), zap.Error(err))
		}
		return model.NewCart()
	}

	cart := model.NewCart()
	if err := json.Unmarshal(entry.Payload, cart); err != nil {
		// 存量数据损坏：不报错，直接给空车，下次 Save 会覆盖掉脏数据
		logger.L().Warn("购物车数据损坏，按空车处理",
			zap.String("key", key), zap.Error(err))
		return model.NewCart()
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart
}

// Save 全量覆盖写入
func (s *kvCartStore) Save(ctx context.Context, key string, cart *model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	entry := CartEntry{Key: key, Payload: payload, UpdatedAt: time.Now()}
	// 冲突即覆盖，保持 "单 key 单值" 语义
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&entry).Error
}

// Clear 删除该 key 下的购物车
func (s *kvCartStore) Clear(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&CartEntry{}, "key = ?", key).Error
}

// Ping 存储可用性探测
func (s *kvCartStore) Ping(ctx context.Context) bool {
	sqlDB, err := s.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
