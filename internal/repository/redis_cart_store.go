package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/pkg/logger"
)

// ==================== Redis 实现 ====================

// redisCartStore 以 Redis 为后端的购物车存储
// 每个会话一个 key (cart:<session>)，value 是整车 JSON，语义与键值表实现一致
type redisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CartStore = (*redisCartStore)(nil)

// NewRedisCartStore 创建 Redis 购物车存储
// addr 支持 "host:port" 或 "redis://..." 两种写法
func NewRedisCartStore(addr string) (CartStore, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		// 不是 URL 形式就当普通地址用
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			PoolSize:     10,
		}
	}

	store := &redisCartStore{
		client: redis.NewClient(opts),
		// 购物车跟着会话走，留 30 天兜底过期，避免废弃会话堆积
		ttl: 30 * 24 * time.Hour,
	}

	// 启动时做一次连通性探测，连不上直接暴露出来
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return store, nil
}

// Load 读取购物车，key 不存在或内容损坏都返回空车
func (s *redisCartStore) Load(ctx context.Context, key string) *model.Cart {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.L().Warn("Redis 读取购物车失败，按空车处理",
				zap.String("key", key), zap.Error(err))
		}
		return model.NewCart()
	}

	cart := model.NewCart()
	if err := json.Unmarshal(data, cart); err != nil {
		logger.L().Warn("Redis 购物车数据损坏，按空车处理",
			zap.String("key", key), zap.Error(err))
		return model.NewCart()
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart
}

// Save 全量覆盖写入
func (s *redisCartStore) Save(ctx context.Context, key string, cart *model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, payload, s.ttl).Err()
}

// Clear 删除该 key
func (s *redisCartStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Ping 连通性探测
func (s *redisCartStore) Ping(ctx context.Context) bool {
	return s.client.Ping(ctx).Err() == nil
}
