package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/internal/repository"
	"storefront_dev_v1_202601/pkg/logger"
)

// ==================== 通知 ====================

// NotifyLevel 通知级别
type NotifyLevel string

const (
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
)

// Notification 用户可见的操作通知 (前端的 toast)
type Notification struct {
	Level   NotifyLevel `json:"level"`
	Message string      `json:"message"`
}

// ==================== 错误定义 ====================

// ErrCartEmpty 空车结算
// 可恢复的用户操作错误：提示后流程继续，购物车状态不变
var ErrCartEmpty = errors.New("购物车是空的")

// ==================== 购物车引擎 ====================

// CartService 购物车引擎
// 全局只有一个实例，商品列表和购物车弹窗共用它，避免各自 hydrate 一份副本互相覆盖。
// 写路径统一 "先回读存储再改再写"：存储才是真相，内存里的车只是快照。
type CartService struct {
	store repository.CartStore

	// 串行化写路径。单 key 整存整取的存储没有合并能力，
	// 两个视图并发 read-modify-write 必然丢更新，这里直接加锁排队
	mu sync.Mutex

	subMu       sync.RWMutex
	subscribers []func(Notification)
}

// NewCartService 创建购物车引擎
func NewCartService(store repository.CartStore) *CartService {
	return &CartService{store: store}
}

// Subscribe 订阅操作通知
// 控制器层订阅后把通知转成响应里的 message / 页面 flash
func (s *CartService) Subscribe(fn func(Notification)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *CartService) notify(level NotifyLevel, message string) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, fn := range s.subscribers {
		fn(Notification{Level: level, Message: message})
	}
}

// ==================== 读操作 ====================

// GetCart 获取当前购物车快照
// 每次都从存储回读，弹窗刚打开时拿到的一定是最新落盘的数据
func (s *CartService) GetCart(ctx context.Context, key string) *model.Cart {
	return s.store.Load(ctx, key)
}

// ==================== 写操作 ====================

// AddToCart 加购
// 已有该商品则数量 +1，否则插入数量为 1 的新条目；结果立即落盘
func (s *CartService) AddToCart(ctx context.Context, key string, product *model.Product) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.store.Load(ctx, key)
	if idx := cart.Find(product.ID); idx >= 0 {
		cart.Items[idx].Quantity++
	} else {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Thumbnail: product.Thumbnail,
			Rating:    product.Rating,
			Quantity:  1,
		})
	}

	if err := s.store.Save(ctx, key, cart); err != nil {
		logger.L().Error("购物车保存失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	s.notify(NotifySuccess, "商品已加入购物车")
	return cart, nil
}

// DecrementOrRemove 减购
// 数量 -1，减到 0 移除整条；商品不在车里时不算错误，静默跳过
func (s *CartService) DecrementOrRemove(ctx context.Context, key string, productID int64) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.store.Load(ctx, key)
	idx := cart.Find(productID)
	if idx < 0 {
		// no-op：弹窗里连点删除可能落在已移除的条目上
		return cart, nil
	}

	cart.Items[idx].Quantity--
	if cart.Items[idx].Quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}

	if err := s.store.Save(ctx, key, cart); err != nil {
		logger.L().Error("购物车保存失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return cart, nil
}

// ClearCart 清空购物车并落盘
func (s *CartService) ClearCart(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clear(ctx, key)
}

// Checkout 结算
// 空车返回 ErrCartEmpty 且不动任何状态；非空则清空落盘并通知成功
func (s *CartService) Checkout(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.store.Load(ctx, key)
	if cart.IsEmpty() {
		s.notify(NotifyError, "购物车是空的")
		return ErrCartEmpty
	}

	if err := s.store.Clear(ctx, key); err != nil {
		logger.L().Error("结算清车失败", zap.String("key", key), zap.Error(err))
		return err
	}

	s.notify(NotifySuccess, "结算成功")
	return nil
}
