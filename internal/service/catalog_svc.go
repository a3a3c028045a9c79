package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/internal/repository"
	"storefront_dev_v1_202601/pkg/logger"
	"storefront_dev_v1_202601/pkg/utils"
)

// ==================== 目录服务 ====================

// 缓存 key
const (
	cacheKeyProductList = "catalog:products"
	cacheKeyProductFmt  = "catalog:product:%d"
)

// productListResp 目录接口的列表响应
// 契约: GET <base>/products -> {products: [...], total, skip, limit}
type productListResp struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
	Skip     int             `json:"skip"`
	Limit    int             `json:"limit"`
}

// CatalogConfig 目录服务配置
type CatalogConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	CacheTTL   time.Duration
}

// CatalogService 外部商品目录服务
// 目录是唯一的数据来源，本地只读；接口失败不向上抛错，
// 优先回退到快照表的旧数据，再不行就给空列表 (页面只会少渲染，不会报错)
type CatalogService struct {
	client   *resty.Client
	cache    *utils.TTLCache
	cacheTTL time.Duration
	snapRepo repository.ProductSnapshotRepository
}

// NewCatalogService 创建目录服务
// snapRepo 可以为 nil (纯内存模式，没有兜底快照)
func NewCatalogService(cfg *CatalogConfig, snapRepo repository.ProductSnapshotRepository) *CatalogService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("User-Agent", "Storefront-Go-App/1.0")

	return &CatalogService{
		client:   client,
		cache:    utils.NewTTLCache(),
		cacheTTL: cfg.CacheTTL,
		snapRepo: snapRepo,
	}
}

// ==================== 查询接口 ====================

// ListProducts 获取目录全量商品
// 命中缓存直接返回；接口失败回退快照，再失败返回空列表，永不报错
func (s *CatalogService) ListProducts(ctx context.Context) []model.Product {
	if cached, ok := s.cache.Get(cacheKeyProductList); ok {
		return cached.([]model.Product)
	}

	products, err := s.FetchProducts(ctx)
	if err != nil {
		logger.L().Warn("拉取目录失败，尝试快照兜底", zap.Error(err))
		return s.loadFromSnapshot(ctx)
	}

	s.cache.Set(cacheKeyProductList, products, s.cacheTTL)
	return products
}

// GetProduct 获取单个商品详情
// 详情弹窗用；找不到时返回错误 (区别于列表，404 要能反馈给用户)
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	key := fmt.Sprintf(cacheKeyProductFmt, id)
	if cached, ok := s.cache.Get(key); ok {
		p := cached.(model.Product)
		return &p, nil
	}

	var product model.Product
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&product).
		Get(fmt.Sprintf("/products/%d", id))

	if err != nil || resp.StatusCode() != 200 {
		// 接口不可用时从快照找，保证详情弹窗在目录抖动时仍可用
		if snap := s.snapshotByID(ctx, id); snap != nil {
			return snap, nil
		}
		if err != nil {
			return nil, fmt.Errorf("目录接口请求失败: %v", err)
		}
		return nil, fmt.Errorf("目录接口异常 [%d]", resp.StatusCode())
	}

	s.cache.Set(key, product, s.cacheTTL)
	return &product, nil
}

// FetchProducts 直连目录接口拉取全量商品 (同步任务也走这里)
func (s *CatalogService) FetchProducts(ctx context.Context) ([]model.Product, error) {
	var res productListResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&res).
		Get("/products")

	if err != nil {
		return nil, fmt.Errorf("目录接口请求失败: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("目录接口异常 [%d]: %s", resp.StatusCode(), resp.String())
	}
	return res.Products, nil
}

// InvalidateCache 清空列表缓存 (快照同步完成后调用，下次读取拿到新数据)
func (s *CatalogService) InvalidateCache() {
	s.cache.Delete(cacheKeyProductList)
}

// ==================== 快照兜底 ====================

func (s *CatalogService) loadFromSnapshot(ctx context.Context) []model.Product {
	if s.snapRepo == nil {
		return []model.Product{}
	}
	snaps, err := s.snapRepo.List(ctx)
	if err != nil {
		logger.L().Warn("快照兜底也失败了，返回空列表", zap.Error(err))
		return []model.Product{}
	}
	products := make([]model.Product, 0, len(snaps))
	for i := range snaps {
		products = append(products, SnapshotToProduct(&snaps[i]))
	}
	return products
}

func (s *CatalogService) snapshotByID(ctx context.Context, id int64) *model.Product {
	if s.snapRepo == nil {
		return nil
	}
	snap, err := s.snapRepo.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	p := SnapshotToProduct(snap)
	return &p
}

// ==================== 转换函数 ====================

// ToSnapshot 目录商品 -> 快照记录
func ToSnapshot(p *model.Product, syncAt time.Time) model.ProductSnapshot {
	reviews, _ := json.Marshal(p.Reviews)
	return model.ProductSnapshot{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Category:           p.Category,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
		Stock:              p.Stock,
		Brand:              p.Brand,
		SKU:                p.SKU,
		AvailabilityStatus: p.AvailabilityStatus,
		Thumbnail:          p.Thumbnail,
		Tags:               pq.StringArray(p.Tags),
		Images:             pq.StringArray(p.Images),
		Reviews:            reviews,
		LastSyncAt:         syncAt,
	}
}

// SnapshotToProduct 快照记录 -> 目录商品
func SnapshotToProduct(snap *model.ProductSnapshot) model.Product {
	var reviews []model.Review
	if len(snap.Reviews) > 0 {
		_ = json.Unmarshal(snap.Reviews, &reviews)
	}
	return model.Product{
		ID:                 snap.ID,
		Title:              snap.Title,
		Description:        snap.Description,
		Category:           snap.Category,
		Price:              snap.Price,
		DiscountPercentage: snap.DiscountPercentage,
		Rating:             snap.Rating,
		Stock:              snap.Stock,
		Brand:              snap.Brand,
		SKU:                snap.SKU,
		AvailabilityStatus: snap.AvailabilityStatus,
		Tags:               []string(snap.Tags),
		Images:             []string(snap.Images),
		Thumbnail:          snap.Thumbnail,
		Reviews:            reviews,
	}
}
