package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/internal/repository"
)

// ==================== 测试辅助 ====================

const catalogPayload = `{
	"products": [
		{"id": 1, "title": "Red Shoe", "price": 30, "rating": 4.5, "thumbnail": "t1.jpg",
		 "brand": "Acme", "category": "footwear", "stock": 12, "tags": ["shoe", "red"],
		 "images": ["a.jpg", "b.jpg"],
		 "reviews": [{"rating": 5, "comment": "很好", "reviewerName": "A", "reviewerEmail": "a@x.com"}]},
		{"id": 2, "title": "Blue Hat", "price": 10, "rating": 3.8, "thumbnail": "t2.jpg"}
	],
	"total": 2, "skip": 0, "limit": 30
}`

const productPayload = `{"id": 1, "title": "Red Shoe", "price": 30, "rating": 4.5,
	"description": "一双红鞋", "stock": 12, "images": ["a.jpg"]}`

func newCatalogTestServer(hits *int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt64(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/products":
			w.Write([]byte(catalogPayload))
		case "/products/1":
			w.Write([]byte(productPayload))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestCatalogService(baseURL string, snapRepo repository.ProductSnapshotRepository) *CatalogService {
	return NewCatalogService(&CatalogConfig{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		RetryCount: 0,
		CacheTTL:   time.Minute,
	}, snapRepo)
}

func setupSnapshotRepo(t *testing.T) repository.ProductSnapshotRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&model.ProductSnapshot{})
	return repository.NewProductSnapshotRepository(db)
}

// ==================== 单元测试 ====================

func TestCatalogService_ListProducts(t *testing.T) {
	srv := newCatalogTestServer(nil)
	defer srv.Close()

	svc := newTestCatalogService(srv.URL, nil)
	products := svc.ListProducts(context.Background())

	if len(products) != 2 {
		t.Fatalf("期望 2 件商品，实际 %d 件", len(products))
	}
	if products[0].Title != "Red Shoe" || products[0].Price != 30 {
		t.Fatalf("商品字段解析不对: %+v", products[0])
	}
	if len(products[0].Reviews) != 1 || products[0].Reviews[0].Comment != "很好" {
		t.Fatalf("嵌套评价解析不对: %+v", products[0].Reviews)
	}
}

func TestCatalogService_ListProductsUsesCache(t *testing.T) {
	var hits int64
	srv := newCatalogTestServer(&hits)
	defer srv.Close()

	svc := newTestCatalogService(srv.URL, nil)
	svc.ListProducts(context.Background())
	svc.ListProducts(context.Background())

	// TTL 内第二次读必须命中缓存
	if atomic.LoadInt64(&hits) != 1 {
		t.Fatalf("期望只请求目录 1 次，实际 %d 次", hits)
	}
}

func TestCatalogService_GetProduct(t *testing.T) {
	srv := newCatalogTestServer(nil)
	defer srv.Close()

	svc := newTestCatalogService(srv.URL, nil)
	p, err := svc.GetProduct(context.Background(), 1)
	if err != nil {
		t.Fatalf("获取详情失败: %v", err)
	}
	if p.Description != "一双红鞋" {
		t.Fatalf("详情字段不对: %+v", p)
	}
}

func TestCatalogService_GetProductNotFound(t *testing.T) {
	srv := newCatalogTestServer(nil)
	defer srv.Close()

	svc := newTestCatalogService(srv.URL, nil)
	if _, err := svc.GetProduct(context.Background(), 999); err == nil {
		t.Fatalf("不存在的商品应返回错误")
	}
}

// ==================== 失败兜底 ====================

func TestCatalogService_FetchFailureFallsBackToEmpty(t *testing.T) {
	// 指向一个没人监听的地址
	svc := newTestCatalogService("http://127.0.0.1:1", nil)

	products := svc.ListProducts(context.Background())
	// 失败不报错，页面拿到空列表
	if len(products) != 0 {
		t.Fatalf("无快照时接口失败应返回空列表，实际 %d 件", len(products))
	}
}

func TestCatalogService_FetchFailureFallsBackToSnapshot(t *testing.T) {
	snapRepo := setupSnapshotRepo(t)
	ctx := context.Background()

	// 先往快照表塞两条旧数据
	now := time.Now()
	snapRepo.BatchUpsert(ctx, []model.ProductSnapshot{
		{ID: 1, Title: "Red Shoe", Price: 30, LastSyncAt: now},
		{ID: 2, Title: "Blue Hat", Price: 10, LastSyncAt: now},
	})

	svc := newTestCatalogService("http://127.0.0.1:1", snapRepo)
	products := svc.ListProducts(ctx)

	if len(products) != 2 {
		t.Fatalf("接口失败应回退快照，期望 2 件，实际 %d 件", len(products))
	}
	if products[0].Title != "Red Shoe" {
		t.Fatalf("快照转换不对: %+v", products[0])
	}
}

func TestCatalogService_GetProductFallsBackToSnapshot(t *testing.T) {
	snapRepo := setupSnapshotRepo(t)
	ctx := context.Background()
	snapRepo.BatchUpsert(ctx, []model.ProductSnapshot{
		{ID: 7, Title: "Green Scarf", Price: 20, LastSyncAt: time.Now()},
	})

	svc := newTestCatalogService("http://127.0.0.1:1", snapRepo)
	p, err := svc.GetProduct(ctx, 7)
	if err != nil {
		t.Fatalf("详情兜底失败: %v", err)
	}
	if p.Title != "Green Scarf" {
		t.Fatalf("兜底详情不对: %+v", p)
	}
}

// ==================== 转换 ====================

func TestSnapshotConversionRoundTrip(t *testing.T) {
	p := model.Product{
		ID: 1, Title: "Red Shoe", Price: 30, Rating: 4.5,
		Tags: []string{"shoe"}, Images: []string{"a.jpg"},
		Reviews: []model.Review{{Rating: 5, Comment: "很好", ReviewerName: "A"}},
	}

	snap := ToSnapshot(&p, time.Now())
	back := SnapshotToProduct(&snap)

	if back.ID != p.ID || back.Title != p.Title || back.Price != p.Price {
		t.Fatalf("基础字段往返丢失: %+v", back)
	}
	if len(back.Tags) != 1 || len(back.Images) != 1 {
		t.Fatalf("数组字段往返丢失: %+v", back)
	}
	if len(back.Reviews) != 1 || back.Reviews[0].Comment != "很好" {
		t.Fatalf("评价往返丢失: %+v", back.Reviews)
	}
}
