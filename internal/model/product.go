package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ==================== 目录商品 ====================

// Review 商品评价 (目录接口返回的嵌套结构，只读)
type Review struct {
	Rating        float64   `json:"rating"`
	Comment       string    `json:"comment"`
	Date          time.Time `json:"date"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerEmail string    `json:"reviewerEmail"`
}

// Product 目录商品记录
// 完全来自外部目录接口，本地只读、永不修改
// json tag 对齐目录接口的驼峰字段
type Product struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	SKU                string   `json:"sku"`
	Tags               []string `json:"tags"`
	AvailabilityStatus string   `json:"availabilityStatus"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
	Reviews            []Review `json:"reviews"`
}

// ==================== 快照表 ====================

// ProductSnapshot 目录商品的本地快照
// 同步任务定期全量拉取外部目录写入本表，目录接口不可用时做兜底展示
type ProductSnapshot struct {
	ID        int64     `gorm:"primaryKey" json:"id"` // 目录侧商品 ID，不自增
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title              string  `gorm:"size:255;index" json:"title"`
	Description        string  `gorm:"type:text" json:"description"`
	Category           string  `gorm:"size:100;index" json:"category"`
	Price              float64 `gorm:"default:0" json:"price"`
	DiscountPercentage float64 `gorm:"default:0" json:"discount_percentage"`
	Rating             float64 `gorm:"default:0" json:"rating"`
	Stock              int     `gorm:"default:0" json:"stock"`
	Brand              string  `gorm:"size:100" json:"brand"`
	SKU                string  `gorm:"size:100" json:"sku"`
	AvailabilityStatus string  `gorm:"size:50" json:"availability_status"`
	Thumbnail          string  `gorm:"size:500" json:"thumbnail"`

	// --- 数组/嵌套数据 ---
	Tags    pq.StringArray `gorm:"type:text[]" json:"tags"`
	Images  pq.StringArray `gorm:"type:text[]" json:"images"`
	Reviews datatypes.JSON `gorm:"type:jsonb" json:"reviews"`

	// --- 同步控制 ---
	LastSyncAt time.Time `gorm:"index" json:"last_sync_at"`
}

func (ProductSnapshot) TableName() string {
	return "product_snapshots"
}
