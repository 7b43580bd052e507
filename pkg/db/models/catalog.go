package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog entry pricing hangs off. Owned by the catalog
// subsystem; the pricing engine only reads it.
type Product struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:name;not null"`
	SKU      string `gorm:"column:sku;not null;uniqueIndex"`
	BrandID  *int64 `gorm:"column:brand_id"`
	IsActive bool   `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

// ProductVariant uses a generated composite string id because variants
// are minted together with their option combinations, without a database
// round-trip.
type ProductVariant struct {
	ID        string `gorm:"column:id;primaryKey"`
	ProductID int64  `gorm:"column:product_id;not null;index"`
	FullName  string `gorm:"column:full_name;not null"`
	SKU       string `gorm:"column:sku;not null"`
	IsActive  bool   `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (ProductVariant) TableName() string { return "product_variants" }

// PriceCategory is a shared pricing tier (e.g. Retail, Wholesale). Child
// pricing rows snapshot its fields instead of referencing it live.
type PriceCategory struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string          `gorm:"column:name;not null"`
	Percentage decimal.Decimal `gorm:"column:percentage;type:numeric(5,2);not null"`
	SetDefault bool            `gorm:"column:set_default;not null;default:false"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (PriceCategory) TableName() string { return "price_categories" }

// Tax is a shared tax rate lookup row.
type Tax struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string          `gorm:"column:name;not null"`
	Percentage decimal.Decimal `gorm:"column:percentage;type:numeric(5,2);not null"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Tax) TableName() string { return "taxes" }
