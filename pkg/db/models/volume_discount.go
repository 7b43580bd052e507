package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GlobalVolumeDiscount is a product-wide quantity ladder entry. Quantity is
// unique among non-deleted rows of the same pricing information.
type GlobalVolumeDiscount struct {
	ID                   string `gorm:"column:id;primaryKey"`
	PricingInformationID int64  `gorm:"column:pricing_information_id;not null;index"`

	Quantity        int64           `gorm:"column:quantity;not null"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	PriceCategories []GlobalDiscountPriceCategory `gorm:"foreignKey:GlobalVolumeDiscountID"`
}

func (GlobalVolumeDiscount) TableName() string { return "global_volume_discounts" }

// GlobalDiscountPriceCategory is the discounted price of one price
// category under a global volume discount, with the category identity
// snapshotted at write time.
type GlobalDiscountPriceCategory struct {
	ID                     string `gorm:"column:id;primaryKey"`
	GlobalVolumeDiscountID string `gorm:"column:global_volume_discount_id;not null;index"`

	PriceCategoryID         int64           `gorm:"column:price_category_id;not null"`
	PriceCategoryName       string          `gorm:"column:price_category_name;not null"`
	PriceCategoryPercentage decimal.Decimal `gorm:"column:price_category_percentage;type:numeric(5,2);not null"`
	PriceCategorySetDefault bool            `gorm:"column:price_category_set_default;not null;default:false"`

	Price decimal.Decimal `gorm:"column:price;type:numeric(19,2);not null"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (GlobalDiscountPriceCategory) TableName() string { return "global_discount_price_categories" }

// VariantVolumeDiscount scopes a quantity ladder to a single variant.
// The variant's name and SKU are snapshotted so the discount's history
// stays meaningful if the variant is later renamed or deleted.
type VariantVolumeDiscount struct {
	ID                   string `gorm:"column:id;primaryKey"`
	PricingInformationID int64  `gorm:"column:pricing_information_id;not null;index"`

	VariantID       string `gorm:"column:variant_id;not null;index"`
	VariantFullName string `gorm:"column:variant_full_name;not null"`
	VariantSKU      string `gorm:"column:variant_sku;not null"`
	IsActive        bool   `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	QuantityTiers []VariantDiscountQuantityTier `gorm:"foreignKey:VariantVolumeDiscountID"`
}

func (VariantVolumeDiscount) TableName() string { return "variant_volume_discounts" }

// VariantDiscountQuantityTier is one threshold/percentage pair inside a
// variant volume discount. Quantity is unique among non-deleted tiers of
// the same discount.
type VariantDiscountQuantityTier struct {
	ID                      string `gorm:"column:id;primaryKey"`
	VariantVolumeDiscountID string `gorm:"column:variant_volume_discount_id;not null;index"`

	Quantity        int64           `gorm:"column:quantity;not null"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	PriceCategories []VariantDiscountPriceCategory `gorm:"foreignKey:QuantityTierID"`
}

func (VariantDiscountQuantityTier) TableName() string { return "variant_discount_quantity_tiers" }

// VariantDiscountPriceCategory is the discounted price of one price
// category under a variant discount quantity tier.
type VariantDiscountPriceCategory struct {
	ID             string `gorm:"column:id;primaryKey"`
	QuantityTierID string `gorm:"column:quantity_tier_id;not null;index"`

	PriceCategoryID         int64           `gorm:"column:price_category_id;not null"`
	PriceCategoryName       string          `gorm:"column:price_category_name;not null"`
	PriceCategoryPercentage decimal.Decimal `gorm:"column:price_category_percentage;type:numeric(5,2);not null"`
	PriceCategorySetDefault bool            `gorm:"column:price_category_set_default;not null;default:false"`

	Price decimal.Decimal `gorm:"column:price;type:numeric(19,2);not null"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (VariantDiscountPriceCategory) TableName() string { return "variant_discount_price_categories" }
