package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingInformation is the aggregate root for one product's pricing tree:
// the cost basis, feature flags, and every child price collection hang off
// this row. Exactly one non-deleted row exists per product.
type PricingInformation struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64 `gorm:"column:product_id;not null;index"`

	USDPrice          decimal.Decimal `gorm:"column:usd_price;type:numeric(19,2);not null"`
	ExchangeRate      decimal.Decimal `gorm:"column:exchange_rate;type:numeric(19,2);not null"`
	AdjustmentPercent decimal.Decimal `gorm:"column:adjustment_percent;type:numeric(5,2);not null"`
	RealCost          decimal.Decimal `gorm:"column:real_cost;type:numeric(19,2);not null"`
	AdjustedCost      decimal.Decimal `gorm:"column:adjusted_cost;type:numeric(19,2);not null"`

	ManualVariantPriceEdit       bool `gorm:"column:manual_variant_price_edit;not null;default:false"`
	ProductVolumeDiscountEnabled bool `gorm:"column:product_volume_discount_enabled;not null;default:false"`
	VariantVolumeDiscountEnabled bool `gorm:"column:variant_volume_discount_enabled;not null;default:false"`

	// LockVersion guards against lost updates: the update transaction only
	// commits when the version it read is still current.
	LockVersion int64 `gorm:"column:lock_version;not null;default:0"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	CustomerCategoryPrices    []CustomerCategoryPrice    `gorm:"foreignKey:PricingInformationID"`
	MarketplaceCategoryPrices []MarketplaceCategoryPrice `gorm:"foreignKey:PricingInformationID"`
	GlobalVolumeDiscounts     []GlobalVolumeDiscount     `gorm:"foreignKey:PricingInformationID"`
	VariantVolumeDiscounts    []VariantVolumeDiscount    `gorm:"foreignKey:PricingInformationID"`
}

func (PricingInformation) TableName() string { return "pricing_information" }
