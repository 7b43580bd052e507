package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VariantPrice is the manually editable price of one variant in one price
// category. The primary key is an opaque generated string because rows are
// created inside the update transaction, before anything is durable.
type VariantPrice struct {
	ID                   string `gorm:"column:id;primaryKey"`
	PricingInformationID int64  `gorm:"column:pricing_information_id;not null;index"`
	VariantID            string `gorm:"column:variant_id;not null;index"`
	PriceCategoryID      *int64 `gorm:"column:price_category_id"`

	USDPrice          decimal.Decimal `gorm:"column:usd_price;type:numeric(19,2);not null"`
	ExchangeRate      decimal.Decimal `gorm:"column:exchange_rate;type:numeric(19,2);not null"`
	AdjustmentPercent decimal.Decimal `gorm:"column:adjustment_percent;type:numeric(5,2);not null"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric(19,2);not null"`

	IsActive bool `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (VariantPrice) TableName() string { return "variant_prices" }
