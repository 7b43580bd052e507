package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerCategoryPrice is the price of one product for one customer
// segment. The price-category identity columns are a snapshot taken at
// write time, not a live reference: later edits to the shared
// price_categories row must not rewrite history.
type CustomerCategoryPrice struct {
	ID                   int64 `gorm:"column:id;primaryKey;autoIncrement"`
	PricingInformationID int64 `gorm:"column:pricing_information_id;not null;index"`

	PriceCategoryID         int64           `gorm:"column:price_category_id;not null"`
	PriceCategoryName       string          `gorm:"column:price_category_name;not null"`
	PriceCategoryPercentage decimal.Decimal `gorm:"column:price_category_percentage;type:numeric(5,2);not null"`
	PriceCategorySetDefault bool            `gorm:"column:price_category_set_default;not null;default:false"`

	PreTaxPrice   decimal.Decimal `gorm:"column:pre_tax_price;type:numeric(19,2);not null"`
	TaxedPrice    decimal.Decimal `gorm:"column:taxed_price;type:numeric(19,2);not null"`
	TaxID         *int64          `gorm:"column:tax_id"`
	TaxPercentage decimal.Decimal `gorm:"column:tax_percentage;type:numeric(5,2);not null"`

	IsCustomPrice bool `gorm:"column:is_custom_price;not null;default:false"`
	IsCustomTax   bool `gorm:"column:is_custom_tax;not null;default:false"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (CustomerCategoryPrice) TableName() string { return "customer_category_prices" }

// MarketplaceCategoryPrice mirrors CustomerCategoryPrice for marketplace
// segments. Kept as its own table so the two ladders evolve independently.
type MarketplaceCategoryPrice struct {
	ID                   int64 `gorm:"column:id;primaryKey;autoIncrement"`
	PricingInformationID int64 `gorm:"column:pricing_information_id;not null;index"`

	PriceCategoryID         int64           `gorm:"column:price_category_id;not null"`
	PriceCategoryName       string          `gorm:"column:price_category_name;not null"`
	PriceCategoryPercentage decimal.Decimal `gorm:"column:price_category_percentage;type:numeric(5,2);not null"`
	PriceCategorySetDefault bool            `gorm:"column:price_category_set_default;not null;default:false"`

	PreTaxPrice   decimal.Decimal `gorm:"column:pre_tax_price;type:numeric(19,2);not null"`
	TaxedPrice    decimal.Decimal `gorm:"column:taxed_price;type:numeric(19,2);not null"`
	TaxID         *int64          `gorm:"column:tax_id"`
	TaxPercentage decimal.Decimal `gorm:"column:tax_percentage;type:numeric(5,2);not null"`

	IsCustomPrice bool `gorm:"column:is_custom_price;not null;default:false"`
	IsCustomTax   bool `gorm:"column:is_custom_tax;not null;default:false"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (MarketplaceCategoryPrice) TableName() string { return "marketplace_category_prices" }
