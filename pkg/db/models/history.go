package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// History rows are an append-only ledger: one row per mutated entity per
// update call, pairing the value before the write with the value after.
// They are never updated, never soft-deleted, and child history rows
// reference their parent history row so the full diff tree of one update
// call can be reconstructed.

// PricingInformationHistory captures the cost-basis and flag changes of
// one update call. Every child history row of that call points at it.
type PricingInformationHistory struct {
	ID                   int64 `gorm:"column:id;primaryKey;autoIncrement"`
	PricingInformationID int64 `gorm:"column:pricing_information_id;not null;index"`

	OldUSDPrice          decimal.Decimal `gorm:"column:old_usd_price;type:numeric(19,2);not null"`
	NewUSDPrice          decimal.Decimal `gorm:"column:new_usd_price;type:numeric(19,2);not null"`
	OldExchangeRate      decimal.Decimal `gorm:"column:old_exchange_rate;type:numeric(19,2);not null"`
	NewExchangeRate      decimal.Decimal `gorm:"column:new_exchange_rate;type:numeric(19,2);not null"`
	OldAdjustmentPercent decimal.Decimal `gorm:"column:old_adjustment_percent;type:numeric(5,2);not null"`
	NewAdjustmentPercent decimal.Decimal `gorm:"column:new_adjustment_percent;type:numeric(5,2);not null"`
	OldRealCost          decimal.Decimal `gorm:"column:old_real_cost;type:numeric(19,2);not null"`
	NewRealCost          decimal.Decimal `gorm:"column:new_real_cost;type:numeric(19,2);not null"`
	OldAdjustedCost      decimal.Decimal `gorm:"column:old_adjusted_cost;type:numeric(19,2);not null"`
	NewAdjustedCost      decimal.Decimal `gorm:"column:new_adjusted_cost;type:numeric(19,2);not null"`

	OldManualVariantPriceEdit       bool `gorm:"column:old_manual_variant_price_edit;not null"`
	NewManualVariantPriceEdit       bool `gorm:"column:new_manual_variant_price_edit;not null"`
	OldProductVolumeDiscountEnabled bool `gorm:"column:old_product_volume_discount_enabled;not null"`
	NewProductVolumeDiscountEnabled bool `gorm:"column:new_product_volume_discount_enabled;not null"`
	OldVariantVolumeDiscountEnabled bool `gorm:"column:old_variant_volume_discount_enabled;not null"`
	NewVariantVolumeDiscountEnabled bool `gorm:"column:new_variant_volume_discount_enabled;not null"`

	UpdatedBy int64     `gorm:"column:updated_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PricingInformationHistory) TableName() string { return "pricing_information_histories" }

// CustomerCategoryPriceHistory records one customer segment price edit.
// Category identity fields are recorded even though the update path never
// mutates them; they document what the snapshot looked like at the time.
type CustomerCategoryPriceHistory struct {
	ID                          int64 `gorm:"column:id;primaryKey;autoIncrement"`
	PricingInformationHistoryID int64 `gorm:"column:pricing_information_history_id;not null;index"`
	CustomerCategoryPriceID     int64 `gorm:"column:customer_category_price_id;not null"`

	OldPriceCategoryName       string          `gorm:"column:old_price_category_name;not null"`
	NewPriceCategoryName       string          `gorm:"column:new_price_category_name;not null"`
	OldPriceCategoryPercentage decimal.Decimal `gorm:"column:old_price_category_percentage;type:numeric(5,2);not null"`
	NewPriceCategoryPercentage decimal.Decimal `gorm:"column:new_price_category_percentage;type:numeric(5,2);not null"`
	OldPriceCategorySetDefault bool            `gorm:"column:old_price_category_set_default;not null"`
	NewPriceCategorySetDefault bool            `gorm:"column:new_price_category_set_default;not null"`

	OldPreTaxPrice   decimal.Decimal `gorm:"column:old_pre_tax_price;type:numeric(19,2);not null"`
	NewPreTaxPrice   decimal.Decimal `gorm:"column:new_pre_tax_price;type:numeric(19,2);not null"`
	OldTaxedPrice    decimal.Decimal `gorm:"column:old_taxed_price;type:numeric(19,2);not null"`
	NewTaxedPrice    decimal.Decimal `gorm:"column:new_taxed_price;type:numeric(19,2);not null"`
	OldTaxID         *int64          `gorm:"column:old_tax_id"`
	NewTaxID         *int64          `gorm:"column:new_tax_id"`
	OldTaxPercentage decimal.Decimal `gorm:"column:old_tax_percentage;type:numeric(5,2);not null"`
	NewTaxPercentage decimal.Decimal `gorm:"column:new_tax_percentage;type:numeric(5,2);not null"`

	OldIsCustomPrice bool `gorm:"column:old_is_custom_price;not null"`
	NewIsCustomPrice bool `gorm:"column:new_is_custom_price;not null"`
	OldIsCustomTax   bool `gorm:"column:old_is_custom_tax;not null"`
	NewIsCustomTax   bool `gorm:"column:new_is_custom_tax;not null"`

	UpdatedBy int64     `gorm:"column:updated_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (CustomerCategoryPriceHistory) TableName() string { return "customer_category_price_histories" }

// MarketplaceCategoryPriceHistory mirrors CustomerCategoryPriceHistory for
// marketplace segments.
type MarketplaceCategoryPriceHistory struct {
	ID                          int64 `gorm:"column:id;primaryKey;autoIncrement"`
	PricingInformationHistoryID int64 `gorm:"column:pricing_information_history_id;not null;index"`
	MarketplaceCategoryPriceID  int64 `gorm:"column:marketplace_category_price_id;not null"`

	OldPriceCategoryName       string          `gorm:"column:old_price_category_name;not null"`
	NewPriceCategoryName       string          `gorm:"column:new_price_category_name;not null"`
	OldPriceCategoryPercentage decimal.Decimal `gorm:"column:old_price_category_percentage;type:numeric(5,2);not null"`
	NewPriceCategoryPercentage decimal.Decimal `gorm:"column:new_price_category_percentage;type:numeric(5,2);not null"`
	OldPriceCategorySetDefault bool            `gorm:"column:old_price_category_set_default;not null"`
	NewPriceCategorySetDefault bool            `gorm:"column:new_price_category_set_default;not null"`

	OldPreTaxPrice   decimal.Decimal `gorm:"column:old_pre_tax_price;type:numeric(19,2);not null"`
	NewPreTaxPrice   decimal.Decimal `gorm:"column:new_pre_tax_price;type:numeric(19,2);not null"`
	OldTaxedPrice    decimal.Decimal `gorm:"column:old_taxed_price;type:numeric(19,2);not null"`
	NewTaxedPrice    decimal.Decimal `gorm:"column:new_taxed_price;type:numeric(19,2);not null"`
	OldTaxID         *int64          `gorm:"column:old_tax_id"`
	NewTaxID         *int64          `gorm:"column:new_tax_id"`
	OldTaxPercentage decimal.Decimal `gorm:"column:old_tax_percentage;type:numeric(5,2);not null"`
	NewTaxPercentage decimal.Decimal `gorm:"column:new_tax_percentage;type:numeric(5,2);not null"`

	OldIsCustomPrice bool `gorm:"column:old_is_custom_price;not null"`
	NewIsCustomPrice bool `gorm:"column:new_is_custom_price;not null"`
	OldIsCustomTax   bool `gorm:"column:old_is_custom_tax;not null"`
	NewIsCustomTax   bool `gorm:"column:new_is_custom_tax;not null"`

	UpdatedBy int64     `gorm:"column:updated_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (MarketplaceCategoryPriceHistory) TableName() string {
	return "marketplace_category_price_histories"
}

// GlobalVolumeDiscountHistory records one global discount header edit.
type GlobalVolumeDiscountHistory struct {
	ID                          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	PricingInformationHistoryID int64  `gorm:"column:pricing_information_history_id;not null;index"`
	GlobalVolumeDiscountID      string `gorm:"column:global_volume_discount_id;not null"`

	OldQuantity        int64           `gorm:"column:old_quantity;not null"`
	NewQuantity        int64           `gorm:"column:new_quantity;not null"`
	OldDiscountPercent decimal.Decimal `gorm:"column:old_discount_percent;type:numeric(5,2);not null"`
	NewDiscountPercent decimal.Decimal `gorm:"column:new_discount_percent;type:numeric(5,2);not null"`

	UpdatedBy int64     `gorm:"column:updated_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (GlobalVolumeDiscountHistory) TableName() string { return "global_volume_discount_histories" }

// GlobalDiscountPriceCategoryHistory records one per-category price edit
// under a global discount, linked to the discount's history row.
type GlobalDiscountPriceCategoryHistory struct {
	ID                            int64  `gorm:"column:id;primaryKey;autoIncrement"`
	GlobalVolumeDiscountHistoryID int64  `gorm:"column:global_volume_discount_history_id;not null;index"`
	GlobalDiscountPriceCategoryID string `gorm:"column:global_discount_price_category_id;not null"`

	OldPriceCategoryName       string          `gorm:"column:old_price_category_name;not null"`
	NewPriceCategoryName       string          `gorm:"column:new_price_category_name;not null"`
	OldPriceCategoryPercentage decimal.Decimal `gorm:"column:old_price_category_percentage;type:numeric(5,2);not null"`
	NewPriceCategoryPercentage decimal.Decimal `gorm:"column:new_price_category_percentage;type:numeric(5,2);not null"`
	OldPriceCategorySetDefault bool            `gorm:"column:old_price_category_set_default;not null"`
	NewPriceCategorySetDefault bool            `gorm:"column:new_price_category_set_default;not null"`

	OldPrice decimal.Decimal `gorm:"column:old_price;type:numeric(19,2);not null"`
	NewPrice decimal.Decimal `gorm:"column:new_price;type:numeric(19,2);not null"`

	UpdatedBy int64     `gorm:"column:updated_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (GlobalDiscountPriceCategoryHistory) TableName() string {
	return "global_discount_price_category_histories"
}

// VariantVolumeDiscountHistory records one variant discount header edit.
type VariantVolumeDiscountHistory struct {
	ID                          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	PricingInformationHistoryID int64  `gorm:"column:pricing_information_history_id;not null;index"`
	VariantVolumeDiscountID     string `gorm:"column:variant_volume_discount_id;not null"`

	OldVariantFullName string `gorm:"column:old_variant_full_name;not null"`
	NewVariantFullName string `gorm:"column:new_variant_full_name;not null"`
	OldVariantSKU      string `gorm:"column:old_variant_sku;not null"`
	NewVariantSKU      string `gorm:"column:new_variant_sku;not null"`
	OldIsActive        bool   `gorm:"column:old_is_active;not null"`
	NewIsActive        bool   `gorm:"column:new_is_active;not null"`

	UpdatedBy int64     `gorm:"column:updated_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VariantVolumeDiscountHistory) TableName() string { return "variant_volume_discount_histories" }

// VariantDiscountQuantityTierHistory records one quantity tier edit,
// linked to its discount's history row.
type VariantDiscountQuantityTierHistory struct {
	ID                             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	VariantVolumeDiscountHistoryID int64  `gorm:"column:variant_volume_discount_history_id;not null;index"`
	QuantityTierID                 string `gorm:"column:quantity_tier_id;not null"`

	OldQuantity        int64           `gorm:"column:old_quantity;not null"`
	NewQuantity        int64           `gorm:"column:new_quantity;not null"`
	OldDiscountPercent decimal.Decimal `gorm:"column:old_discount_percent;type:numeric(5,2);not null"`
	NewDiscountPercent decimal.Decimal `gorm:"column:new_discount_percent;type:numeric(5,2);not null"`

	UpdatedBy int64     `gorm:"column:updated_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VariantDiscountQuantityTierHistory) TableName() string {
	return "variant_discount_quantity_tier_histories"
}

// VariantDiscountPriceCategoryHistory records one per-category price edit
// under a quantity tier, linked to the tier's history row.
type VariantDiscountPriceCategoryHistory struct {
	ID                             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	QuantityTierHistoryID          int64  `gorm:"column:quantity_tier_history_id;not null;index"`
	VariantDiscountPriceCategoryID string `gorm:"column:variant_discount_price_category_id;not null"`

	OldPriceCategoryName       string          `gorm:"column:old_price_category_name;not null"`
	NewPriceCategoryName       string          `gorm:"column:new_price_category_name;not null"`
	OldPriceCategoryPercentage decimal.Decimal `gorm:"column:old_price_category_percentage;type:numeric(5,2);not null"`
	NewPriceCategoryPercentage decimal.Decimal `gorm:"column:new_price_category_percentage;type:numeric(5,2);not null"`
	OldPriceCategorySetDefault bool            `gorm:"column:old_price_category_set_default;not null"`
	NewPriceCategorySetDefault bool            `gorm:"column:new_price_category_set_default;not null"`

	OldPrice decimal.Decimal `gorm:"column:old_price;type:numeric(19,2);not null"`
	NewPrice decimal.Decimal `gorm:"column:new_price;type:numeric(19,2);not null"`

	UpdatedBy int64     `gorm:"column:updated_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VariantDiscountPriceCategoryHistory) TableName() string {
	return "variant_discount_price_category_histories"
}
