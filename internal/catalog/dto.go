package catalog

import "github.com/shopspring/decimal"

// PriceCategoryDTO is one shared pricing tier.
type PriceCategoryDTO struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	SetDefault bool            `json:"set_default"`
}

// TaxDTO is one tax rate.
type TaxDTO struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
}

// VariantDTO is one product variant.
type VariantDTO struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	SKU      string `json:"sku"`
	IsActive bool   `json:"is_active"`
}
