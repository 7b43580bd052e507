package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields are stored as numeric strings but the API contract is
	// plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// UpdateInput is the full pricing-update payload for one product. The four
// child collections are reconciled against stored state; absent collections
// mean "no changes", not "delete everything".
type UpdateInput struct {
	ID          int64
	LockVersion *int64

	USDPrice          decimal.Decimal
	ExchangeRate      decimal.Decimal
	AdjustmentPercent decimal.Decimal
	RealCost          decimal.Decimal
	AdjustedCost      decimal.Decimal

	ManualVariantPriceEdit       bool
	ProductVolumeDiscountEnabled bool
	VariantVolumeDiscountEnabled bool

	CustomerCategoryPrices    []CategoryPriceInput
	MarketplaceCategoryPrices []CategoryPriceInput
	ProductVariantPrices      []VariantPriceInput
	GlobalVolumeDiscounts     []GlobalDiscountInput
	VariantVolumeDiscounts    []VariantDiscountInput
}

// CategoryPriceInput edits an existing customer or marketplace segment
// price row. These rows are never created through an update, only matched
// by id and modified.
type CategoryPriceInput struct {
	ID int64

	PreTaxPrice   decimal.Decimal
	TaxedPrice    decimal.Decimal
	TaxID         *int64
	TaxPercentage decimal.Decimal
	IsCustomPrice bool
	IsCustomTax   bool

	// Snapshot identity, recorded into history but owned by the
	// price-category master data and never mutated here.
	PriceCategoryID         int64
	PriceCategoryName       string
	PriceCategoryPercentage decimal.Decimal
	PriceCategorySetDefault bool
}

// VariantPriceInput upserts the manual price of one variant, optionally
// fanning out to per-price-category rows.
type VariantPriceInput struct {
	VariantID       string
	PriceCategoryID *int64

	USDPrice          decimal.Decimal
	ExchangeRate      decimal.Decimal
	AdjustmentPercent decimal.Decimal
	Price             decimal.Decimal
	IsActive          bool

	PriceCategories []VariantPriceCategoryInput
}

// VariantPriceCategoryInput is one (variant, price category) price cell.
type VariantPriceCategoryInput struct {
	PriceCategoryID int64
	Price           decimal.Decimal
}

// DiscountPriceCategoryInput is the discounted price for one price
// category under a discount or a quantity tier.
type DiscountPriceCategoryInput struct {
	ID string // empty for rows matched by price category

	PriceCategoryID         int64
	PriceCategoryName       string
	PriceCategoryPercentage decimal.Decimal
	PriceCategorySetDefault bool
	Price                   decimal.Decimal
}

// GlobalDiscountInput is one product-wide volume discount entry. An empty
// ID means create-or-match-by-quantity; a present ID must resolve to an
// existing row.
type GlobalDiscountInput struct {
	ID              string
	Quantity        int64
	DiscountPercent decimal.Decimal
	PriceCategories []DiscountPriceCategoryInput
}

// VariantDiscountInput is one per-variant volume discount entry with its
// quantity ladder.
type VariantDiscountInput struct {
	ID            string
	VariantID     string
	IsActive      bool
	QuantityTiers []QuantityTierInput
}

// QuantityTierInput is one threshold/percentage pair inside a variant
// volume discount.
type QuantityTierInput struct {
	ID              string
	Quantity        int64
	DiscountPercent decimal.Decimal
	PriceCategories []DiscountPriceCategoryInput
}

// Document is the nested read model for one product's pricing tree. Child
// collections are always present, never null.
type Document struct {
	ID          int64 `json:"id"`
	ProductID   int64 `json:"product_id"`
	LockVersion int64 `json:"lock_version"`

	USDPrice          decimal.Decimal `json:"usd_price"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	AdjustmentPercent decimal.Decimal `json:"adjustment_percent"`
	RealCost          decimal.Decimal `json:"real_cost"`
	AdjustedCost      decimal.Decimal `json:"adjusted_cost"`

	ManualVariantPriceEdit       bool `json:"manual_variant_price_edit"`
	ProductVolumeDiscountEnabled bool `json:"product_volume_discount_enabled"`
	VariantVolumeDiscountEnabled bool `json:"variant_volume_discount_enabled"`

	UpdatedAt time.Time `json:"updated_at"`

	CustomerCategoryPrices    []CategoryPriceDoc    `json:"customer_category_prices"`
	MarketplaceCategoryPrices []CategoryPriceDoc    `json:"marketplace_category_prices"`
	GlobalVolumeDiscounts     []GlobalDiscountDoc   `json:"global_volume_discounts"`
	VariantVolumeDiscounts    []VariantDiscountDoc  `json:"variant_volume_discounts"`
	VariantPrices             []VariantPricesDoc    `json:"product_variant_prices"`
}

// CategoryPriceDoc is one segment price row in the read model.
type CategoryPriceDoc struct {
	ID                      int64           `json:"id"`
	PriceCategoryID         int64           `json:"price_category_id"`
	PriceCategoryName       string          `json:"price_category_name"`
	PriceCategoryPercentage decimal.Decimal `json:"price_category_percentage"`
	PriceCategorySetDefault bool            `json:"price_category_set_default"`
	PreTaxPrice             decimal.Decimal `json:"pre_tax_price"`
	TaxedPrice              decimal.Decimal `json:"taxed_price"`
	TaxID                   *int64          `json:"tax_id"`
	TaxPercentage           decimal.Decimal `json:"tax_percentage"`
	IsCustomPrice           bool            `json:"is_custom_price"`
	IsCustomTax             bool            `json:"is_custom_tax"`
}

// GlobalDiscountDoc is one global volume discount with its per-category prices.
type GlobalDiscountDoc struct {
	ID              string                   `json:"id"`
	Quantity        int64                    `json:"quantity"`
	DiscountPercent decimal.Decimal          `json:"discount_percentage"`
	PriceCategories []DiscountPriceCategoryDoc `json:"global_volume_discount_price_categories"`
}

// DiscountPriceCategoryDoc is one discounted per-category price.
type DiscountPriceCategoryDoc struct {
	ID                      string          `json:"id"`
	PriceCategoryID         int64           `json:"price_category_id"`
	PriceCategoryName       string          `json:"price_category_name"`
	PriceCategoryPercentage decimal.Decimal `json:"price_category_percentage"`
	PriceCategorySetDefault bool            `json:"price_category_set_default"`
	Price                   decimal.Decimal `json:"price"`
}

// VariantDiscountDoc is one variant volume discount with its quantity ladder.
type VariantDiscountDoc struct {
	ID              string            `json:"id"`
	VariantID       string            `json:"variant_id"`
	VariantFullName string            `json:"variant_full_name"`
	VariantSKU      string            `json:"variant_sku"`
	IsActive        bool              `json:"is_active"`
	QuantityTiers   []QuantityTierDoc `json:"quantity_tiers"`
}

// QuantityTierDoc is one tier of a variant volume discount.
type QuantityTierDoc struct {
	ID              string                     `json:"id"`
	Quantity        int64                      `json:"quantity"`
	DiscountPercent decimal.Decimal            `json:"discount_percentage"`
	PriceCategories []DiscountPriceCategoryDoc `json:"price_categories"`
}

// VariantPricesDoc groups the price matrix cells of one variant, sorted
// by variant name in the document.
type VariantPricesDoc struct {
	VariantID       string                `json:"variant_id"`
	VariantFullName string                `json:"variant_full_name"`
	VariantSKU      string                `json:"variant_sku"`
	Prices          []VariantPriceCellDoc `json:"prices"`
}

// VariantPriceCellDoc is one (variant, price category) cell of the matrix.
type VariantPriceCellDoc struct {
	ID                string          `json:"id"`
	PriceCategoryID   *int64          `json:"price_category_id"`
	PriceCategoryName string          `json:"price_category_name"`
	USDPrice          decimal.Decimal `json:"usd_price"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	AdjustmentPercent decimal.Decimal `json:"adjustment_percent"`
	Price             decimal.Decimal `json:"price"`
	IsActive          bool            `json:"is_active"`
}
