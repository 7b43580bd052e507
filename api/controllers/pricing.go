package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/danisworo/inventory-backoffice/api/middleware"
	"github.com/danisworo/inventory-backoffice/api/responses"
	"github.com/danisworo/inventory-backoffice/api/validators"
	pricingsvc "github.com/danisworo/inventory-backoffice/internal/pricing"
	"github.com/danisworo/inventory-backoffice/internal/rbac"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/danisworo/inventory-backoffice/pkg/logger"
)

// WriteGuard answers whether the acting user may edit pricing.
type WriteGuard interface {
	Require(ctx context.Context, userID int64, permission string) error
}

// GetInventoryPrice returns the full pricing document for a product.
func GetInventoryPrice(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.GetByProductID(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteData(w, doc)
	}
}

// UpdateInventoryPrice validates and applies a full pricing update.
func UpdateInventoryPrice(svc pricingsvc.Service, guard WriteGuard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		if guard != nil {
			if err := guard.Require(r.Context(), userID, rbac.PermissionPricingWrite); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		var payload updatePricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateByProductID(r.Context(), productID, payload.toInput(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteInfo(w, "pricing information updated")
	}
}

type updatePricingRequest struct {
	ID          int64  `json:"id" validate:"required,min=1"`
	LockVersion *int64 `json:"lock_version,omitempty" validate:"omitempty,min=0"`

	USDPrice          decimal.Decimal `json:"usd_price"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	AdjustmentPercent decimal.Decimal `json:"adjustment_percent"`
	RealCost          decimal.Decimal `json:"real_cost"`
	AdjustedCost      decimal.Decimal `json:"adjusted_cost"`

	ManualVariantPriceEdit       bool `json:"manual_variant_price_edit"`
	ProductVolumeDiscountEnabled bool `json:"product_volume_discount_enabled"`
	VariantVolumeDiscountEnabled bool `json:"variant_volume_discount_enabled"`

	CustomerCategoryPrices    []categoryPriceRequest   `json:"customer_category_prices,omitempty" validate:"omitempty,dive"`
	MarketplaceCategoryPrices []categoryPriceRequest   `json:"marketplace_category_prices,omitempty" validate:"omitempty,dive"`
	ProductVariantPrices      []variantPriceRequest    `json:"product_variant_prices,omitempty" validate:"omitempty,dive"`
	GlobalVolumeDiscounts     []globalDiscountRequest  `json:"global_volume_discounts,omitempty" validate:"omitempty,dive"`
	VariantVolumeDiscounts    []variantDiscountRequest `json:"variant_volume_discounts,omitempty" validate:"omitempty,dive"`
}

type categoryPriceRequest struct {
	ID int64 `json:"id" validate:"required,min=1"`

	PriceCategoryID         int64           `json:"price_category_id" validate:"required,min=1"`
	PriceCategoryName       string          `json:"price_category_name"`
	PriceCategoryPercentage decimal.Decimal `json:"price_category_percentage"`
	PriceCategorySetDefault bool            `json:"price_category_set_default"`

	PreTaxPrice   decimal.Decimal `json:"pre_tax_price"`
	TaxedPrice    decimal.Decimal `json:"taxed_price"`
	TaxID         *int64          `json:"tax_id,omitempty" validate:"omitempty,min=1"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	IsCustomPrice bool            `json:"is_custom_price"`
	IsCustomTax   bool            `json:"is_custom_tax"`
}

type variantPriceRequest struct {
	VariantID       string `json:"variant_id" validate:"required"`
	PriceCategoryID *int64 `json:"price_category_id,omitempty" validate:"omitempty,min=1"`

	USDPrice          decimal.Decimal `json:"usd_price"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	AdjustmentPercent decimal.Decimal `json:"adjustment_percent"`
	Price             decimal.Decimal `json:"price"`
	IsActive          bool            `json:"is_active"`

	PriceCategories []variantPriceCellRequest `json:"price_categories,omitempty" validate:"omitempty,dive"`
}

type variantPriceCellRequest struct {
	PriceCategoryID int64           `json:"price_category_id" validate:"required,min=1"`
	Price           decimal.Decimal `json:"price"`
}

type discountPriceCategoryRequest struct {
	ID string `json:"id,omitempty"`

	PriceCategoryID         int64           `json:"price_category_id" validate:"required,min=1"`
	PriceCategoryName       string          `json:"price_category_name"`
	PriceCategoryPercentage decimal.Decimal `json:"price_category_percentage"`
	PriceCategorySetDefault bool            `json:"price_category_set_default"`
	Price                   decimal.Decimal `json:"price"`
}

type globalDiscountRequest struct {
	ID              string                         `json:"id,omitempty"`
	Quantity        int64                          `json:"quantity" validate:"required,min=1"`
	DiscountPercent decimal.Decimal                `json:"discount_percentage"`
	PriceCategories []discountPriceCategoryRequest `json:"global_volume_discount_price_categories" validate:"required,min=1,dive"`
}

type quantityTierRequest struct {
	ID              string                         `json:"id,omitempty"`
	Quantity        int64                          `json:"quantity" validate:"required,min=1"`
	DiscountPercent decimal.Decimal                `json:"discount_percentage"`
	PriceCategories []discountPriceCategoryRequest `json:"price_categories" validate:"required,min=1,dive"`
}

type variantDiscountRequest struct {
	ID            string                `json:"id,omitempty"`
	VariantID     string                `json:"variant_id" validate:"required"`
	IsActive      bool                  `json:"is_active"`
	QuantityTiers []quantityTierRequest `json:"quantity_tiers" validate:"required,min=1,dive"`
}

func (req updatePricingRequest) toInput() pricingsvc.UpdateInput {
	input := pricingsvc.UpdateInput{
		ID:          req.ID,
		LockVersion: req.LockVersion,

		USDPrice:          req.USDPrice,
		ExchangeRate:      req.ExchangeRate,
		AdjustmentPercent: req.AdjustmentPercent,
		RealCost:          req.RealCost,
		AdjustedCost:      req.AdjustedCost,

		ManualVariantPriceEdit:       req.ManualVariantPriceEdit,
		ProductVolumeDiscountEnabled: req.ProductVolumeDiscountEnabled,
		VariantVolumeDiscountEnabled: req.VariantVolumeDiscountEnabled,
	}

	for _, row := range req.CustomerCategoryPrices {
		input.CustomerCategoryPrices = append(input.CustomerCategoryPrices, row.toInput())
	}
	for _, row := range req.MarketplaceCategoryPrices {
		input.MarketplaceCategoryPrices = append(input.MarketplaceCategoryPrices, row.toInput())
	}
	for _, row := range req.ProductVariantPrices {
		entry := pricingsvc.VariantPriceInput{
			VariantID:         row.VariantID,
			PriceCategoryID:   row.PriceCategoryID,
			USDPrice:          row.USDPrice,
			ExchangeRate:      row.ExchangeRate,
			AdjustmentPercent: row.AdjustmentPercent,
			Price:             row.Price,
			IsActive:          row.IsActive,
		}
		for _, sub := range row.PriceCategories {
			entry.PriceCategories = append(entry.PriceCategories, pricingsvc.VariantPriceCategoryInput{
				PriceCategoryID: sub.PriceCategoryID,
				Price:           sub.Price,
			})
		}
		input.ProductVariantPrices = append(input.ProductVariantPrices, entry)
	}
	for _, row := range req.GlobalVolumeDiscounts {
		entry := pricingsvc.GlobalDiscountInput{
			ID:              row.ID,
			Quantity:        row.Quantity,
			DiscountPercent: row.DiscountPercent,
		}
		for _, sub := range row.PriceCategories {
			entry.PriceCategories = append(entry.PriceCategories, sub.toInput())
		}
		input.GlobalVolumeDiscounts = append(input.GlobalVolumeDiscounts, entry)
	}
	for _, row := range req.VariantVolumeDiscounts {
		entry := pricingsvc.VariantDiscountInput{
			ID:        row.ID,
			VariantID: row.VariantID,
			IsActive:  row.IsActive,
		}
		for _, tier := range row.QuantityTiers {
			tierInput := pricingsvc.QuantityTierInput{
				ID:              tier.ID,
				Quantity:        tier.Quantity,
				DiscountPercent: tier.DiscountPercent,
			}
			for _, sub := range tier.PriceCategories {
				tierInput.PriceCategories = append(tierInput.PriceCategories, sub.toInput())
			}
			entry.QuantityTiers = append(entry.QuantityTiers, tierInput)
		}
		input.VariantVolumeDiscounts = append(input.VariantVolumeDiscounts, entry)
	}

	return input
}

func (req categoryPriceRequest) toInput() pricingsvc.CategoryPriceInput {
	return pricingsvc.CategoryPriceInput{
		ID:                      req.ID,
		PreTaxPrice:             req.PreTaxPrice,
		TaxedPrice:              req.TaxedPrice,
		TaxID:                   req.TaxID,
		TaxPercentage:           req.TaxPercentage,
		IsCustomPrice:           req.IsCustomPrice,
		IsCustomTax:             req.IsCustomTax,
		PriceCategoryID:         req.PriceCategoryID,
		PriceCategoryName:       req.PriceCategoryName,
		PriceCategoryPercentage: req.PriceCategoryPercentage,
		PriceCategorySetDefault: req.PriceCategorySetDefault,
	}
}

func (req discountPriceCategoryRequest) toInput() pricingsvc.DiscountPriceCategoryInput {
	return pricingsvc.DiscountPriceCategoryInput{
		ID:                      req.ID,
		PriceCategoryID:         req.PriceCategoryID,
		PriceCategoryName:       req.PriceCategoryName,
		PriceCategoryPercentage: req.PriceCategoryPercentage,
		PriceCategorySetDefault: req.PriceCategorySetDefault,
		Price:                   req.Price,
	}
}
