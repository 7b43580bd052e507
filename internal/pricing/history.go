package pricing

import (
	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	"github.com/shopspring/decimal"
)

// History builders pair the stored value (old) with the incoming value
// (new) for each mutated entity. For rows created during the update the
// old side is the zero value, which reads as "did not exist before".

func buildPricingHistory(current *models.PricingInformation, input UpdateInput, userID int64) *models.PricingInformationHistory {
	return &models.PricingInformationHistory{
		PricingInformationID: current.ID,

		OldUSDPrice:          current.USDPrice,
		NewUSDPrice:          input.USDPrice,
		OldExchangeRate:      current.ExchangeRate,
		NewExchangeRate:      input.ExchangeRate,
		OldAdjustmentPercent: current.AdjustmentPercent,
		NewAdjustmentPercent: input.AdjustmentPercent,
		OldRealCost:          current.RealCost,
		NewRealCost:          input.RealCost,
		OldAdjustedCost:      current.AdjustedCost,
		NewAdjustedCost:      input.AdjustedCost,

		OldManualVariantPriceEdit:       current.ManualVariantPriceEdit,
		NewManualVariantPriceEdit:       input.ManualVariantPriceEdit,
		OldProductVolumeDiscountEnabled: current.ProductVolumeDiscountEnabled,
		NewProductVolumeDiscountEnabled: input.ProductVolumeDiscountEnabled,
		OldVariantVolumeDiscountEnabled: current.VariantVolumeDiscountEnabled,
		NewVariantVolumeDiscountEnabled: input.VariantVolumeDiscountEnabled,

		UpdatedBy: userID,
	}
}

// buildCustomerPriceHistory records a segment price edit. The category
// identity columns never change through an update, so old and new carry
// the stored snapshot on both sides.
func buildCustomerPriceHistory(historyID int64, stored *models.CustomerCategoryPrice, input CategoryPriceInput, userID int64) *models.CustomerCategoryPriceHistory {
	return &models.CustomerCategoryPriceHistory{
		PricingInformationHistoryID: historyID,
		CustomerCategoryPriceID:     stored.ID,

		OldPriceCategoryName:       stored.PriceCategoryName,
		NewPriceCategoryName:       stored.PriceCategoryName,
		OldPriceCategoryPercentage: stored.PriceCategoryPercentage,
		NewPriceCategoryPercentage: stored.PriceCategoryPercentage,
		OldPriceCategorySetDefault: stored.PriceCategorySetDefault,
		NewPriceCategorySetDefault: stored.PriceCategorySetDefault,

		OldPreTaxPrice:   stored.PreTaxPrice,
		NewPreTaxPrice:   input.PreTaxPrice,
		OldTaxedPrice:    stored.TaxedPrice,
		NewTaxedPrice:    input.TaxedPrice,
		OldTaxID:         stored.TaxID,
		NewTaxID:         input.TaxID,
		OldTaxPercentage: stored.TaxPercentage,
		NewTaxPercentage: input.TaxPercentage,

		OldIsCustomPrice: stored.IsCustomPrice,
		NewIsCustomPrice: input.IsCustomPrice,
		OldIsCustomTax:   stored.IsCustomTax,
		NewIsCustomTax:   input.IsCustomTax,

		UpdatedBy: userID,
	}
}

func buildMarketplacePriceHistory(historyID int64, stored *models.MarketplaceCategoryPrice, input CategoryPriceInput, userID int64) *models.MarketplaceCategoryPriceHistory {
	return &models.MarketplaceCategoryPriceHistory{
		PricingInformationHistoryID: historyID,
		MarketplaceCategoryPriceID:  stored.ID,

		OldPriceCategoryName:       stored.PriceCategoryName,
		NewPriceCategoryName:       stored.PriceCategoryName,
		OldPriceCategoryPercentage: stored.PriceCategoryPercentage,
		NewPriceCategoryPercentage: stored.PriceCategoryPercentage,
		OldPriceCategorySetDefault: stored.PriceCategorySetDefault,
		NewPriceCategorySetDefault: stored.PriceCategorySetDefault,

		OldPreTaxPrice:   stored.PreTaxPrice,
		NewPreTaxPrice:   input.PreTaxPrice,
		OldTaxedPrice:    stored.TaxedPrice,
		NewTaxedPrice:    input.TaxedPrice,
		OldTaxID:         stored.TaxID,
		NewTaxID:         input.TaxID,
		OldTaxPercentage: stored.TaxPercentage,
		NewTaxPercentage: input.TaxPercentage,

		OldIsCustomPrice: stored.IsCustomPrice,
		NewIsCustomPrice: input.IsCustomPrice,
		OldIsCustomTax:   stored.IsCustomTax,
		NewIsCustomTax:   input.IsCustomTax,

		UpdatedBy: userID,
	}
}

func buildGlobalDiscountHistory(pricingHistoryID int64, stored *models.GlobalVolumeDiscount, input GlobalDiscountInput, userID int64) *models.GlobalVolumeDiscountHistory {
	return &models.GlobalVolumeDiscountHistory{
		PricingInformationHistoryID: pricingHistoryID,
		GlobalVolumeDiscountID:      stored.ID,

		OldQuantity:        stored.Quantity,
		NewQuantity:        input.Quantity,
		OldDiscountPercent: stored.DiscountPercent,
		NewDiscountPercent: input.DiscountPercent,

		UpdatedBy: userID,
	}
}

// buildGlobalDiscountPriceHistory handles both edits and inserts: a nil
// stored row yields zero-valued old columns.
func buildGlobalDiscountPriceHistory(discountHistoryID int64, rowID string, stored *models.GlobalDiscountPriceCategory, input DiscountPriceCategoryInput, userID int64) *models.GlobalDiscountPriceCategoryHistory {
	h := &models.GlobalDiscountPriceCategoryHistory{
		GlobalVolumeDiscountHistoryID: discountHistoryID,
		GlobalDiscountPriceCategoryID: rowID,

		NewPriceCategoryName:       input.PriceCategoryName,
		NewPriceCategoryPercentage: input.PriceCategoryPercentage,
		NewPriceCategorySetDefault: input.PriceCategorySetDefault,
		NewPrice:                   input.Price,

		OldPriceCategoryPercentage: decimal.Zero,
		OldPrice:                   decimal.Zero,

		UpdatedBy: userID,
	}
	if stored != nil {
		h.OldPriceCategoryName = stored.PriceCategoryName
		h.OldPriceCategoryPercentage = stored.PriceCategoryPercentage
		h.OldPriceCategorySetDefault = stored.PriceCategorySetDefault
		h.OldPrice = stored.Price
	}
	return h
}

func buildVariantDiscountHistory(pricingHistoryID int64, stored *models.VariantVolumeDiscount, newIsActive bool, userID int64) *models.VariantVolumeDiscountHistory {
	return &models.VariantVolumeDiscountHistory{
		PricingInformationHistoryID: pricingHistoryID,
		VariantVolumeDiscountID:     stored.ID,

		OldVariantFullName: stored.VariantFullName,
		NewVariantFullName: stored.VariantFullName,
		OldVariantSKU:      stored.VariantSKU,
		NewVariantSKU:      stored.VariantSKU,
		OldIsActive:        stored.IsActive,
		NewIsActive:        newIsActive,

		UpdatedBy: userID,
	}
}

func buildQuantityTierHistory(discountHistoryID int64, tierID string, stored *models.VariantDiscountQuantityTier, input QuantityTierInput, userID int64) *models.VariantDiscountQuantityTierHistory {
	h := &models.VariantDiscountQuantityTierHistory{
		VariantVolumeDiscountHistoryID: discountHistoryID,
		QuantityTierID:                 tierID,

		NewQuantity:        input.Quantity,
		NewDiscountPercent: input.DiscountPercent,

		OldDiscountPercent: decimal.Zero,

		UpdatedBy: userID,
	}
	if stored != nil {
		h.OldQuantity = stored.Quantity
		h.OldDiscountPercent = stored.DiscountPercent
	}
	return h
}

func buildTierPriceHistory(tierHistoryID int64, rowID string, stored *models.VariantDiscountPriceCategory, input DiscountPriceCategoryInput, userID int64) *models.VariantDiscountPriceCategoryHistory {
	h := &models.VariantDiscountPriceCategoryHistory{
		QuantityTierHistoryID:          tierHistoryID,
		VariantDiscountPriceCategoryID: rowID,

		NewPriceCategoryName:       input.PriceCategoryName,
		NewPriceCategoryPercentage: input.PriceCategoryPercentage,
		NewPriceCategorySetDefault: input.PriceCategorySetDefault,
		NewPrice:                   input.Price,

		OldPriceCategoryPercentage: decimal.Zero,
		OldPrice:                   decimal.Zero,

		UpdatedBy: userID,
	}
	if stored != nil {
		h.OldPriceCategoryName = stored.PriceCategoryName
		h.OldPriceCategoryPercentage = stored.PriceCategoryPercentage
		h.OldPriceCategorySetDefault = stored.PriceCategorySetDefault
		h.OldPrice = stored.Price
	}
	return h
}
