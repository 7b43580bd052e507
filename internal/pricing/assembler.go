package pricing

import (
	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	"github.com/shopspring/decimal"
)

// assembleDocument maps the loaded aggregate plus the variant matrix join
// onto the read model. Child collections are always non-nil so the JSON
// document never contains null arrays.
func assembleDocument(pricing *models.PricingInformation, matrix []VariantMatrixRecord) *Document {
	doc := &Document{
		ID:          pricing.ID,
		ProductID:   pricing.ProductID,
		LockVersion: pricing.LockVersion,

		USDPrice:          pricing.USDPrice,
		ExchangeRate:      pricing.ExchangeRate,
		AdjustmentPercent: pricing.AdjustmentPercent,
		RealCost:          pricing.RealCost,
		AdjustedCost:      pricing.AdjustedCost,

		ManualVariantPriceEdit:       pricing.ManualVariantPriceEdit,
		ProductVolumeDiscountEnabled: pricing.ProductVolumeDiscountEnabled,
		VariantVolumeDiscountEnabled: pricing.VariantVolumeDiscountEnabled,

		UpdatedAt: pricing.UpdatedAt.UTC(),

		CustomerCategoryPrices:    make([]CategoryPriceDoc, 0, len(pricing.CustomerCategoryPrices)),
		MarketplaceCategoryPrices: make([]CategoryPriceDoc, 0, len(pricing.MarketplaceCategoryPrices)),
		GlobalVolumeDiscounts:     make([]GlobalDiscountDoc, 0, len(pricing.GlobalVolumeDiscounts)),
		VariantVolumeDiscounts:    make([]VariantDiscountDoc, 0, len(pricing.VariantVolumeDiscounts)),
		VariantPrices:             []VariantPricesDoc{},
	}

	for _, row := range pricing.CustomerCategoryPrices {
		doc.CustomerCategoryPrices = append(doc.CustomerCategoryPrices, toCategoryPriceDoc(row.ID, categoryPriceFields{
			PriceCategoryID:         row.PriceCategoryID,
			PriceCategoryName:       row.PriceCategoryName,
			PriceCategoryPercentage: row.PriceCategoryPercentage,
			PriceCategorySetDefault: row.PriceCategorySetDefault,
			PreTaxPrice:             row.PreTaxPrice,
			TaxedPrice:              row.TaxedPrice,
			TaxID:                   row.TaxID,
			TaxPercentage:           row.TaxPercentage,
			IsCustomPrice:           row.IsCustomPrice,
			IsCustomTax:             row.IsCustomTax,
		}))
	}
	for _, row := range pricing.MarketplaceCategoryPrices {
		doc.MarketplaceCategoryPrices = append(doc.MarketplaceCategoryPrices, toCategoryPriceDoc(row.ID, categoryPriceFields{
			PriceCategoryID:         row.PriceCategoryID,
			PriceCategoryName:       row.PriceCategoryName,
			PriceCategoryPercentage: row.PriceCategoryPercentage,
			PriceCategorySetDefault: row.PriceCategorySetDefault,
			PreTaxPrice:             row.PreTaxPrice,
			TaxedPrice:              row.TaxedPrice,
			TaxID:                   row.TaxID,
			TaxPercentage:           row.TaxPercentage,
			IsCustomPrice:           row.IsCustomPrice,
			IsCustomTax:             row.IsCustomTax,
		}))
	}

	for _, discount := range pricing.GlobalVolumeDiscounts {
		entry := GlobalDiscountDoc{
			ID:              discount.ID,
			Quantity:        discount.Quantity,
			DiscountPercent: discount.DiscountPercent,
			PriceCategories: make([]DiscountPriceCategoryDoc, 0, len(discount.PriceCategories)),
		}
		for _, sub := range discount.PriceCategories {
			entry.PriceCategories = append(entry.PriceCategories, DiscountPriceCategoryDoc{
				ID:                      sub.ID,
				PriceCategoryID:         sub.PriceCategoryID,
				PriceCategoryName:       sub.PriceCategoryName,
				PriceCategoryPercentage: sub.PriceCategoryPercentage,
				PriceCategorySetDefault: sub.PriceCategorySetDefault,
				Price:                   sub.Price,
			})
		}
		doc.GlobalVolumeDiscounts = append(doc.GlobalVolumeDiscounts, entry)
	}

	for _, discount := range pricing.VariantVolumeDiscounts {
		entry := VariantDiscountDoc{
			ID:              discount.ID,
			VariantID:       discount.VariantID,
			VariantFullName: discount.VariantFullName,
			VariantSKU:      discount.VariantSKU,
			IsActive:        discount.IsActive,
			QuantityTiers:   make([]QuantityTierDoc, 0, len(discount.QuantityTiers)),
		}
		for _, tier := range discount.QuantityTiers {
			tierDoc := QuantityTierDoc{
				ID:              tier.ID,
				Quantity:        tier.Quantity,
				DiscountPercent: tier.DiscountPercent,
				PriceCategories: make([]DiscountPriceCategoryDoc, 0, len(tier.PriceCategories)),
			}
			for _, sub := range tier.PriceCategories {
				tierDoc.PriceCategories = append(tierDoc.PriceCategories, DiscountPriceCategoryDoc{
					ID:                      sub.ID,
					PriceCategoryID:         sub.PriceCategoryID,
					PriceCategoryName:       sub.PriceCategoryName,
					PriceCategoryPercentage: sub.PriceCategoryPercentage,
					PriceCategorySetDefault: sub.PriceCategorySetDefault,
					Price:                   sub.Price,
				})
			}
			entry.QuantityTiers = append(entry.QuantityTiers, tierDoc)
		}
		doc.VariantVolumeDiscounts = append(doc.VariantVolumeDiscounts, entry)
	}

	doc.VariantPrices = groupVariantMatrix(matrix)
	return doc
}

type categoryPriceFields struct {
	PriceCategoryID         int64
	PriceCategoryName       string
	PriceCategoryPercentage decimal.Decimal
	PriceCategorySetDefault bool
	PreTaxPrice             decimal.Decimal
	TaxedPrice              decimal.Decimal
	TaxID                   *int64
	TaxPercentage           decimal.Decimal
	IsCustomPrice           bool
	IsCustomTax             bool
}

func toCategoryPriceDoc(id int64, f categoryPriceFields) CategoryPriceDoc {
	return CategoryPriceDoc{
		ID:                      id,
		PriceCategoryID:         f.PriceCategoryID,
		PriceCategoryName:       f.PriceCategoryName,
		PriceCategoryPercentage: f.PriceCategoryPercentage,
		PriceCategorySetDefault: f.PriceCategorySetDefault,
		PreTaxPrice:             f.PreTaxPrice,
		TaxedPrice:              f.TaxedPrice,
		TaxID:                   f.TaxID,
		TaxPercentage:           f.TaxPercentage,
		IsCustomPrice:           f.IsCustomPrice,
		IsCustomTax:             f.IsCustomTax,
	}
}

// groupVariantMatrix folds join records into one group per variant. The
// query orders by variant name, so groups come out sorted; variants with
// no price rows still appear with an empty Prices slice.
func groupVariantMatrix(records []VariantMatrixRecord) []VariantPricesDoc {
	groups := []VariantPricesDoc{}
	index := map[string]int{}

	for _, record := range records {
		pos, ok := index[record.VariantID]
		if !ok {
			pos = len(groups)
			index[record.VariantID] = pos
			groups = append(groups, VariantPricesDoc{
				VariantID:       record.VariantID,
				VariantFullName: record.VariantFullName,
				VariantSKU:      record.VariantSKU,
				Prices:          []VariantPriceCellDoc{},
			})
		}

		if !record.PriceID.Valid {
			continue
		}

		cell := VariantPriceCellDoc{
			ID:                record.PriceID.String,
			USDPrice:          record.USDPrice.Decimal,
			ExchangeRate:      record.ExchangeRate.Decimal,
			AdjustmentPercent: record.AdjustmentPercent.Decimal,
			Price:             record.Price.Decimal,
			IsActive:          record.IsActive.Bool,
		}
		if record.PriceCategoryID.Valid {
			id := record.PriceCategoryID.Int64
			cell.PriceCategoryID = &id
		}
		if record.PriceCategoryName.Valid {
			cell.PriceCategoryName = record.PriceCategoryName.String
		}
		groups[pos].Prices = append(groups[pos].Prices, cell)
	}

	return groups
}
