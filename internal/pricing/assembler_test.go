package pricing

import (
	"database/sql"
	"testing"
	"time"

	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAssembleDocumentEmptyCollectionsStayNonNil(t *testing.T) {
	doc := assembleDocument(&models.PricingInformation{ID: 7, ProductID: 42}, nil)

	require.NotNil(t, doc.CustomerCategoryPrices)
	require.NotNil(t, doc.MarketplaceCategoryPrices)
	require.NotNil(t, doc.GlobalVolumeDiscounts)
	require.NotNil(t, doc.VariantVolumeDiscounts)
	require.NotNil(t, doc.VariantPrices)
}

func TestAssembleDocumentNormalizesUpdatedAtToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	pricing := &models.PricingInformation{
		ID:        7,
		UpdatedAt: time.Date(2025, 4, 15, 16, 30, 0, 0, loc),
	}

	doc := assembleDocument(pricing, nil)
	require.Equal(t, time.UTC, doc.UpdatedAt.Location())
	require.Equal(t, 9, doc.UpdatedAt.Hour())
}

func TestGroupVariantMatrixGroupsCellsPerVariant(t *testing.T) {
	records := []VariantMatrixRecord{
		{
			VariantID:       "var-blue",
			VariantFullName: "Blue / 1g",
			VariantSKU:      "V-BLUE",
			PriceID:         sql.NullString{String: "vp-1", Valid: true},
			Price:           decimal.NewNullDecimal(dec("162750")),
			IsActive:        sql.NullBool{Bool: true, Valid: true},
		},
		{
			VariantID:         "var-blue",
			VariantFullName:   "Blue / 1g",
			VariantSKU:        "V-BLUE",
			PriceID:           sql.NullString{String: "vp-2", Valid: true},
			PriceCategoryID:   sql.NullInt64{Int64: 1, Valid: true},
			PriceCategoryName: sql.NullString{String: "Retail", Valid: true},
			Price:             decimal.NewNullDecimal(dec("150000")),
		},
		{
			VariantID:       "var-red",
			VariantFullName: "Red / 1g",
			VariantSKU:      "V-RED",
		},
	}

	groups := groupVariantMatrix(records)
	require.Len(t, groups, 2)

	require.Equal(t, "var-blue", groups[0].VariantID)
	require.Len(t, groups[0].Prices, 2)
	require.Nil(t, groups[0].Prices[0].PriceCategoryID)
	require.NotNil(t, groups[0].Prices[1].PriceCategoryID)
	require.Equal(t, int64(1), *groups[0].Prices[1].PriceCategoryID)
	require.Equal(t, "Retail", groups[0].Prices[1].PriceCategoryName)

	// Variants without price rows still form a group.
	require.Equal(t, "var-red", groups[1].VariantID)
	require.Empty(t, groups[1].Prices)
}
