package pricing

import (
	"context"
	"testing"

	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUserID = int64(99)

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func TestUpdateByProductIDMovesCostBasisAndRecordsHistory(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	err := svc.UpdateByProductID(context.Background(), fx.ProductID, baseInput(fx), testUserID)
	require.NoError(t, err)

	var pricing models.PricingInformation
	require.NoError(t, conn.First(&pricing, fx.PricingID).Error)
	require.True(t, pricing.USDPrice.Equal(dec("12.50")), "usd price %s", pricing.USDPrice)
	require.True(t, pricing.RealCost.Equal(dec("193750")))
	require.Equal(t, int64(1), pricing.LockVersion)

	var histories []models.PricingInformationHistory
	require.NoError(t, conn.Find(&histories).Error)
	require.Len(t, histories, 1)
	require.True(t, histories[0].OldUSDPrice.Equal(dec("10.00")))
	require.True(t, histories[0].NewUSDPrice.Equal(dec("12.50")))
	require.Equal(t, testUserID, histories[0].UpdatedBy)
	require.Equal(t, fx.PricingID, histories[0].PricingInformationID)
}

func TestUpdateByProductIDRejectsStaleLockVersion(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	stale := int64(5)
	input.LockVersion = &stale

	err := svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID)
	requireCode(t, err, pkgerrors.CodeConflict)

	var pricing models.PricingInformation
	require.NoError(t, conn.First(&pricing, fx.PricingID).Error)
	require.True(t, pricing.USDPrice.Equal(dec("10.00")))
	require.Equal(t, int64(0), count(t, conn, &models.PricingInformationHistory{}))
}

func TestUpdateByProductIDUnknownProduct(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	err := svc.UpdateByProductID(context.Background(), 999, baseInput(fx), testUserID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateByProductIDEditsCategoryPriceWithPairedHistory(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	taxID := fx.TaxID
	input := baseInput(fx)
	input.CustomerCategoryPrices = []CategoryPriceInput{{
		ID:              fx.CustomerRowID,
		PriceCategoryID: fx.RetailCategoryID,
		PreTaxPrice:     dec("205000"),
		TaxedPrice:      dec("227550"),
		TaxID:           &taxID,
		TaxPercentage:   dec("11"),
		IsCustomPrice:   true,
	}}

	require.NoError(t, svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID))

	var row models.CustomerCategoryPrice
	require.NoError(t, conn.First(&row, fx.CustomerRowID).Error)
	require.True(t, row.PreTaxPrice.Equal(dec("205000")))
	require.True(t, row.IsCustomPrice)
	require.Equal(t, "Retail", row.PriceCategoryName)

	var parent models.PricingInformationHistory
	require.NoError(t, conn.First(&parent).Error)

	var histories []models.CustomerCategoryPriceHistory
	require.NoError(t, conn.Find(&histories).Error)
	require.Len(t, histories, 1)
	require.Equal(t, parent.ID, histories[0].PricingInformationHistoryID)
	require.Equal(t, fx.CustomerRowID, histories[0].CustomerCategoryPriceID)
	require.True(t, histories[0].OldPreTaxPrice.Equal(dec("200000")))
	require.True(t, histories[0].NewPreTaxPrice.Equal(dec("205000")))
	require.False(t, histories[0].OldIsCustomPrice)
	require.True(t, histories[0].NewIsCustomPrice)
	// Identity columns never move through an update.
	require.Equal(t, histories[0].OldPriceCategoryName, histories[0].NewPriceCategoryName)
}

func TestUpdateByProductIDRejectsForeignCategoryPriceRow(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	input.CustomerCategoryPrices = []CategoryPriceInput{{
		ID:              999,
		PriceCategoryID: fx.RetailCategoryID,
	}}

	err := svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID)
	requireCode(t, err, pkgerrors.CodeNotFound)

	var pricing models.PricingInformation
	require.NoError(t, conn.First(&pricing, fx.PricingID).Error)
	require.True(t, pricing.USDPrice.Equal(dec("10.00")))
}

func TestUpdateByProductIDCreatesGlobalDiscountWithoutHistory(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	input.GlobalVolumeDiscounts = []GlobalDiscountInput{{
		Quantity:        20,
		DiscountPercent: dec("8"),
		PriceCategories: []DiscountPriceCategoryInput{{
			PriceCategoryID: fx.WholesaleCategoryID,
			Price:           dec("175000"),
		}},
	}}

	require.NoError(t, svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID))

	var discount models.GlobalVolumeDiscount
	require.NoError(t, conn.Preload("PriceCategories").
		First(&discount, "pricing_information_id = ? AND quantity = ?", fx.PricingID, 20).Error)
	require.True(t, discount.DiscountPercent.Equal(dec("8")))
	require.Len(t, discount.PriceCategories, 1)
	// Category identity comes from the catalog, not the payload.
	require.Equal(t, "Wholesale", discount.PriceCategories[0].PriceCategoryName)
	require.True(t, discount.PriceCategories[0].PriceCategoryPercentage.Equal(dec("10")))
	require.True(t, discount.PriceCategories[0].Price.Equal(dec("175000")))

	require.Equal(t, int64(0), count(t, conn, &models.GlobalVolumeDiscountHistory{}))
}

func TestUpdateByProductIDEditsGlobalDiscountMatchedByQuantity(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	input.GlobalVolumeDiscounts = []GlobalDiscountInput{{
		Quantity:        10,
		DiscountPercent: dec("6"),
		PriceCategories: []DiscountPriceCategoryInput{{
			PriceCategoryID: fx.RetailCategoryID,
			Price:           dec("185000"),
		}},
	}}

	require.NoError(t, svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID))

	var discount models.GlobalVolumeDiscount
	require.NoError(t, conn.Preload("PriceCategories").First(&discount, "id = ?", fx.GlobalDiscountID).Error)
	require.True(t, discount.DiscountPercent.Equal(dec("6")))
	require.Len(t, discount.PriceCategories, 1)
	require.Equal(t, fx.GlobalDiscountPriceID, discount.PriceCategories[0].ID)
	require.True(t, discount.PriceCategories[0].Price.Equal(dec("185000")))

	var headerHistories []models.GlobalVolumeDiscountHistory
	require.NoError(t, conn.Find(&headerHistories).Error)
	require.Len(t, headerHistories, 1)
	require.Equal(t, fx.GlobalDiscountID, headerHistories[0].GlobalVolumeDiscountID)
	require.True(t, headerHistories[0].OldDiscountPercent.Equal(dec("5")))
	require.True(t, headerHistories[0].NewDiscountPercent.Equal(dec("6")))

	var childHistories []models.GlobalDiscountPriceCategoryHistory
	require.NoError(t, conn.Find(&childHistories).Error)
	require.Len(t, childHistories, 1)
	require.Equal(t, headerHistories[0].ID, childHistories[0].GlobalVolumeDiscountHistoryID)
	require.True(t, childHistories[0].OldPrice.Equal(dec("190000")))
	require.True(t, childHistories[0].NewPrice.Equal(dec("185000")))
}

func TestUpdateByProductIDRejectsDuplicateQuantities(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	input.GlobalVolumeDiscounts = []GlobalDiscountInput{
		{Quantity: 30, DiscountPercent: dec("5"), PriceCategories: []DiscountPriceCategoryInput{{PriceCategoryID: fx.RetailCategoryID, Price: dec("175000")}}},
		{Quantity: 30, DiscountPercent: dec("6"), PriceCategories: []DiscountPriceCategoryInput{{PriceCategoryID: fx.RetailCategoryID, Price: dec("172000")}}},
	}

	err := svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID)
	requireCode(t, err, pkgerrors.CodeConflict)

	var pricing models.PricingInformation
	require.NoError(t, conn.First(&pricing, fx.PricingID).Error)
	require.True(t, pricing.USDPrice.Equal(dec("10.00")))
	require.Equal(t, int64(0), count(t, conn, &models.PricingInformationHistory{}))
}

func TestUpdateByProductIDRejectsNegativeDiscountPrice(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	input.GlobalVolumeDiscounts = []GlobalDiscountInput{
		{Quantity: 20, DiscountPercent: dec("5"), PriceCategories: []DiscountPriceCategoryInput{{PriceCategoryID: fx.RetailCategoryID, Price: dec("-150000")}}},
	}

	err := svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID)
	requireCode(t, err, pkgerrors.CodeValidation)

	require.Equal(t, int64(1), count(t, conn, &models.GlobalVolumeDiscount{}))
	require.Equal(t, int64(0), count(t, conn, &models.PricingInformationHistory{}))
}

func TestUpdateByProductIDRejectsDeletedProduct(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	require.NoError(t, conn.Delete(&models.Product{}, fx.ProductID).Error)

	err := svc.UpdateByProductID(context.Background(), fx.ProductID, baseInput(fx), testUserID)
	requireCode(t, err, pkgerrors.CodeNotFound)

	var pricing models.PricingInformation
	require.NoError(t, conn.First(&pricing, fx.PricingID).Error)
	require.True(t, pricing.USDPrice.Equal(dec("10.00")))
}

func TestUpdateByProductIDUpsertsVariantPriceMatrix(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	input.ProductVariantPrices = []VariantPriceInput{{
		VariantID:         fx.VariantRed,
		USDPrice:          dec("11.00"),
		ExchangeRate:      dec("15500"),
		AdjustmentPercent: dec("5"),
		Price:             dec("160000"),
		IsActive:          true,
		PriceCategories: []VariantPriceCategoryInput{{
			PriceCategoryID: fx.RetailCategoryID,
			Price:           dec("150000"),
		}},
	}}

	require.NoError(t, svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID))
	require.Equal(t, int64(2), count(t, conn, &models.VariantPrice{}))

	var base models.VariantPrice
	require.NoError(t, conn.First(&base, "variant_id = ? AND price_category_id IS NULL", fx.VariantRed).Error)
	require.True(t, base.Price.Equal(dec("160000")))

	var cell models.VariantPrice
	require.NoError(t, conn.First(&cell, "variant_id = ? AND price_category_id = ?", fx.VariantRed, fx.RetailCategoryID).Error)
	require.True(t, cell.Price.Equal(dec("150000")))
	// Per-category cells inherit the cost basis of the parent entry.
	require.True(t, cell.USDPrice.Equal(dec("11.00")))

	// A second update edits the same cells in place.
	again := baseInput(fx)
	version := int64(1)
	again.LockVersion = &version
	again.ProductVariantPrices = []VariantPriceInput{{
		VariantID:         fx.VariantRed,
		USDPrice:          dec("11.00"),
		ExchangeRate:      dec("15500"),
		AdjustmentPercent: dec("5"),
		Price:             dec("158000"),
		IsActive:          true,
	}}
	require.NoError(t, svc.UpdateByProductID(context.Background(), fx.ProductID, again, testUserID))
	require.Equal(t, int64(2), count(t, conn, &models.VariantPrice{}))
	require.NoError(t, conn.First(&base, "variant_id = ? AND price_category_id IS NULL", fx.VariantRed).Error)
	require.True(t, base.Price.Equal(dec("158000")))
}

func TestUpdateByProductIDAddsTierToExistingVariantDiscount(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	input.VariantVolumeDiscounts = []VariantDiscountInput{{
		ID:        fx.VariantDiscountID,
		VariantID: fx.VariantBlue,
		IsActive:  true,
		QuantityTiers: []QuantityTierInput{
			{
				Quantity:        25,
				DiscountPercent: dec("7"),
				PriceCategories: []DiscountPriceCategoryInput{{
					PriceCategoryID: fx.RetailCategoryID,
					Price:           dec("178000"),
				}},
			},
			{
				Quantity:        50,
				DiscountPercent: dec("10"),
				PriceCategories: []DiscountPriceCategoryInput{{
					PriceCategoryID: fx.RetailCategoryID,
					Price:           dec("170000"),
				}},
			},
		},
	}}

	require.NoError(t, svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID))

	var discount models.VariantVolumeDiscount
	require.NoError(t, conn.
		Preload("QuantityTiers", func(db *gorm.DB) *gorm.DB { return db.Order("quantity ASC") }).
		Preload("QuantityTiers.PriceCategories").
		First(&discount, "id = ?", fx.VariantDiscountID).Error)
	require.Len(t, discount.QuantityTiers, 2)
	require.Equal(t, fx.TierID, discount.QuantityTiers[0].ID)
	require.True(t, discount.QuantityTiers[0].PriceCategories[0].Price.Equal(dec("178000")))
	require.Equal(t, int64(50), discount.QuantityTiers[1].Quantity)

	require.Equal(t, int64(1), count(t, conn, &models.VariantVolumeDiscountHistory{}))

	var tierHistories []models.VariantDiscountQuantityTierHistory
	require.NoError(t, conn.Order("id ASC").Find(&tierHistories).Error)
	require.Len(t, tierHistories, 2)
	require.Equal(t, fx.TierID, tierHistories[0].QuantityTierID)
	require.Equal(t, int64(25), tierHistories[0].OldQuantity)
	// The created tier pairs a zero old side with the inserted values.
	require.Equal(t, int64(0), tierHistories[1].OldQuantity)
	require.Equal(t, int64(50), tierHistories[1].NewQuantity)

	var priceHistories []models.VariantDiscountPriceCategoryHistory
	require.NoError(t, conn.Order("id ASC").Find(&priceHistories).Error)
	require.Len(t, priceHistories, 2)
	require.True(t, priceHistories[0].OldPrice.Equal(dec("180000")))
	require.True(t, priceHistories[0].NewPrice.Equal(dec("178000")))
	require.True(t, priceHistories[1].OldPrice.IsZero())
	require.True(t, priceHistories[1].NewPrice.Equal(dec("170000")))
}

func TestUpdateByProductIDInsertsVariantDiscountFromCatalogSnapshot(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	input.VariantVolumeDiscounts = []VariantDiscountInput{{
		VariantID: fx.VariantRed,
		IsActive:  true,
		QuantityTiers: []QuantityTierInput{{
			Quantity:        10,
			DiscountPercent: dec("4"),
			PriceCategories: []DiscountPriceCategoryInput{{
				PriceCategoryID:   fx.RetailCategoryID,
				PriceCategoryName: "stale name from client",
				Price:             dec("150000"),
			}},
		}},
	}}

	require.NoError(t, svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID))

	var discount models.VariantVolumeDiscount
	require.NoError(t, conn.
		Preload("QuantityTiers.PriceCategories").
		First(&discount, "variant_id = ?", fx.VariantRed).Error)
	require.Equal(t, "Red / 1g", discount.VariantFullName)
	require.Equal(t, "V-RED", discount.VariantSKU)
	require.Len(t, discount.QuantityTiers, 1)
	require.Equal(t, "Retail", discount.QuantityTiers[0].PriceCategories[0].PriceCategoryName)
}

func TestUpdateByProductIDRollsBackOnMidWalkFailure(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	input := baseInput(fx)
	input.VariantVolumeDiscounts = []VariantDiscountInput{{
		ID:        fx.VariantDiscountID,
		VariantID: fx.VariantBlue,
		IsActive:  true,
		QuantityTiers: []QuantityTierInput{{
			ID:              fx.TierID,
			Quantity:        25,
			DiscountPercent: dec("7"),
			PriceCategories: []DiscountPriceCategoryInput{{
				ID:              "missing-row",
				PriceCategoryID: fx.RetailCategoryID,
				Price:           dec("170000"),
			}},
		}},
	}}

	err := svc.UpdateByProductID(context.Background(), fx.ProductID, input, testUserID)
	requireCode(t, err, pkgerrors.CodeNotFound)

	// The cost basis write and every history row roll back together.
	var pricing models.PricingInformation
	require.NoError(t, conn.First(&pricing, fx.PricingID).Error)
	require.True(t, pricing.USDPrice.Equal(dec("10.00")))
	require.Equal(t, int64(0), pricing.LockVersion)
	require.Equal(t, int64(0), count(t, conn, &models.PricingInformationHistory{}))
	require.Equal(t, int64(0), count(t, conn, &models.VariantDiscountQuantityTierHistory{}))
}

func TestGetByProductIDAssemblesDocument(t *testing.T) {
	conn := newTestDB(t)
	fx := seedAggregate(t, conn)
	svc := newTestService(t, conn)

	mustCreate(t, conn, &models.VariantPrice{
		ID:                   "vp-blue",
		PricingInformationID: fx.PricingID,
		VariantID:            fx.VariantBlue,
		USDPrice:             dec("10.00"),
		ExchangeRate:         dec("15500"),
		AdjustmentPercent:    dec("5"),
		Price:                dec("162750"),
		IsActive:             true,
	})

	doc, err := svc.GetByProductID(context.Background(), fx.ProductID)
	require.NoError(t, err)
	require.Equal(t, fx.PricingID, doc.ID)
	require.Equal(t, fx.ProductID, doc.ProductID)
	require.Equal(t, int64(0), doc.LockVersion)
	require.Len(t, doc.CustomerCategoryPrices, 1)
	require.Len(t, doc.MarketplaceCategoryPrices, 1)
	require.Len(t, doc.GlobalVolumeDiscounts, 1)
	require.Len(t, doc.VariantVolumeDiscounts, 1)

	require.Len(t, doc.VariantPrices, 2)
	require.Equal(t, fx.VariantBlue, doc.VariantPrices[0].VariantID)
	require.Len(t, doc.VariantPrices[0].Prices, 1)
	require.True(t, doc.VariantPrices[0].Prices[0].Price.Equal(dec("162750")))
	// The second variant has no price rows yet but still appears.
	require.Equal(t, fx.VariantRed, doc.VariantPrices[1].VariantID)
	require.Empty(t, doc.VariantPrices[1].Prices)
}

func TestGetByProductIDUnknownProduct(t *testing.T) {
	conn := newTestDB(t)
	seedAggregate(t, conn)
	svc := newTestService(t, conn)

	_, err := svc.GetByProductID(context.Background(), 999)
	requireCode(t, err, pkgerrors.CodeNotFound)
}
