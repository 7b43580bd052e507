package pricing

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/danisworo/inventory-backoffice/pkg/db"
	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	"github.com/danisworo/inventory-backoffice/pkg/ids"
	"github.com/danisworo/inventory-backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:pricing_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.PriceCategory{},
		&models.Tax{},
		&models.PricingInformation{},
		&models.CustomerCategoryPrice{},
		&models.MarketplaceCategoryPrice{},
		&models.VariantPrice{},
		&models.GlobalVolumeDiscount{},
		&models.GlobalDiscountPriceCategory{},
		&models.VariantVolumeDiscount{},
		&models.VariantDiscountQuantityTier{},
		&models.VariantDiscountPriceCategory{},
		&models.PricingInformationHistory{},
		&models.CustomerCategoryPriceHistory{},
		&models.MarketplaceCategoryPriceHistory{},
		&models.GlobalVolumeDiscountHistory{},
		&models.GlobalDiscountPriceCategoryHistory{},
		&models.VariantVolumeDiscountHistory{},
		&models.VariantDiscountQuantityTierHistory{},
		&models.VariantDiscountPriceCategoryHistory{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// testCatalog reads reference data straight from the test database.
type testCatalog struct {
	db *gorm.DB
}

func (c *testCatalog) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var row models.Product
	if err := c.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (c *testCatalog) FindVariantByID(ctx context.Context, id string) (*models.ProductVariant, error) {
	var row models.ProductVariant
	if err := c.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (c *testCatalog) FindPriceCategoryByID(ctx context.Context, id int64) (*models.PriceCategory, error) {
	var row models.PriceCategory
	if err := c.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (c *testCatalog) FindTaxByID(ctx context.Context, id int64) (*models.Tax, error) {
	var row models.Tax
	if err := c.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// seqIDs yields deterministic ids so assertions can reference created rows.
func seqIDs() ids.Generator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("test-%04d", n)
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		db.FromConn(conn),
		&testCatalog{db: conn},
		seqIDs(),
		nil,
		testLogger(),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

type fixture struct {
	ProductID int64
	PricingID int64

	CustomerRowID    int64
	MarketplaceRowID int64

	VariantBlue string
	VariantRed  string

	RetailCategoryID    int64
	WholesaleCategoryID int64
	TaxID               int64

	GlobalDiscountID      string
	GlobalDiscountPriceID string

	VariantDiscountID string
	TierID            string
	TierPriceID       string
}

// seedAggregate creates one product with two variants, the shared catalog
// rows, and a pricing tree carrying a global discount and a variant
// discount with a single tier.
func seedAggregate(t *testing.T, conn *gorm.DB) fixture {
	t.Helper()

	fx := fixture{
		ProductID:             42,
		PricingID:             7,
		VariantBlue:           "var-blue",
		VariantRed:            "var-red",
		RetailCategoryID:      1,
		WholesaleCategoryID:   2,
		TaxID:                 1,
		GlobalDiscountID:      "gvd-10",
		GlobalDiscountPriceID: "gvdpc-1",
		VariantDiscountID:     "vvd-blue",
		TierID:                "tier-25",
		TierPriceID:           "vdpc-1",
	}

	mustCreate(t, conn, &models.Product{ID: fx.ProductID, Name: "Sample Flower", SKU: "SKU-42", IsActive: true})
	mustCreate(t, conn, &models.ProductVariant{ID: fx.VariantBlue, ProductID: fx.ProductID, FullName: "Blue / 1g", SKU: "V-BLUE", IsActive: true})
	mustCreate(t, conn, &models.ProductVariant{ID: fx.VariantRed, ProductID: fx.ProductID, FullName: "Red / 1g", SKU: "V-RED", IsActive: true})
	mustCreate(t, conn, &models.PriceCategory{ID: fx.RetailCategoryID, Name: "Retail", Percentage: dec("0"), SetDefault: true})
	mustCreate(t, conn, &models.PriceCategory{ID: fx.WholesaleCategoryID, Name: "Wholesale", Percentage: dec("10")})
	mustCreate(t, conn, &models.Tax{ID: fx.TaxID, Name: "VAT", Percentage: dec("11")})

	mustCreate(t, conn, &models.PricingInformation{
		ID:                fx.PricingID,
		ProductID:         fx.ProductID,
		USDPrice:          dec("10.00"),
		ExchangeRate:      dec("15500"),
		AdjustmentPercent: dec("5"),
		RealCost:          dec("155000"),
		AdjustedCost:      dec("162750"),
	})

	taxID := fx.TaxID
	customer := &models.CustomerCategoryPrice{
		PricingInformationID:    fx.PricingID,
		PriceCategoryID:         fx.RetailCategoryID,
		PriceCategoryName:       "Retail",
		PriceCategoryPercentage: dec("0"),
		PriceCategorySetDefault: true,
		PreTaxPrice:             dec("200000"),
		TaxedPrice:              dec("222000"),
		TaxID:                   &taxID,
		TaxPercentage:           dec("11"),
	}
	mustCreate(t, conn, customer)
	fx.CustomerRowID = customer.ID

	marketplace := &models.MarketplaceCategoryPrice{
		PricingInformationID:    fx.PricingID,
		PriceCategoryID:         fx.RetailCategoryID,
		PriceCategoryName:       "Retail",
		PriceCategoryPercentage: dec("0"),
		PriceCategorySetDefault: true,
		PreTaxPrice:             dec("210000"),
		TaxedPrice:              dec("233100"),
		TaxID:                   &taxID,
		TaxPercentage:           dec("11"),
	}
	mustCreate(t, conn, marketplace)
	fx.MarketplaceRowID = marketplace.ID

	mustCreate(t, conn, &models.GlobalVolumeDiscount{
		ID:                   fx.GlobalDiscountID,
		PricingInformationID: fx.PricingID,
		Quantity:             10,
		DiscountPercent:      dec("5"),
		PriceCategories: []models.GlobalDiscountPriceCategory{{
			ID:                      fx.GlobalDiscountPriceID,
			GlobalVolumeDiscountID:  fx.GlobalDiscountID,
			PriceCategoryID:         fx.RetailCategoryID,
			PriceCategoryName:       "Retail",
			PriceCategorySetDefault: true,
			Price:                   dec("190000"),
		}},
	})

	mustCreate(t, conn, &models.VariantVolumeDiscount{
		ID:                   fx.VariantDiscountID,
		PricingInformationID: fx.PricingID,
		VariantID:            fx.VariantBlue,
		VariantFullName:      "Blue / 1g",
		VariantSKU:           "V-BLUE",
		IsActive:             true,
		QuantityTiers: []models.VariantDiscountQuantityTier{{
			ID:                      fx.TierID,
			VariantVolumeDiscountID: fx.VariantDiscountID,
			Quantity:                25,
			DiscountPercent:         dec("7"),
			PriceCategories: []models.VariantDiscountPriceCategory{{
				ID:                      fx.TierPriceID,
				QuantityTierID:          fx.TierID,
				PriceCategoryID:         fx.RetailCategoryID,
				PriceCategoryName:       "Retail",
				PriceCategorySetDefault: true,
				Price:                   dec("180000"),
			}},
		}},
	})

	return fx
}

func mustCreate(t *testing.T, conn *gorm.DB, row any) {
	t.Helper()
	if err := conn.Create(row).Error; err != nil {
		t.Fatalf("seed %T: %v", row, err)
	}
}

// baseInput mirrors the stored scalars with a fresh cost basis so updates
// always move the top-level row.
func baseInput(fx fixture) UpdateInput {
	version := int64(0)
	return UpdateInput{
		ID:                fx.PricingID,
		LockVersion:       &version,
		USDPrice:          dec("12.50"),
		ExchangeRate:      dec("15500"),
		AdjustmentPercent: dec("5"),
		RealCost:          dec("193750"),
		AdjustedCost:      dec("203437.50"),
	}
}

func count(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := conn.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}
