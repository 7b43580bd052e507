package catalog

import (
	"context"
	"testing"

	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.PriceCategory{},
		&models.Tax{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestListPriceCategoriesDefaultFirst(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, conn.Create(&models.PriceCategory{ID: 1, Name: "Wholesale", Percentage: dec("10")}).Error)
	require.NoError(t, conn.Create(&models.PriceCategory{ID: 2, Name: "Retail", SetDefault: true}).Error)
	svc := newService(t, conn)

	rows, err := svc.ListPriceCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Retail", rows[0].Name)
	require.True(t, rows[0].SetDefault)
	require.Equal(t, "Wholesale", rows[1].Name)
}

func TestListTaxes(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, conn.Create(&models.Tax{ID: 1, Name: "VAT", Percentage: dec("11")}).Error)
	svc := newService(t, conn)

	rows, err := svc.ListTaxes(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "VAT", rows[0].Name)
	require.True(t, rows[0].Percentage.Equal(dec("11")))
}

func TestListProductVariantsSortedByName(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, conn.Create(&models.Product{ID: 42, Name: "Sample", SKU: "SKU-42", IsActive: true}).Error)
	require.NoError(t, conn.Create(&models.ProductVariant{ID: "var-red", ProductID: 42, FullName: "Red / 1g", SKU: "V-RED", IsActive: true}).Error)
	require.NoError(t, conn.Create(&models.ProductVariant{ID: "var-blue", ProductID: 42, FullName: "Blue / 1g", SKU: "V-BLUE", IsActive: true}).Error)
	svc := newService(t, conn)

	rows, err := svc.ListProductVariants(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "var-blue", rows[0].ID)
	require.Equal(t, "var-red", rows[1].ID)
}

func TestListProductVariantsUnknownProduct(t *testing.T) {
	conn := newTestDB(t)
	svc := newService(t, conn)

	_, err := svc.ListProductVariants(context.Background(), 404)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
