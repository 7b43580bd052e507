package catalog

import (
	"context"

	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together catalog reference-data reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindProductByID loads the product without associations.
func (r *Repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVariantByID loads one product variant.
func (r *Repository) FindVariantByID(ctx context.Context, id string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindPriceCategoryByID loads one shared pricing tier.
func (r *Repository) FindPriceCategoryByID(ctx context.Context, id int64) (*models.PriceCategory, error) {
	var category models.PriceCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindTaxByID loads one tax rate.
func (r *Repository) FindTaxByID(ctx context.Context, id int64) (*models.Tax, error) {
	var tax models.Tax
	if err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tax, nil
}

// ListPriceCategories returns all tiers, default tier first.
func (r *Repository) ListPriceCategories(ctx context.Context) ([]models.PriceCategory, error) {
	var rows []models.PriceCategory
	err := r.db.WithContext(ctx).
		Order("set_default DESC").
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListTaxes returns all tax rates.
func (r *Repository) ListTaxes(ctx context.Context) ([]models.Tax, error) {
	var rows []models.Tax
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

// ListVariantsByProduct returns the product's variants sorted by name.
func (r *Repository) ListVariantsByProduct(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	var rows []models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("full_name ASC").
		Find(&rows).
		Error
	return rows, err
}
