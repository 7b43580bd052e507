package pricing

import (
	"context"
	"database/sql"

	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const variantMatrixQuery = `
SELECT pv.id AS variant_id,
       pv.full_name AS variant_full_name,
       pv.sku AS variant_sku,
       vp.id AS price_id,
       vp.price_category_id,
       pc.name AS price_category_name,
       vp.usd_price,
       vp.exchange_rate,
       vp.adjustment_percent,
       vp.price,
       vp.is_active
FROM product_variants pv
LEFT JOIN variant_prices vp
  ON vp.variant_id = pv.id
 AND vp.pricing_information_id = ?
 AND vp.deleted_at IS NULL
LEFT JOIN price_categories pc
  ON pc.id = vp.price_category_id
 AND pc.deleted_at IS NULL
WHERE pv.product_id = ?
  AND pv.deleted_at IS NULL
ORDER BY pv.full_name ASC, vp.price_category_id ASC
`

// Repository wires together all pricing persistence helpers.
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

// FindByProductID loads the pricing row without associations.
func (r *Repository) FindByProductID(ctx context.Context, productID int64) (*models.PricingInformation, error) {
	var pricing models.PricingInformation
	if err := r.db.WithContext(ctx).First(&pricing, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &pricing, nil
}

// FindDetailByProductID loads the full pricing tree with deterministic
// child ordering: discount ladders ascend by quantity, per-category rows
// ascend by price category.
func (r *Repository) FindDetailByProductID(ctx context.Context, productID int64) (*models.PricingInformation, error) {
	var pricing models.PricingInformation
	err := r.db.WithContext(ctx).
		Preload("CustomerCategoryPrices", func(db *gorm.DB) *gorm.DB {
			return db.Order("price_category_id ASC")
		}).
		Preload("MarketplaceCategoryPrices", func(db *gorm.DB) *gorm.DB {
			return db.Order("price_category_id ASC")
		}).
		Preload("GlobalVolumeDiscounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("quantity ASC")
		}).
		Preload("GlobalVolumeDiscounts.PriceCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("price_category_id ASC")
		}).
		Preload("VariantVolumeDiscounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("variant_full_name ASC")
		}).
		Preload("VariantVolumeDiscounts.QuantityTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("quantity ASC")
		}).
		Preload("VariantVolumeDiscounts.QuantityTiers.PriceCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("price_category_id ASC")
		}).
		First(&pricing, "product_id = ?", productID).
		Error
	if err != nil {
		return nil, err
	}
	return &pricing, nil
}

// UpdatePricingGuarded writes the top-level pricing columns only when the
// stored lock_version still matches the expected one, bumping it by one.
// A Conflict error means another update committed in between.
func (r *Repository) UpdatePricingGuarded(ctx context.Context, pricing *models.PricingInformation, expectedVersion int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.PricingInformation{}).
		Where("id = ? AND lock_version = ?", pricing.ID, expectedVersion).
		Updates(map[string]any{
			"usd_price":                       pricing.USDPrice,
			"exchange_rate":                   pricing.ExchangeRate,
			"adjustment_percent":              pricing.AdjustmentPercent,
			"real_cost":                       pricing.RealCost,
			"adjusted_cost":                   pricing.AdjustedCost,
			"manual_variant_price_edit":       pricing.ManualVariantPriceEdit,
			"product_volume_discount_enabled": pricing.ProductVolumeDiscountEnabled,
			"variant_volume_discount_enabled": pricing.VariantVolumeDiscountEnabled,
			"lock_version":                    expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "pricing information changed by another update")
	}
	pricing.LockVersion = expectedVersion + 1
	return nil
}

// SaveCustomerCategoryPrice persists an edited customer segment price row.
func (r *Repository) SaveCustomerCategoryPrice(ctx context.Context, row *models.CustomerCategoryPrice) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// SaveMarketplaceCategoryPrice persists an edited marketplace segment price row.
func (r *Repository) SaveMarketplaceCategoryPrice(ctx context.Context, row *models.MarketplaceCategoryPrice) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// ListVariantPrices returns all matrix rows for the pricing aggregate.
func (r *Repository) ListVariantPrices(ctx context.Context, pricingID int64) ([]models.VariantPrice, error) {
	var rows []models.VariantPrice
	err := r.db.WithContext(ctx).
		Where("pricing_information_id = ?", pricingID).
		Find(&rows).
		Error
	return rows, err
}

// SaveVariantPrice persists a new or edited variant price cell.
func (r *Repository) SaveVariantPrice(ctx context.Context, row *models.VariantPrice) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// CreateGlobalVolumeDiscount inserts a discount header with its children.
func (r *Repository) CreateGlobalVolumeDiscount(ctx context.Context, discount *models.GlobalVolumeDiscount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

// SaveGlobalVolumeDiscount persists header edits without touching children.
func (r *Repository) SaveGlobalVolumeDiscount(ctx context.Context, discount *models.GlobalVolumeDiscount) error {
	return r.db.WithContext(ctx).Omit("PriceCategories").Save(discount).Error
}

// SaveGlobalDiscountPriceCategory persists one per-category discount price.
func (r *Repository) SaveGlobalDiscountPriceCategory(ctx context.Context, row *models.GlobalDiscountPriceCategory) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// CreateVariantVolumeDiscount inserts a variant discount with its full tier tree.
func (r *Repository) CreateVariantVolumeDiscount(ctx context.Context, discount *models.VariantVolumeDiscount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

// SaveVariantVolumeDiscount persists header edits without touching tiers.
func (r *Repository) SaveVariantVolumeDiscount(ctx context.Context, discount *models.VariantVolumeDiscount) error {
	return r.db.WithContext(ctx).Omit("QuantityTiers").Save(discount).Error
}

// CreateQuantityTier inserts one tier with its per-category children.
func (r *Repository) CreateQuantityTier(ctx context.Context, tier *models.VariantDiscountQuantityTier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

// SaveQuantityTier persists tier edits without touching children.
func (r *Repository) SaveQuantityTier(ctx context.Context, tier *models.VariantDiscountQuantityTier) error {
	return r.db.WithContext(ctx).Omit("PriceCategories").Save(tier).Error
}

// SaveTierPriceCategory persists one per-category tier price.
func (r *Repository) SaveTierPriceCategory(ctx context.Context, row *models.VariantDiscountPriceCategory) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// CreatePricingHistory appends the top-level history row for one update call.
func (r *Repository) CreatePricingHistory(ctx context.Context, row *models.PricingInformationHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateCustomerCategoryPriceHistory appends a customer segment history row.
func (r *Repository) CreateCustomerCategoryPriceHistory(ctx context.Context, row *models.CustomerCategoryPriceHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateMarketplaceCategoryPriceHistory appends a marketplace segment history row.
func (r *Repository) CreateMarketplaceCategoryPriceHistory(ctx context.Context, row *models.MarketplaceCategoryPriceHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateGlobalDiscountHistory appends a global discount header history row.
func (r *Repository) CreateGlobalDiscountHistory(ctx context.Context, row *models.GlobalVolumeDiscountHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateGlobalDiscountPriceCategoryHistory appends a per-category discount history row.
func (r *Repository) CreateGlobalDiscountPriceCategoryHistory(ctx context.Context, row *models.GlobalDiscountPriceCategoryHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateVariantDiscountHistory appends a variant discount header history row.
func (r *Repository) CreateVariantDiscountHistory(ctx context.Context, row *models.VariantVolumeDiscountHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateQuantityTierHistory appends a quantity tier history row.
func (r *Repository) CreateQuantityTierHistory(ctx context.Context, row *models.VariantDiscountQuantityTierHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateTierPriceCategoryHistory appends a per-category tier history row.
func (r *Repository) CreateTierPriceCategoryHistory(ctx context.Context, row *models.VariantDiscountPriceCategoryHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// ListVariantMatrix returns one record per (variant, price category) cell
// for the product, including variants that have no price rows yet, ordered
// by variant name then price category.
func (r *Repository) ListVariantMatrix(ctx context.Context, pricingID, productID int64) ([]VariantMatrixRecord, error) {
	var records []VariantMatrixRecord
	if err := r.db.WithContext(ctx).Raw(variantMatrixQuery, pricingID, productID).Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// VariantMatrixRecord is one row of the variant price matrix join. Price
// columns are nullable because variants without prices still appear.
type VariantMatrixRecord struct {
	VariantID         string              `gorm:"column:variant_id"`
	VariantFullName   string              `gorm:"column:variant_full_name"`
	VariantSKU        string              `gorm:"column:variant_sku"`
	PriceID           sql.NullString      `gorm:"column:price_id"`
	PriceCategoryID   sql.NullInt64       `gorm:"column:price_category_id"`
	PriceCategoryName sql.NullString      `gorm:"column:price_category_name"`
	USDPrice          decimal.NullDecimal `gorm:"column:usd_price"`
	ExchangeRate      decimal.NullDecimal `gorm:"column:exchange_rate"`
	AdjustmentPercent decimal.NullDecimal `gorm:"column:adjustment_percent"`
	Price             decimal.NullDecimal `gorm:"column:price"`
	IsActive          sql.NullBool        `gorm:"column:is_active"`
}
