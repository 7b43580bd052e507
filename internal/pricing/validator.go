package pricing

import (
	"context"
	"errors"

	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogLookup exposes the reference-data reads the pricing package needs.
type CatalogLookup interface {
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)
	FindVariantByID(ctx context.Context, id string) (*models.ProductVariant, error)
	FindPriceCategoryByID(ctx context.Context, id int64) (*models.PriceCategory, error)
	FindTaxByID(ctx context.Context, id int64) (*models.Tax, error)
}

// Validator runs the ordered pre-write checks for a pricing update. Checks
// fail fast: the first violation aborts the update before any write.
type Validator struct {
	catalog CatalogLookup
}

// NewValidator builds a validator backed by the provided catalog reads.
func NewValidator(catalog CatalogLookup) *Validator {
	return &Validator{catalog: catalog}
}

var hundred = decimal.NewFromInt(100)

// Validate checks the payload against the currently stored aggregate.
// `current` must be the fully loaded pricing tree for the target product.
func (v *Validator) Validate(ctx context.Context, current *models.PricingInformation, input UpdateInput) error {
	if input.ID != current.ID {
		return pkgerrors.Newf(pkgerrors.CodeValidation,
			"payload pricing id %d does not match stored id %d", input.ID, current.ID)
	}

	// The pricing row can outlive its product (soft delete only marks the
	// catalog side), so the product must be re-resolved on every update.
	if _, err := v.catalog.FindProductByID(ctx, current.ProductID); err != nil {
		return notFoundOr(err, "product %d not found", current.ProductID)
	}

	if err := v.checkReferences(ctx, input); err != nil {
		return err
	}
	if err := checkCategoryPriceRows(current, input); err != nil {
		return err
	}
	if err := checkGlobalDiscountShape(input.GlobalVolumeDiscounts); err != nil {
		return err
	}
	if err := checkVariantDiscountShape(input.VariantVolumeDiscounts); err != nil {
		return err
	}
	return checkQuantityLadders(current, input)
}

// checkReferences verifies every price category, tax, and variant id in the
// payload against the catalog.
func (v *Validator) checkReferences(ctx context.Context, input UpdateInput) error {
	seenCategories := map[int64]struct{}{}
	checkCategory := func(id int64) error {
		if _, ok := seenCategories[id]; ok {
			return nil
		}
		if _, err := v.catalog.FindPriceCategoryByID(ctx, id); err != nil {
			return notFoundOr(err, "price category %d not found", id)
		}
		seenCategories[id] = struct{}{}
		return nil
	}

	seenTaxes := map[int64]struct{}{}
	checkTax := func(id *int64) error {
		if id == nil {
			return nil
		}
		if _, ok := seenTaxes[*id]; ok {
			return nil
		}
		if _, err := v.catalog.FindTaxByID(ctx, *id); err != nil {
			return notFoundOr(err, "tax %d not found", *id)
		}
		seenTaxes[*id] = struct{}{}
		return nil
	}

	seenVariants := map[string]struct{}{}
	checkVariant := func(id string) error {
		if _, ok := seenVariants[id]; ok {
			return nil
		}
		if _, err := v.catalog.FindVariantByID(ctx, id); err != nil {
			return notFoundOr(err, "variant %s not found", id)
		}
		seenVariants[id] = struct{}{}
		return nil
	}

	for _, row := range input.CustomerCategoryPrices {
		if err := checkCategory(row.PriceCategoryID); err != nil {
			return err
		}
		if err := checkTax(row.TaxID); err != nil {
			return err
		}
	}
	for _, row := range input.MarketplaceCategoryPrices {
		if err := checkCategory(row.PriceCategoryID); err != nil {
			return err
		}
		if err := checkTax(row.TaxID); err != nil {
			return err
		}
	}
	for _, row := range input.ProductVariantPrices {
		if err := checkVariant(row.VariantID); err != nil {
			return err
		}
		if row.PriceCategoryID != nil {
			if err := checkCategory(*row.PriceCategoryID); err != nil {
				return err
			}
		}
		for _, sub := range row.PriceCategories {
			if err := checkCategory(sub.PriceCategoryID); err != nil {
				return err
			}
		}
	}
	for _, discount := range input.GlobalVolumeDiscounts {
		for _, sub := range discount.PriceCategories {
			if err := checkCategory(sub.PriceCategoryID); err != nil {
				return err
			}
		}
	}
	for _, discount := range input.VariantVolumeDiscounts {
		if err := checkVariant(discount.VariantID); err != nil {
			return err
		}
		for _, tier := range discount.QuantityTiers {
			for _, sub := range tier.PriceCategories {
				if err := checkCategory(sub.PriceCategoryID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// checkCategoryPriceRows ensures segment price entries target rows that
// belong to this aggregate. These rows are seeded elsewhere and never
// created through an update.
func checkCategoryPriceRows(current *models.PricingInformation, input UpdateInput) error {
	customer := map[int64]struct{}{}
	for _, row := range current.CustomerCategoryPrices {
		customer[row.ID] = struct{}{}
	}
	for _, row := range input.CustomerCategoryPrices {
		if _, ok := customer[row.ID]; !ok {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "customer category price %d not found", row.ID)
		}
	}

	marketplace := map[int64]struct{}{}
	for _, row := range current.MarketplaceCategoryPrices {
		marketplace[row.ID] = struct{}{}
	}
	for _, row := range input.MarketplaceCategoryPrices {
		if _, ok := marketplace[row.ID]; !ok {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "marketplace category price %d not found", row.ID)
		}
	}
	return nil
}

func checkGlobalDiscountShape(discounts []GlobalDiscountInput) error {
	for _, discount := range discounts {
		if discount.Quantity <= 0 {
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"volume discount quantity must be positive, got %d", discount.Quantity)
		}
		if err := checkPercent(discount.DiscountPercent); err != nil {
			return err
		}
		if len(discount.PriceCategories) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation,
				"volume discount requires at least one price category entry")
		}
		for _, sub := range discount.PriceCategories {
			if err := checkDiscountPrice(sub.Price); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkVariantDiscountShape(discounts []VariantDiscountInput) error {
	for _, discount := range discounts {
		if discount.VariantID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant discount requires a variant id")
		}
		if len(discount.QuantityTiers) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation,
				"variant discount requires at least one quantity tier")
		}
		for _, tier := range discount.QuantityTiers {
			if tier.Quantity <= 0 {
				return pkgerrors.Newf(pkgerrors.CodeValidation,
					"quantity tier must be positive, got %d", tier.Quantity)
			}
			if err := checkPercent(tier.DiscountPercent); err != nil {
				return err
			}
			if len(tier.PriceCategories) == 0 {
				return pkgerrors.New(pkgerrors.CodeValidation,
					"quantity tier requires at least one price category entry")
			}
			for _, sub := range tier.PriceCategories {
				if err := checkDiscountPrice(sub.Price); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// checkQuantityLadders runs the same reconciliation the engine will run, so
// an update the validator approves cannot fail the ladder checks mid-write.
func checkQuantityLadders(current *models.PricingInformation, input UpdateInput) error {
	existing := make([]LadderEntry, 0, len(current.GlobalVolumeDiscounts))
	for _, row := range current.GlobalVolumeDiscounts {
		existing = append(existing, LadderEntry{ID: row.ID, Quantity: row.Quantity})
	}
	incoming := make([]LadderEntry, 0, len(input.GlobalVolumeDiscounts))
	for _, entry := range input.GlobalVolumeDiscounts {
		incoming = append(incoming, LadderEntry{ID: entry.ID, Quantity: entry.Quantity})
	}
	if _, err := ReconcileQuantityLadder(existing, incoming); err != nil {
		return err
	}

	byID := map[string]*models.VariantVolumeDiscount{}
	for i := range current.VariantVolumeDiscounts {
		byID[current.VariantVolumeDiscounts[i].ID] = &current.VariantVolumeDiscounts[i]
	}
	for _, discount := range input.VariantVolumeDiscounts {
		var tiers []LadderEntry
		if discount.ID != "" {
			stored, ok := byID[discount.ID]
			if !ok {
				return pkgerrors.Newf(pkgerrors.CodeNotFound, "variant volume discount %s not found", discount.ID)
			}
			for _, tier := range stored.QuantityTiers {
				tiers = append(tiers, LadderEntry{ID: tier.ID, Quantity: tier.Quantity})
			}
		}
		incomingTiers := make([]LadderEntry, 0, len(discount.QuantityTiers))
		for _, tier := range discount.QuantityTiers {
			incomingTiers = append(incomingTiers, LadderEntry{ID: tier.ID, Quantity: tier.Quantity})
		}
		if _, err := ReconcileQuantityLadder(tiers, incomingTiers); err != nil {
			return err
		}
	}
	return nil
}

func checkPercent(value decimal.Decimal) error {
	if !value.IsPositive() || value.GreaterThan(hundred) {
		return pkgerrors.Newf(pkgerrors.CodeValidation,
			"discount percentage must be greater than 0 and at most 100, got %s", value.String())
	}
	return nil
}

func checkDiscountPrice(value decimal.Decimal) error {
	if !value.IsPositive() {
		return pkgerrors.Newf(pkgerrors.CodeValidation,
			"price category price must be positive, got %s", value.String())
	}
	return nil
}

// notFoundOr maps a missing catalog row onto the error taxonomy; anything
// else bubbles up as a dependency failure.
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, format, args...)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog lookup failed")
}
