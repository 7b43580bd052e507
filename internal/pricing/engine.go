package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danisworo/inventory-backoffice/pkg/db"
	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/danisworo/inventory-backoffice/pkg/ids"
	"github.com/danisworo/inventory-backoffice/pkg/logger"
	"github.com/danisworo/inventory-backoffice/pkg/metrics"
	"gorm.io/gorm"
)

// Service exposes pricing read and update operations.
type Service interface {
	GetByProductID(ctx context.Context, productID int64) (*Document, error)
	UpdateByProductID(ctx context.Context, productID int64, input UpdateInput, userID int64) error
}

// service implements the pricing service.
type service struct {
	repo      *Repository
	dbClient  *db.Client
	catalog   CatalogLookup
	validator *Validator
	newID     ids.Generator
	metrics   *metrics.PricingMetrics
	logg      *logger.Logger
}

// NewService constructs a pricing service instance.
func NewService(repo *Repository, dbClient *db.Client, catalog CatalogLookup, newID ids.Generator, m *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog lookup required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if newID == nil {
		newID = ids.New
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		catalog:   catalog,
		validator: NewValidator(catalog),
		newID:     newID,
		metrics:   m,
		logg:      logg,
	}, nil
}

// GetByProductID assembles the full pricing document for a product.
func (s *service) GetByProductID(ctx context.Context, productID int64) (*Document, error) {
	ctx = s.logg.WithProductID(ctx, productID)

	pricing, err := s.repo.FindDetailByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound,
				"pricing information for product %d not found", productID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing information")
	}

	matrix, err := s.repo.ListVariantMatrix(ctx, pricing.ID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant price matrix")
	}

	return assembleDocument(pricing, matrix), nil
}

// UpdateByProductID validates and applies one pricing update in a single
// transaction. Any failure rolls back every write, history included.
func (s *service) UpdateByProductID(ctx context.Context, productID int64, input UpdateInput, userID int64) error {
	ctx = s.logg.WithProductID(ctx, productID)
	ctx = s.logg.WithUserID(ctx, userID)

	start := time.Now()
	err := s.update(ctx, productID, input, userID)
	s.metrics.ObserveDuration("update", time.Since(start))

	if err != nil {
		code := pkgerrors.CodeInternal
		if typed := pkgerrors.As(err); typed != nil {
			code = typed.Code()
		}
		s.metrics.IncFailure("update", string(code))
		s.logg.Error(ctx, "pricing update failed", err)
		return err
	}

	s.metrics.IncSuccess("update")
	s.logg.Info(ctx, "pricing information updated")
	return nil
}

func (s *service) update(ctx context.Context, productID int64, input UpdateInput, userID int64) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		current, err := repo.FindDetailByProductID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Newf(pkgerrors.CodeNotFound,
					"pricing information for product %d not found", productID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing information")
		}

		if input.LockVersion != nil && *input.LockVersion != current.LockVersion {
			return pkgerrors.New(pkgerrors.CodeConflict,
				"pricing information changed since it was read")
		}

		if err := s.validator.Validate(ctx, current, input); err != nil {
			return err
		}

		snapshots, err := s.categorySnapshots(ctx, input)
		if err != nil {
			return err
		}

		history := buildPricingHistory(current, input, userID)
		if err := repo.CreatePricingHistory(ctx, history); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record pricing history")
		}

		updated := *current
		updated.USDPrice = input.USDPrice
		updated.ExchangeRate = input.ExchangeRate
		updated.AdjustmentPercent = input.AdjustmentPercent
		updated.RealCost = input.RealCost
		updated.AdjustedCost = input.AdjustedCost
		updated.ManualVariantPriceEdit = input.ManualVariantPriceEdit
		updated.ProductVolumeDiscountEnabled = input.ProductVolumeDiscountEnabled
		updated.VariantVolumeDiscountEnabled = input.VariantVolumeDiscountEnabled
		if err := repo.UpdatePricingGuarded(ctx, &updated, current.LockVersion); err != nil {
			return err
		}

		if err := s.applyCategoryPrices(ctx, repo, current, input, history.ID, userID); err != nil {
			return err
		}
		if err := s.applyVariantPrices(ctx, repo, current, input); err != nil {
			return err
		}
		if err := s.applyGlobalDiscounts(ctx, repo, current, input, snapshots, history.ID, userID); err != nil {
			return err
		}
		return s.applyVariantDiscounts(ctx, repo, current, input, snapshots, history.ID, userID)
	})
}

// categorySnapshots resolves every price category referenced by a discount
// entry so inserted rows and history carry the catalog's current identity.
func (s *service) categorySnapshots(ctx context.Context, input UpdateInput) (map[int64]*models.PriceCategory, error) {
	snapshots := map[int64]*models.PriceCategory{}
	resolve := func(id int64) error {
		if _, ok := snapshots[id]; ok {
			return nil
		}
		category, err := s.catalog.FindPriceCategoryByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "price category %d not found", id)
		}
		snapshots[id] = category
		return nil
	}

	for _, discount := range input.GlobalVolumeDiscounts {
		for _, sub := range discount.PriceCategories {
			if err := resolve(sub.PriceCategoryID); err != nil {
				return nil, err
			}
		}
	}
	for _, discount := range input.VariantVolumeDiscounts {
		for _, tier := range discount.QuantityTiers {
			for _, sub := range tier.PriceCategories {
				if err := resolve(sub.PriceCategoryID); err != nil {
					return nil, err
				}
			}
		}
	}
	return snapshots, nil
}

// withSnapshot replaces the identity fields of a discount price entry with
// the catalog's current values.
func withSnapshot(input DiscountPriceCategoryInput, snapshots map[int64]*models.PriceCategory) DiscountPriceCategoryInput {
	if category, ok := snapshots[input.PriceCategoryID]; ok {
		input.PriceCategoryName = category.Name
		input.PriceCategoryPercentage = category.Percentage
		input.PriceCategorySetDefault = category.SetDefault
	}
	return input
}

// applyCategoryPrices edits the customer and marketplace segment ladders.
// Only the price and tax columns move; the category identity snapshot is
// owned by the seeding process.
func (s *service) applyCategoryPrices(ctx context.Context, repo *Repository, current *models.PricingInformation, input UpdateInput, historyID, userID int64) error {
	customer := map[int64]*models.CustomerCategoryPrice{}
	for i := range current.CustomerCategoryPrices {
		customer[current.CustomerCategoryPrices[i].ID] = &current.CustomerCategoryPrices[i]
	}
	for _, entry := range input.CustomerCategoryPrices {
		stored := customer[entry.ID]
		if err := repo.CreateCustomerCategoryPriceHistory(ctx, buildCustomerPriceHistory(historyID, stored, entry, userID)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record customer category price history")
		}
		stored.PreTaxPrice = entry.PreTaxPrice
		stored.TaxedPrice = entry.TaxedPrice
		stored.TaxID = entry.TaxID
		stored.TaxPercentage = entry.TaxPercentage
		stored.IsCustomPrice = entry.IsCustomPrice
		stored.IsCustomTax = entry.IsCustomTax
		if err := repo.SaveCustomerCategoryPrice(ctx, stored); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save customer category price")
		}
	}

	marketplace := map[int64]*models.MarketplaceCategoryPrice{}
	for i := range current.MarketplaceCategoryPrices {
		marketplace[current.MarketplaceCategoryPrices[i].ID] = &current.MarketplaceCategoryPrices[i]
	}
	for _, entry := range input.MarketplaceCategoryPrices {
		stored := marketplace[entry.ID]
		if err := repo.CreateMarketplaceCategoryPriceHistory(ctx, buildMarketplacePriceHistory(historyID, stored, entry, userID)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record marketplace category price history")
		}
		stored.PreTaxPrice = entry.PreTaxPrice
		stored.TaxedPrice = entry.TaxedPrice
		stored.TaxID = entry.TaxID
		stored.TaxPercentage = entry.TaxPercentage
		stored.IsCustomPrice = entry.IsCustomPrice
		stored.IsCustomTax = entry.IsCustomTax
		if err := repo.SaveMarketplaceCategoryPrice(ctx, stored); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save marketplace category price")
		}
	}
	return nil
}

func matrixKey(variantID string, priceCategoryID *int64) string {
	if priceCategoryID == nil {
		return variantID
	}
	return fmt.Sprintf("%s/%d", variantID, *priceCategoryID)
}

// applyVariantPrices upserts matrix cells: an existing (variant, price
// category) cell is edited in place, a missing one is created.
func (s *service) applyVariantPrices(ctx context.Context, repo *Repository, current *models.PricingInformation, input UpdateInput) error {
	if len(input.ProductVariantPrices) == 0 {
		return nil
	}

	rows, err := repo.ListVariantPrices(ctx, current.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant prices")
	}
	byKey := map[string]*models.VariantPrice{}
	for i := range rows {
		byKey[matrixKey(rows[i].VariantID, rows[i].PriceCategoryID)] = &rows[i]
	}

	upsert := func(variantID string, priceCategoryID *int64, entry VariantPriceInput) error {
		if stored, ok := byKey[matrixKey(variantID, priceCategoryID)]; ok {
			stored.USDPrice = entry.USDPrice
			stored.ExchangeRate = entry.ExchangeRate
			stored.AdjustmentPercent = entry.AdjustmentPercent
			stored.Price = entry.Price
			stored.IsActive = entry.IsActive
			return repo.SaveVariantPrice(ctx, stored)
		}
		row := &models.VariantPrice{
			ID:                   s.newID(),
			PricingInformationID: current.ID,
			VariantID:            variantID,
			PriceCategoryID:      priceCategoryID,
			USDPrice:             entry.USDPrice,
			ExchangeRate:         entry.ExchangeRate,
			AdjustmentPercent:    entry.AdjustmentPercent,
			Price:                entry.Price,
			IsActive:             entry.IsActive,
		}
		byKey[matrixKey(variantID, priceCategoryID)] = row
		return repo.SaveVariantPrice(ctx, row)
	}

	for _, entry := range input.ProductVariantPrices {
		if err := upsert(entry.VariantID, entry.PriceCategoryID, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save variant price")
		}
		// Per-category cells inherit the cost basis of the top-level entry.
		for _, sub := range entry.PriceCategories {
			cell := entry
			cell.Price = sub.Price
			categoryID := sub.PriceCategoryID
			if err := upsert(entry.VariantID, &categoryID, cell); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save variant price")
			}
		}
	}
	return nil
}

// applyGlobalDiscounts walks the product-wide quantity ladder. Entries are
// matched by id or by quantity; brand-new entries are inserted with their
// children and without history, edits get a history row first.
func (s *service) applyGlobalDiscounts(ctx context.Context, repo *Repository, current *models.PricingInformation, input UpdateInput, snapshots map[int64]*models.PriceCategory, historyID, userID int64) error {
	if len(input.GlobalVolumeDiscounts) == 0 {
		return nil
	}

	existing := make([]LadderEntry, 0, len(current.GlobalVolumeDiscounts))
	byID := map[string]*models.GlobalVolumeDiscount{}
	for i := range current.GlobalVolumeDiscounts {
		row := &current.GlobalVolumeDiscounts[i]
		existing = append(existing, LadderEntry{ID: row.ID, Quantity: row.Quantity})
		byID[row.ID] = row
	}
	incoming := make([]LadderEntry, 0, len(input.GlobalVolumeDiscounts))
	for _, entry := range input.GlobalVolumeDiscounts {
		incoming = append(incoming, LadderEntry{ID: entry.ID, Quantity: entry.Quantity})
	}

	decisions, err := ReconcileQuantityLadder(existing, incoming)
	if err != nil {
		return err
	}

	for _, decision := range decisions {
		entry := input.GlobalVolumeDiscounts[decision.Index]

		if decision.Action == LadderCreate {
			discount := &models.GlobalVolumeDiscount{
				ID:                   s.newID(),
				PricingInformationID: current.ID,
				Quantity:             entry.Quantity,
				DiscountPercent:      entry.DiscountPercent,
			}
			for _, sub := range entry.PriceCategories {
				sub = withSnapshot(sub, snapshots)
				discount.PriceCategories = append(discount.PriceCategories, models.GlobalDiscountPriceCategory{
					ID:                      s.newID(),
					GlobalVolumeDiscountID:  discount.ID,
					PriceCategoryID:         sub.PriceCategoryID,
					PriceCategoryName:       sub.PriceCategoryName,
					PriceCategoryPercentage: sub.PriceCategoryPercentage,
					PriceCategorySetDefault: sub.PriceCategorySetDefault,
					Price:                   sub.Price,
				})
			}
			if err := repo.CreateGlobalVolumeDiscount(ctx, discount); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert volume discount")
			}
			continue
		}

		stored := byID[decision.ExistingID]
		discountHistory := buildGlobalDiscountHistory(historyID, stored, entry, userID)
		if err := repo.CreateGlobalDiscountHistory(ctx, discountHistory); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record volume discount history")
		}
		stored.Quantity = entry.Quantity
		stored.DiscountPercent = entry.DiscountPercent
		if err := repo.SaveGlobalVolumeDiscount(ctx, stored); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save volume discount")
		}

		if err := s.applyGlobalDiscountPrices(ctx, repo, stored, entry.PriceCategories, snapshots, discountHistory.ID, userID); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) applyGlobalDiscountPrices(ctx context.Context, repo *Repository, discount *models.GlobalVolumeDiscount, entries []DiscountPriceCategoryInput, snapshots map[int64]*models.PriceCategory, discountHistoryID, userID int64) error {
	byID := map[string]*models.GlobalDiscountPriceCategory{}
	byCategory := map[int64]*models.GlobalDiscountPriceCategory{}
	for i := range discount.PriceCategories {
		row := &discount.PriceCategories[i]
		byID[row.ID] = row
		byCategory[row.PriceCategoryID] = row
	}

	for _, entry := range entries {
		entry = withSnapshot(entry, snapshots)

		var stored *models.GlobalDiscountPriceCategory
		if entry.ID != "" {
			var ok bool
			if stored, ok = byID[entry.ID]; !ok {
				return pkgerrors.Newf(pkgerrors.CodeNotFound, "discount price category %s not found", entry.ID)
			}
		} else {
			stored = byCategory[entry.PriceCategoryID]
		}

		if stored != nil {
			if err := repo.CreateGlobalDiscountPriceCategoryHistory(ctx, buildGlobalDiscountPriceHistory(discountHistoryID, stored.ID, stored, entry, userID)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record discount price history")
			}
			stored.PriceCategoryName = entry.PriceCategoryName
			stored.PriceCategoryPercentage = entry.PriceCategoryPercentage
			stored.PriceCategorySetDefault = entry.PriceCategorySetDefault
			stored.Price = entry.Price
			if err := repo.SaveGlobalDiscountPriceCategory(ctx, stored); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save discount price")
			}
			continue
		}

		row := &models.GlobalDiscountPriceCategory{
			ID:                      s.newID(),
			GlobalVolumeDiscountID:  discount.ID,
			PriceCategoryID:         entry.PriceCategoryID,
			PriceCategoryName:       entry.PriceCategoryName,
			PriceCategoryPercentage: entry.PriceCategoryPercentage,
			PriceCategorySetDefault: entry.PriceCategorySetDefault,
			Price:                   entry.Price,
		}
		if err := repo.CreateGlobalDiscountPriceCategoryHistory(ctx, buildGlobalDiscountPriceHistory(discountHistoryID, row.ID, nil, entry, userID)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record discount price history")
		}
		if err := repo.SaveGlobalDiscountPriceCategory(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert discount price")
		}
	}
	return nil
}

// applyVariantDiscounts walks the per-variant ladders. A new discount is
// inserted as a full tree; an existing one gets a header history row and a
// tier-level reconciliation.
func (s *service) applyVariantDiscounts(ctx context.Context, repo *Repository, current *models.PricingInformation, input UpdateInput, snapshots map[int64]*models.PriceCategory, historyID, userID int64) error {
	if len(input.VariantVolumeDiscounts) == 0 {
		return nil
	}

	byID := map[string]*models.VariantVolumeDiscount{}
	for i := range current.VariantVolumeDiscounts {
		byID[current.VariantVolumeDiscounts[i].ID] = &current.VariantVolumeDiscounts[i]
	}

	for _, entry := range input.VariantVolumeDiscounts {
		if entry.ID == "" {
			if err := s.insertVariantDiscount(ctx, repo, current.ID, entry, snapshots); err != nil {
				return err
			}
			continue
		}

		stored, ok := byID[entry.ID]
		if !ok {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "variant volume discount %s not found", entry.ID)
		}

		headerHistory := buildVariantDiscountHistory(historyID, stored, entry.IsActive, userID)
		if err := repo.CreateVariantDiscountHistory(ctx, headerHistory); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record variant discount history")
		}
		stored.IsActive = entry.IsActive
		if err := repo.SaveVariantVolumeDiscount(ctx, stored); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save variant discount")
		}

		if err := s.applyQuantityTiers(ctx, repo, stored, entry.QuantityTiers, snapshots, headerHistory.ID, userID); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) insertVariantDiscount(ctx context.Context, repo *Repository, pricingID int64, entry VariantDiscountInput, snapshots map[int64]*models.PriceCategory) error {
	variant, err := s.catalog.FindVariantByID(ctx, entry.VariantID)
	if err != nil {
		return notFoundOr(err, "variant %s not found", entry.VariantID)
	}

	discount := &models.VariantVolumeDiscount{
		ID:                   s.newID(),
		PricingInformationID: pricingID,
		VariantID:            variant.ID,
		VariantFullName:      variant.FullName,
		VariantSKU:           variant.SKU,
		IsActive:             entry.IsActive,
	}
	for _, tier := range entry.QuantityTiers {
		row := models.VariantDiscountQuantityTier{
			ID:                      s.newID(),
			VariantVolumeDiscountID: discount.ID,
			Quantity:                tier.Quantity,
			DiscountPercent:         tier.DiscountPercent,
		}
		for _, sub := range tier.PriceCategories {
			sub = withSnapshot(sub, snapshots)
			row.PriceCategories = append(row.PriceCategories, models.VariantDiscountPriceCategory{
				ID:                      s.newID(),
				QuantityTierID:          row.ID,
				PriceCategoryID:         sub.PriceCategoryID,
				PriceCategoryName:       sub.PriceCategoryName,
				PriceCategoryPercentage: sub.PriceCategoryPercentage,
				PriceCategorySetDefault: sub.PriceCategorySetDefault,
				Price:                   sub.Price,
			})
		}
		discount.QuantityTiers = append(discount.QuantityTiers, row)
	}

	if err := repo.CreateVariantVolumeDiscount(ctx, discount); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert variant discount")
	}
	return nil
}

func (s *service) applyQuantityTiers(ctx context.Context, repo *Repository, discount *models.VariantVolumeDiscount, entries []QuantityTierInput, snapshots map[int64]*models.PriceCategory, discountHistoryID, userID int64) error {
	existing := make([]LadderEntry, 0, len(discount.QuantityTiers))
	byID := map[string]*models.VariantDiscountQuantityTier{}
	for i := range discount.QuantityTiers {
		tier := &discount.QuantityTiers[i]
		existing = append(existing, LadderEntry{ID: tier.ID, Quantity: tier.Quantity})
		byID[tier.ID] = tier
	}
	incoming := make([]LadderEntry, 0, len(entries))
	for _, entry := range entries {
		incoming = append(incoming, LadderEntry{ID: entry.ID, Quantity: entry.Quantity})
	}

	decisions, err := ReconcileQuantityLadder(existing, incoming)
	if err != nil {
		return err
	}

	for _, decision := range decisions {
		entry := entries[decision.Index]

		if decision.Action == LadderCreate {
			tier := &models.VariantDiscountQuantityTier{
				ID:                      s.newID(),
				VariantVolumeDiscountID: discount.ID,
				Quantity:                entry.Quantity,
				DiscountPercent:         entry.DiscountPercent,
			}
			tierHistory := buildQuantityTierHistory(discountHistoryID, tier.ID, nil, entry, userID)
			if err := repo.CreateQuantityTierHistory(ctx, tierHistory); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record quantity tier history")
			}
			for _, sub := range entry.PriceCategories {
				sub = withSnapshot(sub, snapshots)
				row := models.VariantDiscountPriceCategory{
					ID:                      s.newID(),
					QuantityTierID:          tier.ID,
					PriceCategoryID:         sub.PriceCategoryID,
					PriceCategoryName:       sub.PriceCategoryName,
					PriceCategoryPercentage: sub.PriceCategoryPercentage,
					PriceCategorySetDefault: sub.PriceCategorySetDefault,
					Price:                   sub.Price,
				}
				if err := repo.CreateTierPriceCategoryHistory(ctx, buildTierPriceHistory(tierHistory.ID, row.ID, nil, sub, userID)); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record tier price history")
				}
				tier.PriceCategories = append(tier.PriceCategories, row)
			}
			if err := repo.CreateQuantityTier(ctx, tier); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert quantity tier")
			}
			continue
		}

		tier := byID[decision.ExistingID]
		tierHistory := buildQuantityTierHistory(discountHistoryID, tier.ID, tier, entry, userID)
		if err := repo.CreateQuantityTierHistory(ctx, tierHistory); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record quantity tier history")
		}
		tier.Quantity = entry.Quantity
		tier.DiscountPercent = entry.DiscountPercent
		if err := repo.SaveQuantityTier(ctx, tier); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save quantity tier")
		}

		if err := s.applyTierPrices(ctx, repo, tier, entry.PriceCategories, snapshots, tierHistory.ID, userID); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) applyTierPrices(ctx context.Context, repo *Repository, tier *models.VariantDiscountQuantityTier, entries []DiscountPriceCategoryInput, snapshots map[int64]*models.PriceCategory, tierHistoryID, userID int64) error {
	byID := map[string]*models.VariantDiscountPriceCategory{}
	byCategory := map[int64]*models.VariantDiscountPriceCategory{}
	for i := range tier.PriceCategories {
		row := &tier.PriceCategories[i]
		byID[row.ID] = row
		byCategory[row.PriceCategoryID] = row
	}

	for _, entry := range entries {
		entry = withSnapshot(entry, snapshots)

		var stored *models.VariantDiscountPriceCategory
		if entry.ID != "" {
			var ok bool
			if stored, ok = byID[entry.ID]; !ok {
				return pkgerrors.Newf(pkgerrors.CodeNotFound, "tier price category %s not found", entry.ID)
			}
		} else {
			stored = byCategory[entry.PriceCategoryID]
		}

		if stored != nil {
			if err := repo.CreateTierPriceCategoryHistory(ctx, buildTierPriceHistory(tierHistoryID, stored.ID, stored, entry, userID)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record tier price history")
			}
			stored.PriceCategoryName = entry.PriceCategoryName
			stored.PriceCategoryPercentage = entry.PriceCategoryPercentage
			stored.PriceCategorySetDefault = entry.PriceCategorySetDefault
			stored.Price = entry.Price
			if err := repo.SaveTierPriceCategory(ctx, stored); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save tier price")
			}
			continue
		}

		row := &models.VariantDiscountPriceCategory{
			ID:                      s.newID(),
			QuantityTierID:          tier.ID,
			PriceCategoryID:         entry.PriceCategoryID,
			PriceCategoryName:       entry.PriceCategoryName,
			PriceCategoryPercentage: entry.PriceCategoryPercentage,
			PriceCategorySetDefault: entry.PriceCategorySetDefault,
			Price:                   entry.Price,
		}
		if err := repo.CreateTierPriceCategoryHistory(ctx, buildTierPriceHistory(tierHistoryID, row.ID, nil, entry, userID)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record tier price history")
		}
		if err := repo.SaveTierPriceCategory(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert tier price")
		}
	}
	return nil
}
