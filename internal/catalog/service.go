package catalog

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes catalog reference-data reads for the back office UI.
type Service interface {
	ListPriceCategories(ctx context.Context) ([]PriceCategoryDTO, error)
	ListTaxes(ctx context.Context) ([]TaxDTO, error)
	ListProductVariants(ctx context.Context, productID int64) ([]VariantDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPriceCategories(ctx context.Context) ([]PriceCategoryDTO, error) {
	rows, err := s.repo.ListPriceCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price categories")
	}
	dtos := make([]PriceCategoryDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, PriceCategoryDTO{
			ID:         row.ID,
			Name:       row.Name,
			Percentage: row.Percentage,
			SetDefault: row.SetDefault,
		})
	}
	return dtos, nil
}

func (s *service) ListTaxes(ctx context.Context) ([]TaxDTO, error) {
	rows, err := s.repo.ListTaxes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list taxes")
	}
	dtos := make([]TaxDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, TaxDTO{
			ID:         row.ID,
			Name:       row.Name,
			Percentage: row.Percentage,
		})
	}
	return dtos, nil
}

func (s *service) ListProductVariants(ctx context.Context, productID int64) ([]VariantDTO, error) {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %d not found", productID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	rows, err := s.repo.ListVariantsByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product variants")
	}
	dtos := make([]VariantDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, VariantDTO{
			ID:       row.ID,
			FullName: row.FullName,
			SKU:      row.SKU,
			IsActive: row.IsActive,
		})
	}
	return dtos, nil
}
