package controllers

import (
	"net/http"

	"github.com/danisworo/inventory-backoffice/api/responses"
	"github.com/danisworo/inventory-backoffice/api/validators"
	catalogsvc "github.com/danisworo/inventory-backoffice/internal/catalog"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/danisworo/inventory-backoffice/pkg/logger"
)

// ListPriceCategories returns the shared pricing tiers.
func ListPriceCategories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		rows, err := svc.ListPriceCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, rows)
	}
}

// ListTaxes returns the shared tax rates.
func ListTaxes(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		rows, err := svc.ListTaxes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, rows)
	}
}

// ListProductVariants returns the variants of one product.
func ListProductVariants(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		productID, err := validators.ParsePathID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListProductVariants(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, rows)
	}
}
