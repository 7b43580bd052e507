package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/danisworo/inventory-backoffice/api/middleware"
	pricingsvc "github.com/danisworo/inventory-backoffice/internal/pricing"
	"github.com/danisworo/inventory-backoffice/internal/rbac"
	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/danisworo/inventory-backoffice/pkg/logger"
)

type stubPricingService struct {
	doc       *pricingsvc.Document
	getErr    error
	updateErr error

	updateCalled    bool
	updateProductID int64
	updateUserID    int64
	updateInput     pricingsvc.UpdateInput
}

func (s *stubPricingService) GetByProductID(_ context.Context, productID int64) (*pricingsvc.Document, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.doc != nil {
		return s.doc, nil
	}
	return &pricingsvc.Document{ID: 7, ProductID: productID}, nil
}

func (s *stubPricingService) UpdateByProductID(_ context.Context, productID int64, input pricingsvc.UpdateInput, userID int64) error {
	s.updateCalled = true
	s.updateProductID = productID
	s.updateUserID = userID
	s.updateInput = input
	return s.updateErr
}

type stubGuard struct {
	err        error
	permission string
}

func (g *stubGuard) Require(_ context.Context, _ int64, permission string) error {
	g.permission = permission
	return g.err
}

func withProductParam(ctx context.Context, value string) context.Context {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("product_id", value)
	return context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
}

func controllerTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestGetInventoryPrice(t *testing.T) {
	logg := controllerTestLogger()

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory-price/42", nil)
		req = req.WithContext(withProductParam(req.Context(), "42"))
		rec := httptest.NewRecorder()

		GetInventoryPrice(&stubPricingService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"product_id":42`) {
			t.Fatalf("expected document in body, got %s", rec.Body.String())
		}
	})

	t.Run("invalid product id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory-price/abc", nil)
		req = req.WithContext(withProductParam(req.Context(), "abc"))
		rec := httptest.NewRecorder()

		GetInventoryPrice(&stubPricingService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubPricingService{getErr: pkgerrors.New(pkgerrors.CodeNotFound, "pricing information for product 42 not found")}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory-price/42", nil)
		req = req.WithContext(withProductParam(req.Context(), "42"))
		rec := httptest.NewRecorder()

		GetInventoryPrice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestUpdateInventoryPrice(t *testing.T) {
	logg := controllerTestLogger()
	validBody := `{"id":7,"lock_version":0,"usd_price":12.5,"exchange_rate":15500,"adjustment_percent":5,"real_cost":193750,"adjusted_cost":203437.5}`

	makeRequest := func(ctx context.Context, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/inventory-price/42", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req.WithContext(withProductParam(ctx, "42"))
	}

	t.Run("success", func(t *testing.T) {
		stub := &stubPricingService{}
		guard := &stubGuard{}
		ctx := middleware.WithUserID(context.Background(), 9)
		rec := httptest.NewRecorder()

		UpdateInventoryPrice(stub, guard, logg).ServeHTTP(rec, makeRequest(ctx, validBody))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		if !stub.updateCalled {
			t.Fatal("expected service to be invoked")
		}
		if stub.updateProductID != 42 || stub.updateUserID != 9 {
			t.Fatalf("unexpected call: product=%d user=%d", stub.updateProductID, stub.updateUserID)
		}
		if stub.updateInput.ID != 7 {
			t.Fatalf("unexpected payload id %d", stub.updateInput.ID)
		}
		if guard.permission != rbac.PermissionPricingWrite {
			t.Fatalf("unexpected permission %q", guard.permission)
		}
		if !strings.Contains(rec.Body.String(), "pricing information updated") {
			t.Fatalf("expected info envelope, got %s", rec.Body.String())
		}
	})

	t.Run("missing user", func(t *testing.T) {
		stub := &stubPricingService{}
		rec := httptest.NewRecorder()

		UpdateInventoryPrice(stub, &stubGuard{}, logg).ServeHTTP(rec, makeRequest(context.Background(), validBody))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if stub.updateCalled {
			t.Fatal("service must not run without a user")
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		stub := &stubPricingService{}
		guard := &stubGuard{err: pkgerrors.New(pkgerrors.CodeForbidden, "missing permission inventory-price:write")}
		ctx := middleware.WithUserID(context.Background(), 9)
		rec := httptest.NewRecorder()

		UpdateInventoryPrice(stub, guard, logg).ServeHTTP(rec, makeRequest(ctx, validBody))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if stub.updateCalled {
			t.Fatal("service must not run when forbidden")
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		stub := &stubPricingService{}
		ctx := middleware.WithUserID(context.Background(), 9)
		rec := httptest.NewRecorder()

		UpdateInventoryPrice(stub, &stubGuard{}, logg).ServeHTTP(rec, makeRequest(ctx, `{"id":`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing payload id", func(t *testing.T) {
		stub := &stubPricingService{}
		ctx := middleware.WithUserID(context.Background(), 9)
		rec := httptest.NewRecorder()

		UpdateInventoryPrice(stub, &stubGuard{}, logg).ServeHTTP(rec, makeRequest(ctx, `{"usd_price":12.5}`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("conflict from service", func(t *testing.T) {
		stub := &stubPricingService{updateErr: pkgerrors.New(pkgerrors.CodeConflict, "pricing information changed by another update")}
		ctx := middleware.WithUserID(context.Background(), 9)
		rec := httptest.NewRecorder()

		UpdateInventoryPrice(stub, &stubGuard{}, logg).ServeHTTP(rec, makeRequest(ctx, validBody))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}
