package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/danisworo/inventory-backoffice/pkg/errors"
	"github.com/danisworo/inventory-backoffice/pkg/types"
)

func TestWriteDataEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	WriteData(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.DataEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode data envelope: %v", err)
	}
	if body.Status.Code != http.StatusOK || body.Status.Message != "OK" {
		t.Fatalf("unexpected status %+v", body.Status)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteInfoEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	WriteInfo(w, "pricing information updated")

	var body types.InfoEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode info envelope: %v", err)
	}
	if body.Info != "pricing information updated" {
		t.Fatalf("unexpected info %q", body.Info)
	}
	if body.Status.Code != http.StatusOK {
		t.Fatalf("unexpected status %+v", body.Status)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Error)
	}
	if body.Status.Message != "bad input" {
		t.Fatalf("expected typed message to pass through, got %q", body.Status.Message)
	}
	if body.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Status.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Status.Message)
	}
}
