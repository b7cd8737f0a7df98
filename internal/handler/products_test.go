package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/brasas-pos/api/internal/database"
	"github.com/brasas-pos/api/internal/enum"
	"github.com/brasas-pos/api/internal/pricing"
)

type mockProductStore struct {
	listProductsFn func(ctx context.Context) ([]database.Product, error)
}

func (m *mockProductStore) ListProducts(ctx context.Context) ([]database.Product, error) {
	return m.listProductsFn(ctx)
}

func newProductRouter(store ProductStore) http.Handler {
	engine := pricing.NewEngine(pricing.DefaultPriceTable())
	r := chi.NewRouter()
	r.Route("/products", NewProductHandler(store, engine).RegisterRoutes)
	return r
}

func testCatalog(t *testing.T) []database.Product {
	t.Helper()
	return []database.Product{
		{
			ID:        uuid.New(),
			Name:      "Clásica",
			Price:     makeNumeric(t, "18000.00"),
			Type:      enum.ProductTypeBurger,
			BaconType: pgtype.Text{String: enum.BaconAsada, Valid: true},
			IsActive:  true,
		},
		{
			ID:       uuid.New(),
			Name:     "Papas",
			Code:     pgtype.Text{String: enum.SideCodePapas, Valid: true},
			Price:    makeNumeric(t, "7000.00"),
			Type:     enum.ProductTypeSide,
			IsActive: true,
		},
	}
}

func TestListProductsHandler(t *testing.T) {
	store := &mockProductStore{
		listProductsFn: func(ctx context.Context) ([]database.Product, error) {
			return testCatalog(t), nil
		},
	}
	router := newProductRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp []productResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("products = %d, want 2", len(resp))
	}
	if resp[0].Price != "18000.00" {
		t.Errorf("price = %q, want 18000.00", resp[0].Price)
	}
	if resp[1].Code != enum.SideCodePapas {
		t.Errorf("code = %q, want %q", resp[1].Code, enum.SideCodePapas)
	}
}

func TestVariantsHandler(t *testing.T) {
	store := &mockProductStore{
		listProductsFn: func(ctx context.Context) ([]database.Product, error) {
			return testCatalog(t), nil
		},
	}
	router := newProductRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/products/variants", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp catalogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Singles) != 1 || len(resp.Doubles) != 1 {
		t.Fatalf("singles = %d, doubles = %d, want 1 each", len(resp.Singles), len(resp.Doubles))
	}
	if resp.Singles[0].BasePrice != "18000.00" {
		t.Errorf("single basePrice = %q, want 18000.00", resp.Singles[0].BasePrice)
	}
	// double = base + one extra meat
	if resp.Doubles[0].BasePrice != "23000.00" {
		t.Errorf("double basePrice = %q, want 23000.00", resp.Doubles[0].BasePrice)
	}
	if resp.Doubles[0].IncludedMeats != 2 {
		t.Errorf("double includedMeats = %d, want 2", resp.Doubles[0].IncludedMeats)
	}

	// the side sells at the override price, not the catalog's 7000
	if len(resp.Sides) != 1 {
		t.Fatalf("sides = %d, want 1", len(resp.Sides))
	}
	if resp.Sides[0].BasePrice != "5000.00" {
		t.Errorf("side basePrice = %q, want 5000.00", resp.Sides[0].BasePrice)
	}
}

func TestListProductsHandlerStoreError(t *testing.T) {
	store := &mockProductStore{
		listProductsFn: func(ctx context.Context) ([]database.Product, error) {
			return nil, context.DeadlineExceeded
		},
	}
	router := newProductRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
