package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brasas-pos/api/internal/database"
	"github.com/brasas-pos/api/internal/menu"
	"github.com/brasas-pos/api/internal/pricing"
)

// ProductStore defines the database methods needed by product handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]database.Product, error)
}

// ProductHandler serves the catalog and its sellable-variant projection.
type ProductHandler struct {
	store  ProductStore
	engine *pricing.Engine
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductStore, engine *pricing.Engine) *ProductHandler {
	return &ProductHandler{store: store, engine: engine}
}

// RegisterRoutes registers product endpoints on the given Chi router.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/variants", h.Variants)
}

// --- Response types ---

type productResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	Price     string    `json:"price"`
	Type      string    `json:"type"`
	BaconType string    `json:"baconType,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type variantResponse struct {
	ProductID     uuid.UUID `json:"productId"`
	Name          string    `json:"name"`
	Code          string    `json:"code,omitempty"`
	BasePrice     string    `json:"basePrice"`
	IncludedMeats int       `json:"includedMeats"`
	Kind          string    `json:"kind"`
	BaconType     string    `json:"baconType,omitempty"`
}

type catalogResponse struct {
	Singles []variantResponse `json:"singles"`
	Doubles []variantResponse `json:"doubles"`
	Sides   []variantResponse `json:"sides"`
}

func toProductResponse(p database.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code.String,
		Price:     numericToString(p.Price),
		Type:      p.Type,
		BaconType: p.BaconType.String,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toVariantResponse(v pricing.Variant) variantResponse {
	return variantResponse{
		ProductID:     v.BaseProductID,
		Name:          v.DisplayName,
		Code:          v.Code,
		BasePrice:     v.BasePrice.StringFixed(2),
		IncludedMeats: v.IncludedMeats,
		Kind:          string(v.Kind),
		BaconType:     v.BaconType,
	}
}

func toMenuProduct(p database.Product) menu.Product {
	price := decimal.Zero
	if p.Price.Valid {
		if val, err := p.Price.Value(); err == nil && val != nil {
			if d, err := decimal.NewFromString(val.(string)); err == nil {
				price = d
			}
		}
	}
	return menu.Product{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code.String,
		Price:     price,
		Type:      p.Type,
		BaconType: p.BaconType.String,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// --- Handlers ---

// List handles GET /products: the raw active catalog.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		log.Printf("ERROR: list products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Variants handles GET /products/variants: the catalog projected into what
// the waiter screen actually sells, with double-meat prices precomputed and
// side prices overridden.
func (h *ProductHandler) Variants(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		log.Printf("ERROR: list products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	menuProducts := make([]menu.Product, len(products))
	for i, p := range products {
		menuProducts[i] = toMenuProduct(p)
	}

	catalog := menu.ProjectVariants(menuProducts, h.engine.Table())

	resp := catalogResponse{
		Singles: make([]variantResponse, len(catalog.Singles)),
		Doubles: make([]variantResponse, len(catalog.Doubles)),
		Sides:   make([]variantResponse, len(catalog.Sides)),
	}
	for i, v := range catalog.Singles {
		resp.Singles[i] = toVariantResponse(v)
	}
	for i, v := range catalog.Doubles {
		resp.Doubles[i] = toVariantResponse(v)
	}
	for i, v := range catalog.Sides {
		resp.Sides[i] = toVariantResponse(v)
	}

	writeJSON(w, http.StatusOK, resp)
}
