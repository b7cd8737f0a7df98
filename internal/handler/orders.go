package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/brasas-pos/api/internal/cart"
	"github.com/brasas-pos/api/internal/database"
	"github.com/brasas-pos/api/internal/enum"
	"github.com/brasas-pos/api/internal/pricing"
	"github.com/brasas-pos/api/internal/service"
	"github.com/brasas-pos/api/internal/ws"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*database.Order, []cart.Item, error)
	UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, cfg pricing.Config) (*database.Order, []cart.Item, error)
	UpdateTable(ctx context.Context, orderID uuid.UUID, tableNumber *int, toGo bool) (*database.Order, error)
}

// OrderStore defines the database methods needed by order read/update handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	ListPendingOrders(ctx context.Context, status string) ([]database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
}

// Broadcaster pushes events to connected screens. Satisfied by *ws.Hub.
type Broadcaster interface {
	Broadcast(event ws.Event)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc   OrderServicer
	store OrderStore
	hub   Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore, hub Broadcaster) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, hub: hub}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/pending", h.ListPending)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.UpdateTable)
	r.Put("/{id}/status", h.UpdateStatus)
	r.Put("/{id}/items/{itemId}", h.UpdateItem)
}

// --- Request / Response types ---

type createOrderRequest struct {
	TableNumber *int                     `json:"tableNumber"`
	ToGo        bool                     `json:"toGo"`
	Items       []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	ProductID string            `json:"productId"`
	Variant   string            `json:"variant"`
	Config    itemConfigRequest `json:"config"`
}

// itemConfigRequest mirrors the full item configuration the waiter screen
// sends. Missing booleans decode as false; the service normalizes the rest.
type itemConfigRequest struct {
	Quantity      int    `json:"quantity"`
	MeatQty       int    `json:"meatQty"`
	BaconType     string `json:"baconType"`
	ExtraBacon    bool   `json:"extraBacon"`
	ExtraCheese   bool   `json:"extraCheese"`
	LettuceOption string `json:"lettuceOption"`
	Tomato        bool   `json:"tomato"`
	Onion         bool   `json:"onion"`
	NoVeggies     bool   `json:"noVeggies"`
	ExtraLettuce  bool   `json:"extraLettuce"`
	ExtraOnion    bool   `json:"extraOnion"`
	IncludesFries bool   `json:"includesFries"`
	ExtraFriesQty int    `json:"extraFriesQty"`
	DrinkCode     string `json:"drinkCode"`
	ExtraDrinkQty int    `json:"extraDrinkQty"`
	Notes         string `json:"notes"`
}

func (c itemConfigRequest) toConfig() pricing.Config {
	return pricing.Config{
		Quantity:      c.Quantity,
		MeatQty:       c.MeatQty,
		BaconType:     c.BaconType,
		ExtraBacon:    c.ExtraBacon,
		ExtraCheese:   c.ExtraCheese,
		LettuceOption: c.LettuceOption,
		Tomato:        c.Tomato,
		Onion:         c.Onion,
		NoVeggies:     c.NoVeggies,
		ExtraLettuce:  c.ExtraLettuce,
		ExtraOnion:    c.ExtraOnion,
		IncludesFries: c.IncludesFries,
		ExtraFriesQty: c.ExtraFriesQty,
		DrinkCode:     c.DrinkCode,
		ExtraDrinkQty: c.ExtraDrinkQty,
		Notes:         c.Notes,
	}
}

// orderListResponse wraps a list of orders with pagination metadata.
type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateTableRequest struct {
	TableNumber *int `json:"tableNumber"`
	ToGo        bool `json:"toGo"`
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": formatItemError(i, "productId is required"),
			})
			return
		}
	}

	svcItems := make([]service.CreateOrderItemRequest, len(req.Items))
	for i, item := range req.Items {
		svcItems[i] = service.CreateOrderItemRequest{
			ProductID: item.ProductID,
			Variant:   item.Variant,
			Config:    item.Config.toConfig(),
		}
	}

	order, items, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		TableNumber: req.TableNumber,
		ToGo:        req.ToGo,
		Items:       svcItems,
	})
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toOrderResponse(*order, items)
	h.broadcast(ws.EventOrderCreated, resp)
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /orders with optional status filter and pagination.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	params := database.ListOrdersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		if !isValidOrderStatus(s) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		params.Status = pgtype.Text{String: s, Valid: true}
	}

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o, nil)
	}

	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: resp,
		Limit:  limit,
		Offset: offset,
	})
}

// ListPending handles GET /orders/pending: the kitchen feed, oldest first.
func (h *OrderHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListPendingOrders(r.Context(), enum.OrderStatusPendiente)
	if err != nil {
		log.Printf("ERROR: list pending orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o, nil)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order, nil))
}

// UpdateStatus handles PUT /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}
	if !isValidOrderStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	// Fetch current order to validate transition
	current, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order for status update: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := validateStatusTransition(current.Status, req.Status); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), database.UpdateOrderStatusParams{
		ID:         orderID,
		Status:     req.Status,
		FromStatus: current.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No rows updated means the status changed between our read and write
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order status changed, please retry"})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toOrderResponse(updated, nil)
	h.broadcast(ws.EventOrderStatusChanged, resp)
	writeJSON(w, http.StatusOK, resp)
}

// UpdateTable handles PUT /orders/{id}: edits the table assignment.
func (h *OrderHandler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.svc.UpdateTable(r.Context(), orderID, req.TableNumber, req.ToGo)
	if err != nil {
		if errors.Is(err, service.ErrTableRequired) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: update order table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toOrderResponse(*order, nil)
	h.broadcast(ws.EventOrderUpdated, resp)
	writeJSON(w, http.StatusOK, resp)
}

// UpdateItem handles PUT /orders/{id}/items/{itemId}: the kitchen edit flow.
// The new configuration replaces the item's and the whole order is re-priced.
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	var req itemConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, items, err := h.svc.UpdateItem(r.Context(), orderID, itemID, req.toConfig())
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		if errors.Is(err, service.ErrItemNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		log.Printf("ERROR: update order item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toOrderResponse(*order, items)
	h.broadcast(ws.EventOrderUpdated, resp)
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func (h *OrderHandler) broadcast(eventType string, payload any) {
	if h.hub == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: marshal %s payload: %v", eventType, err)
		return
	}
	h.hub.Broadcast(ws.Event{Type: eventType, Payload: raw})
}

func formatItemError(idx int, msg string) string {
	return "items[" + strconv.Itoa(idx) + "]: " + msg
}

// isValidationError checks if the error is a known validation error
// from the service layer that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyItems) ||
		errors.Is(err, service.ErrTableRequired) ||
		errors.Is(err, service.ErrInvalidProductID) ||
		errors.Is(err, service.ErrProductNotFound) ||
		errors.Is(err, service.ErrInvalidVariant)
}

// isValidOrderStatus checks if the given status is a valid order status.
func isValidOrderStatus(s string) bool {
	switch s {
	case enum.OrderStatusPendiente,
		enum.OrderStatusPreparando,
		enum.OrderStatusListo,
		enum.OrderStatusEntregado,
		enum.OrderStatusCancelado:
		return true
	}
	return false
}

// allowedTransitions defines valid status transitions.
// Key is current status, value is the set of statuses it can transition to.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPendiente:  {enum.OrderStatusPreparando, enum.OrderStatusListo, enum.OrderStatusCancelado},
	enum.OrderStatusPreparando: {enum.OrderStatusListo, enum.OrderStatusCancelado},
	enum.OrderStatusListo:      {enum.OrderStatusEntregado, enum.OrderStatusCancelado},
}

// validateStatusTransition checks if the transition from current to next is allowed.
func validateStatusTransition(current, next string) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("cannot transition from %s", current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("cannot transition from %s to %s", current, next)
}
