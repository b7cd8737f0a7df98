package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/brasas-pos/api/internal/cart"
	"github.com/brasas-pos/api/internal/database"
	"github.com/brasas-pos/api/internal/enum"
	"github.com/brasas-pos/api/internal/menu"
	"github.com/brasas-pos/api/internal/pricing"
)

// Errors returned by the order service.
var (
	ErrEmptyItems       = errors.New("items are required")
	ErrTableRequired    = errors.New("a table number or to-go flag is required")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidVariant   = errors.New("variant not sellable for this product")
	ErrOrderNotFound    = errors.New("order not found")
	ErrItemNotFound     = errors.New("item not found in order")
)

// Variant selectors accepted on order items.
const (
	VariantSingle = "single"
	VariantDouble = "double"
	VariantSide   = "side"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed by the order service.
// Satisfied by *database.Queries (and its tx-scoped variant).
type OrderStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (database.Product, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	UpdateOrderItems(ctx context.Context, arg database.UpdateOrderItemsParams) (database.Order, error)
	UpdateOrderTable(ctx context.Context, arg database.UpdateOrderTableParams) (database.Order, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx), letting the
// service scope its queries to a transaction.
type NewOrderStore func(db database.DBTX) OrderStore

// CreateOrderRequest is the validated input for submitting a waiter cart.
type CreateOrderRequest struct {
	TableNumber *int
	ToGo        bool
	Items       []CreateOrderItemRequest
}

// CreateOrderItemRequest is one line item to price and persist.
type CreateOrderItemRequest struct {
	ProductID string
	Variant   string // single | double | side
	Config    pricing.Config
}

// OrderService prices and persists orders. All price math goes through the
// one pricing engine so waiter submission and kitchen edits can never
// disagree.
type OrderService struct {
	engine   *pricing.Engine
	pool     TxBeginner
	store    OrderStore // pool-scoped store for single-statement operations
	newStore NewOrderStore
}

func NewOrderService(engine *pricing.Engine, pool TxBeginner, store OrderStore, newStore NewOrderStore) *OrderService {
	return &OrderService{engine: engine, pool: pool, store: store, newStore: newStore}
}

// CreateOrder validates the draft, prices every item inside one
// transaction, and persists the order as pendiente.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*database.Order, []cart.Item, error) {
	if len(req.Items) == 0 {
		return nil, nil, ErrEmptyItems
	}
	if !req.ToGo && (req.TableNumber == nil || *req.TableNumber <= 0) {
		return nil, nil, ErrTableRequired
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	draft := cart.NewDraft()
	draft.ToGo = req.ToGo
	if !req.ToGo {
		draft.TableNumber = req.TableNumber
	}

	for i, item := range req.Items {
		v, err := s.resolveVariant(ctx, store, item)
		if err != nil {
			return nil, nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		draft.Add(cart.BuildItem(s.engine, v, item.Config))
	}

	if !draft.IsSubmittable() {
		return nil, nil, ErrTableRequired
	}

	items := draft.Items()
	rawItems, err := json.Marshal(items)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal items: %w", err)
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		TableNumber: tableToInt4(draft.TableNumber),
		ToGo:        draft.ToGo,
		Status:      enum.OrderStatusPendiente,
		Items:       rawItems,
		Total:       decimalToNumeric(draft.Total()),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit tx: %w", err)
	}

	return &order, items, nil
}

// resolveVariant looks the product up and reshapes it into the requested
// sellable variant using the same projection the menu endpoint serves.
func (s *OrderService) resolveVariant(ctx context.Context, store OrderStore, item CreateOrderItemRequest) (pricing.Variant, error) {
	productID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return pricing.Variant{}, ErrInvalidProductID
	}

	row, err := store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pricing.Variant{}, ErrProductNotFound
		}
		return pricing.Variant{}, fmt.Errorf("get product: %w", err)
	}

	catalog := menu.ProjectVariants([]menu.Product{productFromRow(row)}, s.engine.Table())

	var variants []pricing.Variant
	switch item.Variant {
	case VariantSingle, "":
		variants = catalog.Singles
	case VariantDouble:
		variants = catalog.Doubles
	case VariantSide:
		variants = catalog.Sides
	}
	if len(variants) == 0 {
		return pricing.Variant{}, ErrInvalidVariant
	}
	return variants[0], nil
}

// UpdateItem re-prices one item of a persisted order from the item's stored
// base price (never the live catalog), replaces it wholesale, and writes
// the full item list back with the recomputed total.
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, cfg pricing.Config) (*database.Order, []cart.Item, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, fmt.Errorf("get order: %w", err)
	}

	items, err := DecodeItems(order.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("decode items: %w", err)
	}

	found := false
	total := decimal.Zero
	for i, it := range items {
		if it.ID == itemID {
			items[i] = it.Reprice(s.engine, cfg)
			found = true
		}
		total = total.Add(items[i].TotalPrice)
	}
	if !found {
		return nil, nil, ErrItemNotFound
	}

	rawItems, err := json.Marshal(items)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal items: %w", err)
	}

	updated, err := store.UpdateOrderItems(ctx, database.UpdateOrderItemsParams{
		ID:    orderID,
		Items: rawItems,
		Total: decimalToNumeric(total),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("update order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit tx: %w", err)
	}

	return &updated, items, nil
}

// UpdateTable edits an order's table assignment. To-go orders carry no
// table number; dine-in orders need a positive one.
func (s *OrderService) UpdateTable(ctx context.Context, orderID uuid.UUID, tableNumber *int, toGo bool) (*database.Order, error) {
	if !toGo && (tableNumber == nil || *tableNumber <= 0) {
		return nil, ErrTableRequired
	}
	if toGo {
		tableNumber = nil
	}

	order, err := s.store.UpdateOrderTable(ctx, database.UpdateOrderTableParams{
		ID:          orderID,
		TableNumber: tableToInt4(tableNumber),
		ToGo:        toGo,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order table: %w", err)
	}
	return &order, nil
}

// DecodeItems unpacks the JSONB item document stored with an order.
func DecodeItems(raw []byte) ([]cart.Item, error) {
	var items []cart.Item
	if len(raw) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// --- Helpers ---

func productFromRow(p database.Product) menu.Product {
	return menu.Product{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code.String,
		Price:     numericToDecimal(p.Price),
		Type:      p.Type,
		BaconType: p.BaconType.String,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func tableToInt4(table *int) pgtype.Int4 {
	if table == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*table), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
