package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/brasas-pos/api/internal/cart"
	"github.com/brasas-pos/api/internal/database"
	"github.com/brasas-pos/api/internal/enum"
	"github.com/brasas-pos/api/internal/pricing"
)

// --- Mock implementations ---

// mockTx implements pgx.Tx with only the methods we need.
// The unused methods panic so we catch accidental calls.
type mockTx struct {
	commitErr   error
	rollbackErr error
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error          { return m.commitErr }
func (m *mockTx) Rollback(ctx context.Context) error        { return m.rollbackErr }
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockTxBeginner implements TxBeginner.
type mockTxBeginner struct {
	tx  pgx.Tx
	err error
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.tx, m.err
}

// mockOrderStore implements OrderStore with configurable behavior.
type mockOrderStore struct {
	getProductFn       func(ctx context.Context, id uuid.UUID) (database.Product, error)
	createOrderFn      func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	getOrderFn         func(ctx context.Context, id uuid.UUID) (database.Order, error)
	updateOrderItemsFn func(ctx context.Context, arg database.UpdateOrderItemsParams) (database.Order, error)
	updateOrderTableFn func(ctx context.Context, arg database.UpdateOrderTableParams) (database.Order, error)
}

func (m *mockOrderStore) GetProduct(ctx context.Context, id uuid.UUID) (database.Product, error) {
	return m.getProductFn(ctx, id)
}
func (m *mockOrderStore) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	return m.createOrderFn(ctx, arg)
}
func (m *mockOrderStore) GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	return m.getOrderFn(ctx, id)
}
func (m *mockOrderStore) UpdateOrderItems(ctx context.Context, arg database.UpdateOrderItemsParams) (database.Order, error) {
	return m.updateOrderItemsFn(ctx, arg)
}
func (m *mockOrderStore) UpdateOrderTable(ctx context.Context, arg database.UpdateOrderTableParams) (database.Order, error) {
	return m.updateOrderTableFn(ctx, arg)
}

// --- Test helpers ---

func makeNumeric(val string) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(val)
	return n
}

func numericEquals(n pgtype.Numeric, expected string) bool {
	d := numericToDecimal(n)
	exp, _ := decimal.NewFromString(expected)
	return d.Equal(exp)
}

func newTestService(store *mockOrderStore) *OrderService {
	tx := &mockTx{}
	pool := &mockTxBeginner{tx: tx}
	newStore := func(db database.DBTX) OrderStore { return store }
	engine := pricing.NewEngine(pricing.DefaultPriceTable())
	return NewOrderService(engine, pool, store, newStore)
}

func burgerRow(id uuid.UUID, price string) database.Product {
	return database.Product{
		ID:       id,
		Name:     "Clásica",
		Price:    makeNumeric(price),
		Type:     enum.ProductTypeBurger,
		IsActive: true,
	}
}

func sideRow(id uuid.UUID, code, price string) database.Product {
	return database.Product{
		ID:       id,
		Name:     "Papas",
		Code:     pgtype.Text{String: code, Valid: true},
		Price:    makeNumeric(price),
		Type:     enum.ProductTypeSide,
		IsActive: true,
	}
}

// defaultStore returns a mockOrderStore with sensible defaults for a single
// burger product. Individual tests override the functions they care about.
func defaultStore(productID uuid.UUID) *mockOrderStore {
	return &mockOrderStore{
		getProductFn: func(ctx context.Context, id uuid.UUID) (database.Product, error) {
			if id == productID {
				return burgerRow(productID, "18000.00"), nil
			}
			return database.Product{}, pgx.ErrNoRows
		},
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			return database.Order{
				ID:          uuid.New(),
				TableNumber: arg.TableNumber,
				ToGo:        arg.ToGo,
				Status:      arg.Status,
				Items:       arg.Items,
				Total:       arg.Total,
			}, nil
		},
	}
}

func defaultBurgerItem(productID uuid.UUID) CreateOrderItemRequest {
	return CreateOrderItemRequest{
		ProductID: productID.String(),
		Variant:   VariantSingle,
		Config: pricing.Config{
			Quantity:      1,
			MeatQty:       1,
			BaconType:     enum.BaconAsada,
			LettuceOption: enum.LettuceNormal,
			Tomato:        true,
			Onion:         true,
			DrinkCode:     enum.DrinkNone,
		},
	}
}

func intPtr(n int) *int { return &n }

// --- CreateOrder ---

func TestCreateOrderHappyPath(t *testing.T) {
	productID := uuid.New()
	store := defaultStore(productID)
	svc := newTestService(store)

	item := defaultBurgerItem(productID)
	item.Config.Quantity = 2
	item.Config.IncludesFries = true
	item.Config.DrinkCode = enum.DrinkCoca

	order, items, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		TableNumber: intPtr(5),
		Items:       []CreateOrderItemRequest{item},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.Status != enum.OrderStatusPendiente {
		t.Errorf("status = %q, want pendiente", order.Status)
	}
	if !order.TableNumber.Valid || order.TableNumber.Int32 != 5 {
		t.Errorf("tableNumber = %+v, want 5", order.TableNumber)
	}
	// unit 18000+3000+3000-1000 = 23000, ×2 = 46000
	if !numericEquals(order.Total, "46000") {
		t.Errorf("total = %+v, want 46000", order.Total)
	}

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].ID == uuid.Nil {
		t.Error("line item should get a synthetic id")
	}
	if !items[0].BasePrice.Equal(decimal.NewFromInt(18000)) {
		t.Errorf("basePrice = %s, want 18000", items[0].BasePrice)
	}
}

func TestCreateOrderDoubleVariantRaisesBasePrice(t *testing.T) {
	productID := uuid.New()
	svc := newTestService(defaultStore(productID))

	item := defaultBurgerItem(productID)
	item.Variant = VariantDouble
	item.Config.MeatQty = 2

	order, items, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ToGo:  true,
		Items: []CreateOrderItemRequest{item},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if !items[0].BasePrice.Equal(decimal.NewFromInt(23000)) {
		t.Errorf("double basePrice = %s, want 23000", items[0].BasePrice)
	}
	if !numericEquals(order.Total, "23000") {
		t.Errorf("total = %+v, want 23000", order.Total)
	}
}

func TestCreateOrderSideUsesOverridePrice(t *testing.T) {
	productID := uuid.New()
	store := defaultStore(productID)
	store.getProductFn = func(ctx context.Context, id uuid.UUID) (database.Product, error) {
		// Catalog says 7000; the plain side must still sell at 5000.
		return sideRow(productID, enum.SideCodePapas, "7000.00"), nil
	}
	svc := newTestService(store)

	item := defaultBurgerItem(productID)
	item.Variant = VariantSide

	_, items, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ToGo:  true,
		Items: []CreateOrderItemRequest{item},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if !items[0].UnitPrice.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("side unitPrice = %s, want 5000", items[0].UnitPrice)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name    string
		req     CreateOrderRequest
		wantErr error
	}{
		{
			name:    "no items",
			req:     CreateOrderRequest{ToGo: true},
			wantErr: ErrEmptyItems,
		},
		{
			name: "no table and not to-go",
			req: CreateOrderRequest{
				Items: []CreateOrderItemRequest{defaultBurgerItem(productID)},
			},
			wantErr: ErrTableRequired,
		},
		{
			name: "table zero",
			req: CreateOrderRequest{
				TableNumber: intPtr(0),
				Items:       []CreateOrderItemRequest{defaultBurgerItem(productID)},
			},
			wantErr: ErrTableRequired,
		},
		{
			name: "bad product id",
			req: CreateOrderRequest{
				ToGo:  true,
				Items: []CreateOrderItemRequest{{ProductID: "not-a-uuid", Variant: VariantSingle}},
			},
			wantErr: ErrInvalidProductID,
		},
		{
			name: "unknown product",
			req: CreateOrderRequest{
				ToGo:  true,
				Items: []CreateOrderItemRequest{defaultBurgerItem(uuid.New())},
			},
			wantErr: ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(defaultStore(productID))
			_, _, err := svc.CreateOrder(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateOrderRejectsSideVariantOfBurger(t *testing.T) {
	productID := uuid.New()
	svc := newTestService(defaultStore(productID))

	item := defaultBurgerItem(productID)
	item.Variant = VariantSide

	_, _, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ToGo:  true,
		Items: []CreateOrderItemRequest{item},
	})
	if !errors.Is(err, ErrInvalidVariant) {
		t.Fatalf("err = %v, want ErrInvalidVariant", err)
	}
}

// --- UpdateItem ---

func persistedOrder(t *testing.T, items []cart.Item) database.Order {
	t.Helper()
	raw, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal items: %v", err)
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return database.Order{
		ID:     uuid.New(),
		ToGo:   true,
		Status: enum.OrderStatusPendiente,
		Items:  raw,
		Total:  decimalToNumeric(total),
	}
}

func buildTestItem(t *testing.T, basePrice int64) cart.Item {
	t.Helper()
	engine := pricing.NewEngine(pricing.DefaultPriceTable())
	v := pricing.Variant{
		BaseProductID: uuid.New(),
		DisplayName:   "Clásica",
		BasePrice:     decimal.NewFromInt(basePrice),
		IncludedMeats: 1,
		Kind:          pricing.KindBurger,
		BaconType:     enum.BaconAsada,
	}
	return cart.BuildItem(engine, v, pricing.DefaultConfig(v))
}

func TestUpdateItemRepricesFromStoredBase(t *testing.T) {
	item := buildTestItem(t, 18000)
	order := persistedOrder(t, []cart.Item{item})

	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, id uuid.UUID) (database.Order, error) {
			return order, nil
		},
		updateOrderItemsFn: func(ctx context.Context, arg database.UpdateOrderItemsParams) (database.Order, error) {
			updated := order
			updated.Items = arg.Items
			updated.Total = arg.Total
			return updated, nil
		},
	}
	svc := newTestService(store)

	cfg := item.Config()
	cfg = cfg.Set(pricing.FieldIncludesFries, true)
	cfg = cfg.Set(pricing.FieldDrinkCode, enum.DrinkCoca)

	updated, items, err := svc.UpdateItem(context.Background(), order.ID, item.ID, cfg)
	if err != nil {
		t.Fatalf("update item: %v", err)
	}

	if items[0].ID != item.ID {
		t.Error("item id must survive the edit")
	}
	if !items[0].BasePrice.Equal(item.BasePrice) {
		t.Errorf("basePrice changed: %s -> %s", item.BasePrice, items[0].BasePrice)
	}
	if !items[0].UnitPrice.Equal(decimal.NewFromInt(23000)) {
		t.Errorf("unitPrice = %s, want 23000", items[0].UnitPrice)
	}
	if !numericEquals(updated.Total, "23000") {
		t.Errorf("total = %+v, want 23000", updated.Total)
	}
}

func TestUpdateItemRecomputesWholeOrderTotal(t *testing.T) {
	first := buildTestItem(t, 18000)
	second := buildTestItem(t, 22000)
	order := persistedOrder(t, []cart.Item{first, second})

	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, id uuid.UUID) (database.Order, error) {
			return order, nil
		},
		updateOrderItemsFn: func(ctx context.Context, arg database.UpdateOrderItemsParams) (database.Order, error) {
			updated := order
			updated.Items = arg.Items
			updated.Total = arg.Total
			return updated, nil
		},
	}
	svc := newTestService(store)

	cfg := first.Config()
	cfg = cfg.Set(pricing.FieldExtraBacon, true)

	updated, _, err := svc.UpdateItem(context.Background(), order.ID, first.ID, cfg)
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	// (18000 + 3000) + 22000
	if !numericEquals(updated.Total, "43000") {
		t.Errorf("total = %+v, want 43000", updated.Total)
	}
}

func TestUpdateItemUnknownItem(t *testing.T) {
	item := buildTestItem(t, 18000)
	order := persistedOrder(t, []cart.Item{item})

	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, id uuid.UUID) (database.Order, error) {
			return order, nil
		},
	}
	svc := newTestService(store)

	_, _, err := svc.UpdateItem(context.Background(), order.ID, uuid.New(), item.Config())
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}
}

func TestUpdateItemUnknownOrder(t *testing.T) {
	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, id uuid.UUID) (database.Order, error) {
			return database.Order{}, pgx.ErrNoRows
		},
	}
	svc := newTestService(store)

	_, _, err := svc.UpdateItem(context.Background(), uuid.New(), uuid.New(), pricing.Config{})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

// --- UpdateTable ---

func TestUpdateTableToGoClearsTableNumber(t *testing.T) {
	var got database.UpdateOrderTableParams
	store := &mockOrderStore{
		updateOrderTableFn: func(ctx context.Context, arg database.UpdateOrderTableParams) (database.Order, error) {
			got = arg
			return database.Order{ID: arg.ID, ToGo: arg.ToGo, TableNumber: arg.TableNumber}, nil
		},
	}
	svc := newTestService(store)

	table := 4
	if _, err := svc.UpdateTable(context.Background(), uuid.New(), &table, true); err != nil {
		t.Fatalf("update table: %v", err)
	}
	if got.TableNumber.Valid {
		t.Error("to-go order must not keep a table number")
	}
	if !got.ToGo {
		t.Error("toGo not persisted")
	}
}

func TestUpdateTableRequiresTableWhenNotToGo(t *testing.T) {
	svc := newTestService(&mockOrderStore{})
	if _, err := svc.UpdateTable(context.Background(), uuid.New(), nil, false); !errors.Is(err, ErrTableRequired) {
		t.Fatalf("err = %v, want ErrTableRequired", err)
	}
}
