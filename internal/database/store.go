package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx, so the same queries run
// inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries bundles all hand-written SQL against the POS schema.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// --- Products ---

const productColumns = `id, name, code, price, type, bacon_type, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Price, &p.Type, &p.BaconType, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	const sql = `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY type, name`
	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	const sql = `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND is_active`
	return scanProduct(q.db.QueryRow(ctx, sql, id))
}

func (q *Queries) GetProductByCode(ctx context.Context, code string) (Product, error) {
	const sql = `SELECT ` + productColumns + ` FROM products WHERE code = $1 AND is_active`
	return scanProduct(q.db.QueryRow(ctx, sql, code))
}

type CreateProductParams struct {
	Name      string
	Code      pgtype.Text
	Price     pgtype.Numeric
	Type      string
	BaconType pgtype.Text
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	const sql = `
INSERT INTO products (name, code, price, type, bacon_type)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + productColumns
	return scanProduct(q.db.QueryRow(ctx, sql, arg.Name, arg.Code, arg.Price, arg.Type, arg.BaconType))
}

// --- Orders ---

const orderColumns = `id, table_number, to_go, status, items, total, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.TableNumber, &o.ToGo, &o.Status, &o.Items, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (q *Queries) collectOrders(ctx context.Context, sql string, args ...any) ([]Order, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type CreateOrderParams struct {
	TableNumber pgtype.Int4
	ToGo        bool
	Status      string
	Items       []byte
	Total       pgtype.Numeric
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	const sql = `
INSERT INTO orders (table_number, to_go, status, items, total)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + orderColumns
	return scanOrder(q.db.QueryRow(ctx, sql, arg.TableNumber, arg.ToGo, arg.Status, arg.Items, arg.Total))
}

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	const sql = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(q.db.QueryRow(ctx, sql, id))
}

type ListOrdersParams struct {
	Status pgtype.Text
	Limit  int32
	Offset int32
}

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error) {
	const sql = `
SELECT ` + orderColumns + `
FROM orders
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	return q.collectOrders(ctx, sql, arg.Status, arg.Limit, arg.Offset)
}

// ListPendingOrders returns the kitchen feed, oldest first.
func (q *Queries) ListPendingOrders(ctx context.Context, status string) ([]Order, error) {
	const sql = `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at ASC`
	return q.collectOrders(ctx, sql, status)
}

type ListOrdersByDayParams struct {
	Start time.Time
	End   time.Time
}

// ListOrdersByDay returns every order created within [Start, End) for the
// cash-close summary, newest first.
func (q *Queries) ListOrdersByDay(ctx context.Context, arg ListOrdersByDayParams) ([]Order, error) {
	const sql = `
SELECT ` + orderColumns + `
FROM orders
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at DESC`
	return q.collectOrders(ctx, sql, arg.Start, arg.End)
}

type UpdateOrderItemsParams struct {
	ID    uuid.UUID
	Items []byte
	Total pgtype.Numeric
}

func (q *Queries) UpdateOrderItems(ctx context.Context, arg UpdateOrderItemsParams) (Order, error) {
	const sql = `
UPDATE orders
SET items = $2, total = $3, updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns
	return scanOrder(q.db.QueryRow(ctx, sql, arg.ID, arg.Items, arg.Total))
}

type UpdateOrderTableParams struct {
	ID          uuid.UUID
	TableNumber pgtype.Int4
	ToGo        bool
}

func (q *Queries) UpdateOrderTable(ctx context.Context, arg UpdateOrderTableParams) (Order, error) {
	const sql = `
UPDATE orders
SET table_number = $2, to_go = $3, updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns
	return scanOrder(q.db.QueryRow(ctx, sql, arg.ID, arg.TableNumber, arg.ToGo))
}

type UpdateOrderStatusParams struct {
	ID         uuid.UUID
	Status     string
	FromStatus string
}

// UpdateOrderStatus transitions an order's status with compare-and-set
// semantics: no row is updated when the status changed between the caller's
// read and this write, which surfaces the race as pgx.ErrNoRows.
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	const sql = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1 AND status = $3
RETURNING ` + orderColumns
	return scanOrder(q.db.QueryRow(ctx, sql, arg.ID, arg.Status, arg.FromStatus))
}
