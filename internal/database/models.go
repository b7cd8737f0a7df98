package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Product is a catalog row.
type Product struct {
	ID        uuid.UUID
	Name      string
	Code      pgtype.Text
	Price     pgtype.Numeric
	Type      string
	BaconType pgtype.Text
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order is an order row. Items holds the raw JSONB document of priced line
// items; the service layer owns its shape.
type Order struct {
	ID          uuid.UUID
	TableNumber pgtype.Int4
	ToGo        bool
	Status      string
	Items       []byte
	Total       pgtype.Numeric
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
