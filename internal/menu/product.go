package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brasas-pos/api/internal/enum"
)

// Product is a raw catalog entry as stored. The POS never sells a Product
// directly; it sells the variants projected from it.
type Product struct {
	ID        uuid.UUID
	Name      string
	Code      string // stable lookup code; empty for regular burgers
	Price     decimal.Decimal
	Type      string // enum.ProductTypeBurger or enum.ProductTypeSide
	BaconType string // default bacon preparation for this product
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultBaconType resolves the product's bacon option, falling back to
// "asada" when the catalog carries none.
func (p Product) DefaultBaconType() string {
	if p.BaconType == enum.BaconCaramelizada {
		return enum.BaconCaramelizada
	}
	return enum.BaconAsada
}
