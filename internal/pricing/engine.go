package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brasas-pos/api/internal/enum"
)

// VariantKind selects which pricing rules apply to a line item.
type VariantKind string

const (
	KindBurger    VariantKind = "burger"
	KindPlainSide VariantKind = "plain_side"
	KindChessSide VariantKind = "chess_side"
)

// Variant is a sellable shaping of a catalog product: the same burger sells
// as a single or a double, and the two side products sell with fixed base
// prices independent of the raw catalog price.
type Variant struct {
	BaseProductID uuid.UUID
	DisplayName   string
	Code          string
	BasePrice     decimal.Decimal
	IncludedMeats int
	Kind          VariantKind
	BaconType     string
}

// KindForCode maps a stored product code back to the pricing rules for it.
// Persisted items carry the code, not the kind, so kitchen edits use this to
// re-enter the engine with the same rules the item was priced under.
func KindForCode(code string) VariantKind {
	switch code {
	case enum.SideCodePapas:
		return KindPlainSide
	case enum.SideCodePapasChess:
		return KindChessSide
	}
	return KindBurger
}

// Engine computes unit prices from a fixed price table. It holds no other
// state: the same inputs always produce the same price, whether called for
// the live preview, the order submission, or a kitchen re-edit.
type Engine struct {
	table PriceTable
}

func NewEngine(table PriceTable) *Engine {
	return &Engine{table: table}
}

// Table returns the engine's price table.
func (e *Engine) Table() PriceTable {
	return e.table
}

// UnitPrice computes the price of a single unit for the given base price,
// customization, and variant kind. Quantity is the caller's concern:
// total = unit price × quantity. Results never go below zero.
func (e *Engine) UnitPrice(basePrice decimal.Decimal, cfg Config, includedMeats int, kind VariantKind) decimal.Decimal {
	var price decimal.Decimal
	switch kind {
	case KindPlainSide:
		// No add-ons apply; the override base price is the whole story.
		price = basePrice
	case KindChessSide:
		price = e.chessSidePrice(basePrice, cfg)
	default:
		price = e.burgerPrice(basePrice, cfg, includedMeats)
	}
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

func (e *Engine) chessSidePrice(basePrice decimal.Decimal, cfg Config) decimal.Decimal {
	price := basePrice
	if !price.IsPositive() {
		price = e.table.ChessBase
	}

	if cfg.ExtraCheese {
		price = price.Add(e.table.ExtraCheese)
	}
	if cfg.ExtraBacon {
		price = price.Add(e.table.ExtraBacon)
	}
	if cfg.ExtraOnion {
		price = price.Add(e.table.ExtraOnion)
	}
	if cfg.ExtraLettuce {
		price = price.Add(e.table.ExtraLettuce)
	}

	// Flat surcharge for choosing any drink. The burger combo discount and
	// per-unit extra drink pricing do not apply to sides.
	if cfg.HasDrink() {
		price = price.Add(e.table.ChessDrinkSurcharge)
	}
	return price
}

func (e *Engine) burgerPrice(basePrice decimal.Decimal, cfg Config, includedMeats int) decimal.Decimal {
	price := basePrice

	meatQty := cfg.MeatQty
	if meatQty < 1 {
		meatQty = 1
	}
	if includedMeats < 1 {
		includedMeats = 1
	}
	if extra := meatQty - includedMeats; extra > 0 {
		price = price.Add(e.table.ExtraMeat.Mul(decimal.NewFromInt(int64(extra))))
	}

	if cfg.ExtraBacon {
		price = price.Add(e.table.ExtraBacon)
	}
	if cfg.ExtraCheese {
		price = price.Add(e.table.ExtraCheese)
	}

	if cfg.IncludesFries {
		price = price.Add(e.table.FriesCombo)
	}
	if cfg.HasDrink() {
		price = price.Add(e.table.DrinkCombo)
	}
	// Combo discount requires fries AND a drink on the same item.
	if cfg.IncludesFries && cfg.HasDrink() {
		price = price.Sub(e.table.ComboDiscount)
	}

	if cfg.ExtraFriesQty > 0 {
		price = price.Add(e.table.ExtraFries.Mul(decimal.NewFromInt(int64(cfg.ExtraFriesQty))))
	}
	if cfg.ExtraDrinkQty > 0 {
		price = price.Add(e.table.ExtraDrink.Mul(decimal.NewFromInt(int64(cfg.ExtraDrinkQty))))
	}

	return price
}
