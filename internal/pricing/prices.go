package pricing

import "github.com/shopspring/decimal"

// PriceTable holds every add-on and combo price in COP. It is built once at
// startup and injected into the Engine; nothing mutates it afterwards, so the
// same table prices both the waiter preview and the kitchen re-edit.
type PriceTable struct {
	ExtraMeat   decimal.Decimal
	ExtraBacon  decimal.Decimal
	ExtraCheese decimal.Decimal

	// Chess-side only add-ons.
	ExtraLettuce decimal.Decimal
	ExtraOnion   decimal.Decimal

	FriesCombo    decimal.Decimal
	DrinkCombo    decimal.Decimal
	ComboDiscount decimal.Decimal

	ExtraFries decimal.Decimal
	ExtraDrink decimal.Decimal

	ChessDrinkSurcharge decimal.Decimal
	ChessBase           decimal.Decimal
	PlainSideBase       decimal.Decimal
}

// DefaultPriceTable returns the restaurant's current menu prices.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		ExtraMeat:   decimal.NewFromInt(5000),
		ExtraBacon:  decimal.NewFromInt(3000),
		ExtraCheese: decimal.NewFromInt(3000),

		ExtraLettuce: decimal.NewFromInt(2000),
		ExtraOnion:   decimal.NewFromInt(2000),

		FriesCombo:    decimal.NewFromInt(3000),
		DrinkCombo:    decimal.NewFromInt(3000),
		ComboDiscount: decimal.NewFromInt(1000),

		ExtraFries: decimal.NewFromInt(5000),
		ExtraDrink: decimal.NewFromInt(4000),

		ChessDrinkSurcharge: decimal.NewFromInt(4000),
		ChessBase:           decimal.NewFromInt(10000),
		PlainSideBase:       decimal.NewFromInt(5000),
	}
}
