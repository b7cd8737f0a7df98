package menu

import (
	"github.com/brasas-pos/api/internal/enum"
	"github.com/brasas-pos/api/internal/pricing"
)

// Catalog is the sellable view of the raw product list: every burger as a
// single and a double, plus whichever side products exist.
type Catalog struct {
	Singles []pricing.Variant
	Doubles []pricing.Variant
	Sides   []pricing.Variant
}

// ProjectVariants reshapes catalog products into sellable variants.
//
// Each burger yields a single (one meat included, base = catalog price) and
// a double (two meats included, base = catalog price + one extra meat).
// Side variants are matched by code and always use the override base prices
// from the table, never the catalog price; a missing side code just means
// that side is not on the menu today.
func ProjectVariants(products []Product, table pricing.PriceTable) Catalog {
	var c Catalog
	for _, p := range products {
		switch {
		case p.Type == enum.ProductTypeBurger:
			c.Singles = append(c.Singles, pricing.Variant{
				BaseProductID: p.ID,
				DisplayName:   p.Name,
				Code:          p.Code,
				BasePrice:     p.Price,
				IncludedMeats: 1,
				Kind:          pricing.KindBurger,
				BaconType:     p.DefaultBaconType(),
			})
			c.Doubles = append(c.Doubles, pricing.Variant{
				BaseProductID: p.ID,
				DisplayName:   p.Name + " (doble carne)",
				Code:          p.Code,
				BasePrice:     p.Price.Add(table.ExtraMeat),
				IncludedMeats: 2,
				Kind:          pricing.KindBurger,
				BaconType:     p.DefaultBaconType(),
			})
		case p.Code == enum.SideCodePapas:
			c.Sides = append(c.Sides, pricing.Variant{
				BaseProductID: p.ID,
				DisplayName:   "Papas (solo)",
				Code:          p.Code,
				BasePrice:     table.PlainSideBase,
				Kind:          pricing.KindPlainSide,
				BaconType:     p.DefaultBaconType(),
			})
		case p.Code == enum.SideCodePapasChess:
			c.Sides = append(c.Sides, pricing.Variant{
				BaseProductID: p.ID,
				DisplayName:   "Papas chessbeicon",
				Code:          p.Code,
				BasePrice:     table.ChessBase,
				Kind:          pricing.KindChessSide,
				BaconType:     p.DefaultBaconType(),
			})
		}
	}
	return c
}
