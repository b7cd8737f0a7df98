package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brasas-pos/api/internal/pricing"
)

// ItemConfig is the customization snapshot persisted with a line item.
// Field names match the wire format the POS clients already speak.
type ItemConfig struct {
	MeatType      string `json:"meatType"`
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
	Notes         string `json:"notes"`
	IncludedMeats int    `json:"includedMeats"`
}

// Item is one priced, configured unit of an order. Items are replaced whole
// on edit, never field-patched, so unit price and configuration can never
// drift apart. BasePrice is captured when the item is built and is immutable
// for the item's lifetime: later catalog price changes must not alter an
// already-placed order.
type Item struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product"`
	ProductName   string          `json:"productName"`
	ProductCode   string          `json:"productCode,omitempty"`
	Quantity      int             `json:"quantity"`
	IncludesFries bool            `json:"includesFries"`
	ExtraFriesQty int             `json:"extraFriesQty"`
	DrinkCode     string          `json:"drinkCode"`
	ExtraDrinkQty int             `json:"extraDrinkQty"`
	BurgerConfig  ItemConfig      `json:"burgerConfig"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	BasePrice     decimal.Decimal `json:"basePrice"`
}

// BuildItem prices a configuration against a variant and freezes the result
// into a line item. The variant's base price becomes the item's immutable
// BasePrice.
func BuildItem(engine *pricing.Engine, v pricing.Variant, cfg pricing.Config) Item {
	cfg = cfg.Normalize(v.Kind)
	unit := engine.UnitPrice(v.BasePrice, cfg, v.IncludedMeats, v.Kind)

	return Item{
		ID:            uuid.New(),
		ProductID:     v.BaseProductID,
		ProductName:   v.DisplayName,
		ProductCode:   v.Code,
		Quantity:      cfg.Quantity,
		IncludesFries: cfg.IncludesFries,
		ExtraFriesQty: cfg.ExtraFriesQty,
		DrinkCode:     cfg.DrinkCode,
		ExtraDrinkQty: cfg.ExtraDrinkQty,
		BurgerConfig: ItemConfig{
			MeatType:      "carne",
			MeatQty:       cfg.MeatQty,
			BaconType:     cfg.BaconType,
			ExtraBacon:    cfg.ExtraBacon,
			ExtraCheese:   cfg.ExtraCheese,
			LettuceOption: cfg.LettuceOption,
			Tomato:        cfg.Tomato,
			Onion:         cfg.Onion,
			NoVeggies:     cfg.NoVeggies,
			ExtraLettuce:  cfg.ExtraLettuce,
			ExtraOnion:    cfg.ExtraOnion,
			Notes:         cfg.Notes,
			IncludedMeats: v.IncludedMeats,
		},
		UnitPrice:  unit,
		TotalPrice: unit.Mul(decimal.NewFromInt(int64(cfg.Quantity))),
		BasePrice:  v.BasePrice,
	}
}

// Kind resolves which pricing rules this item was sold under.
func (it Item) Kind() pricing.VariantKind {
	return pricing.KindForCode(it.ProductCode)
}

// Config rehydrates the editable configuration from the persisted item so
// kitchen staff re-open exactly what the waiter saved.
func (it Item) Config() pricing.Config {
	return pricing.Config{
		Quantity:      it.Quantity,
		MeatQty:       it.BurgerConfig.MeatQty,
		BaconType:     it.BurgerConfig.BaconType,
		ExtraBacon:    it.BurgerConfig.ExtraBacon,
		ExtraCheese:   it.BurgerConfig.ExtraCheese,
		LettuceOption: it.BurgerConfig.LettuceOption,
		Tomato:        it.BurgerConfig.Tomato,
		Onion:         it.BurgerConfig.Onion,
		NoVeggies:     it.BurgerConfig.NoVeggies,
		ExtraLettuce:  it.BurgerConfig.ExtraLettuce,
		ExtraOnion:    it.BurgerConfig.ExtraOnion,
		IncludesFries: it.IncludesFries,
		ExtraFriesQty: it.ExtraFriesQty,
		DrinkCode:     it.DrinkCode,
		ExtraDrinkQty: it.ExtraDrinkQty,
		Notes:         it.BurgerConfig.Notes,
	}
}

// Reprice applies a new configuration to this item, recomputing prices from
// the item's stored base price and included-meat count, never from the
// current catalog. Identity is kept; everything else is replaced.
func (it Item) Reprice(engine *pricing.Engine, cfg pricing.Config) Item {
	v := pricing.Variant{
		BaseProductID: it.ProductID,
		DisplayName:   it.ProductName,
		Code:          it.ProductCode,
		BasePrice:     it.BasePrice,
		IncludedMeats: it.BurgerConfig.IncludedMeats,
		Kind:          it.Kind(),
		BaconType:     it.BurgerConfig.BaconType,
	}
	replaced := BuildItem(engine, v, cfg)
	replaced.ID = it.ID
	return replaced
}
