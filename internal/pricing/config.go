package pricing

import "github.com/brasas-pos/api/internal/enum"

// Field names a Config write can target. Handlers address fields by these
// names so the cascade rules below stay the single source of truth for
// cross-field behavior.
type Field string

const (
	FieldQuantity      Field = "quantity"
	FieldMeatQty       Field = "meatQty"
	FieldBaconType     Field = "baconType"
	FieldExtraBacon    Field = "extraBacon"
	FieldExtraCheese   Field = "extraCheese"
	FieldLettuceOption Field = "lettuceOption"
	FieldTomato        Field = "tomato"
	FieldOnion         Field = "onion"
	FieldNoVeggies     Field = "noVeggies"
	FieldExtraLettuce  Field = "extraLettuce"
	FieldExtraOnion    Field = "extraOnion"
	FieldIncludesFries Field = "includesFries"
	FieldExtraFriesQty Field = "extraFriesQty"
	FieldDrinkCode     Field = "drinkCode"
	FieldExtraDrinkQty Field = "extraDrinkQty"
	FieldNotes         Field = "notes"
)

// Config is the in-progress customization of one line item. It is a plain
// value: every mutation goes through Set, which returns a copy, so a
// discarded configuration panel never leaks state into the cart.
type Config struct {
	Quantity int

	MeatQty     int
	BaconType   string
	ExtraBacon  bool
	ExtraCheese bool

	LettuceOption string
	Tomato        bool
	Onion         bool
	NoVeggies     bool

	// Chess-side only.
	ExtraLettuce bool
	ExtraOnion   bool

	IncludesFries bool
	ExtraFriesQty int

	DrinkCode     string
	ExtraDrinkQty int

	Notes string
}

// DefaultConfig seeds the configuration for a freshly selected variant.
// Burgers start at the variant's included meat count; sides have no meat.
func DefaultConfig(v Variant) Config {
	meat := v.IncludedMeats
	if v.Kind != KindBurger {
		meat = 0
	} else if meat < 1 {
		meat = 1
	}
	return Config{
		Quantity:      1,
		MeatQty:       meat,
		BaconType:     v.BaconType,
		LettuceOption: enum.LettuceNormal,
		Tomato:        true,
		Onion:         true,
		DrinkCode:     enum.DrinkNone,
	}
}

// Set returns a copy of c with field written and dependent fields cascaded.
// Values of the wrong type fall back to the field's default, mirroring how
// the order entry screen coerces free-form input.
func (c Config) Set(field Field, value any) Config {
	c.assign(field, value)
	c.applyCascades(field)
	return c
}

func (c *Config) assign(field Field, value any) {
	switch field {
	case FieldQuantity:
		c.Quantity = intOr(value, 1)
	case FieldMeatQty:
		c.MeatQty = intOr(value, 1)
	case FieldBaconType:
		c.BaconType = stringOr(value, enum.BaconAsada)
	case FieldExtraBacon:
		c.ExtraBacon = boolOr(value)
	case FieldExtraCheese:
		c.ExtraCheese = boolOr(value)
	case FieldLettuceOption:
		c.LettuceOption = stringOr(value, enum.LettuceNormal)
	case FieldTomato:
		c.Tomato = boolOr(value)
	case FieldOnion:
		c.Onion = boolOr(value)
	case FieldNoVeggies:
		c.NoVeggies = boolOr(value)
	case FieldExtraLettuce:
		c.ExtraLettuce = boolOr(value)
	case FieldExtraOnion:
		c.ExtraOnion = boolOr(value)
	case FieldIncludesFries:
		c.IncludesFries = boolOr(value)
	case FieldExtraFriesQty:
		c.ExtraFriesQty = intOr(value, 0)
	case FieldDrinkCode:
		c.DrinkCode = stringOr(value, enum.DrinkNone)
	case FieldExtraDrinkQty:
		c.ExtraDrinkQty = intOr(value, 0)
	case FieldNotes:
		c.Notes = stringOr(value, "")
	}
}

// cascade forces dependent fields into a consistent state after a write.
// Rules fire only for the field that changed and only when the condition
// holds on the new value.
type cascade struct {
	trigger Field
	when    func(Config) bool
	force   func(*Config)
}

var cascades = []cascade{
	{
		trigger: FieldNoVeggies,
		when:    func(c Config) bool { return c.NoVeggies },
		force: func(c *Config) {
			c.LettuceOption = enum.LettuceNone
			c.Tomato = false
			c.Onion = false
			c.ExtraLettuce = false
			c.ExtraOnion = false
		},
	},
	{
		trigger: FieldOnion,
		when:    func(c Config) bool { return !c.Onion },
		force:   func(c *Config) { c.ExtraOnion = false },
	},
	{
		trigger: FieldLettuceOption,
		when:    func(c Config) bool { return c.LettuceOption == enum.LettuceNone },
		force:   func(c *Config) { c.ExtraLettuce = false },
	},
}

func (c *Config) applyCascades(changed Field) {
	for _, rule := range cascades {
		if rule.trigger == changed && rule.when(*c) {
			rule.force(c)
		}
	}
}

// Normalize clamps numeric fields to their legal ranges for the given
// variant kind. Burgers keep at least one meat; sides carry none.
func (c Config) Normalize(kind VariantKind) Config {
	if c.Quantity < 1 {
		c.Quantity = 1
	}
	if kind == KindBurger {
		if c.MeatQty < 1 {
			c.MeatQty = 1
		}
	} else {
		c.MeatQty = 0
	}
	if c.ExtraFriesQty < 0 {
		c.ExtraFriesQty = 0
	}
	if c.ExtraDrinkQty < 0 {
		c.ExtraDrinkQty = 0
	}
	if c.BaconType == "" {
		c.BaconType = enum.BaconAsada
	}
	if c.LettuceOption == "" {
		c.LettuceOption = enum.LettuceNormal
	}
	if c.DrinkCode == "" {
		c.DrinkCode = enum.DrinkNone
	}
	return c
}

// HasDrink reports whether any drink is selected for the item itself
// (extra drink quantities do not count as the combo drink).
func (c Config) HasDrink() bool {
	return c.DrinkCode != "" && c.DrinkCode != enum.DrinkNone
}

func intOr(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func boolOr(v any) bool {
	b, _ := v.(bool)
	return b
}
