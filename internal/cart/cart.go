package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrItemNotFound is returned when an edit targets an item id that is not
// in the draft (for example, the item was removed mid-edit).
var ErrItemNotFound = errors.New("item not found in draft")

// Draft is an in-progress order: priced line items plus table / to-go
// metadata. Items keep insertion order for display but are addressed by
// their synthetic id, so removals cannot silently redirect an edit.
type Draft struct {
	TableNumber *int
	ToGo        bool

	items []Item
}

func NewDraft() *Draft {
	return &Draft{}
}

// Add appends an item to the draft, assigning an id if the item has none.
func (d *Draft) Add(item Item) Item {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	d.items = append(d.items, item)
	return item
}

// Edit replaces the whole item with the given id. Partial patches are not
// supported: a priced item is only ever swapped for another priced item.
func (d *Draft) Edit(id uuid.UUID, item Item) error {
	for i := range d.items {
		if d.items[i].ID == id {
			item.ID = id
			d.items[i] = item
			return nil
		}
	}
	return ErrItemNotFound
}

// Remove drops the item with the given id. Removing an absent id is a no-op.
func (d *Draft) Remove(id uuid.UUID) {
	kept := d.items[:0]
	for _, it := range d.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	d.items = kept
}

// Items returns the draft's items in insertion order.
func (d *Draft) Items() []Item {
	out := make([]Item, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Draft) Len() int {
	return len(d.items)
}

// Total sums item totals. Recomputed on every call; never cached.
func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

// IsSubmittable reports whether the draft can be sent to the kitchen:
// at least one item, and either to-go or a positive table number.
func (d *Draft) IsSubmittable() bool {
	if len(d.items) == 0 {
		return false
	}
	if d.ToGo {
		return true
	}
	return d.TableNumber != nil && *d.TableNumber > 0
}

// Reset clears the draft after a successful submission.
func (d *Draft) Reset() {
	d.items = nil
	d.TableNumber = nil
	d.ToGo = false
}
