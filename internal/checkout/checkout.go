// Package checkout derives the order summary from the bag and the catalog,
// and handles the simulated submit.
package checkout

import (
	"context"
	"errors"

	"github.com/gameday-grill/web/internal/cart"
	"github.com/gameday-grill/web/internal/catalog"
	"github.com/gameday-grill/web/internal/money"
	"github.com/shopspring/decimal"
)

// EmptyBagMessage replaces the summary while the bag is empty.
const EmptyBagMessage = "Please add an item to your bag before checking out!"

// ThankYouMessage is shown after a successful simulated submit.
const ThankYouMessage = "Thank you for your purchase! \nYour order will be ready and delivered soon. 🎉"

// ErrEmptyCart is returned when submit is attempted on an empty bag.
var ErrEmptyCart = errors.New("cart is empty")

// Line is one summary row: an entry priced against the current catalog.
type Line struct {
	EntryID  string `json:"entry_id"`
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

// Summary is the rendered checkout state.
type Summary struct {
	Lines     []Line `json:"lines"`
	Total     string `json:"total,omitempty"`
	CanSubmit bool   `json:"can_submit"`
	Prompt    string `json:"prompt,omitempty"`
}

// Checkout prices the bag against the catalog. It recomputes from scratch
// on every call; the store's change listener decides when that happens.
type Checkout struct {
	bag     *cart.Store
	catalog *catalog.Catalog
}

// New creates a Checkout over the given bag and catalog.
func New(bag *cart.Store, cat *catalog.Catalog) *Checkout {
	return &Checkout{bag: bag, catalog: cat}
}

// Recompute builds the summary: per entry, (unit price + delta) × quantity,
// summed into the grand total, both formatted as US currency. An empty bag
// yields no total and a prompt instead of a submit action.
func (c *Checkout) Recompute() Summary {
	entries := c.bag.Entries()
	if len(entries) == 0 {
		return Summary{
			CanSubmit: false,
			Prompt:    EmptyBagMessage,
		}
	}

	summary := Summary{
		Lines:     make([]Line, 0, len(entries)),
		CanSubmit: true,
	}
	total := decimal.Zero
	for _, entry := range entries {
		unit := decimal.Zero
		if item, ok := c.catalog.ItemByID(entry.ItemID); ok {
			unit = item.Price
		}
		lineTotal := unit.Add(entry.PriceDelta).Mul(decimal.NewFromInt(int64(entry.Quantity)))
		total = total.Add(lineTotal)

		summary.Lines = append(summary.Lines, Line{
			EntryID:  entry.ID,
			Label:    entry.DisplayName,
			Quantity: entry.Quantity,
			Total:    money.FormatUSD(lineTotal),
		})
	}
	summary.Total = money.FormatUSD(total)
	return summary
}

// Submit completes the simulated checkout: no payment service is ever
// contacted. It rejects an empty bag, otherwise clears it and returns the
// resulting (empty) summary.
func (c *Checkout) Submit(ctx context.Context) (Summary, error) {
	if c.bag.Len() == 0 {
		return Summary{}, ErrEmptyCart
	}
	c.bag.Clear(ctx)
	return c.Recompute(), nil
}
