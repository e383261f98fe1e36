// Package order implements the add-to-bag customization flow: a short
// sequence of prompts (drink size, meal sides, quantity) that ends in a
// cart mutation. The original page expressed this as nested modal
// callbacks; here it is an explicit step machine, one answer per step,
// with branching decided once by the item's kind.
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/gameday-grill/web/internal/cart"
	"github.com/gameday-grill/web/internal/catalog"
	"github.com/shopspring/decimal"
)

// Step identifies the prompt a flow is waiting on.
type Step string

const (
	StepSize     Step = "SIZE"
	StepMeal     Step = "MEAL"
	StepSides    Step = "SIDES"
	StepQuantity Step = "QUANTITY"
	StepDone     Step = "DONE"
)

// Size is a drink size choice.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// MaxQuantity is the per-entry quantity cap; larger inputs clamp down to it.
const MaxQuantity = 10

// CartFullMessage is shown when the bag cap blocks a new flow.
const CartFullMessage = "You can only have up to 30 different items in your bag at once.\nPlease checkout or remove an item."

var (
	ErrCartFull        = errors.New("cart is full")
	ErrWrongStep       = errors.New("answer does not match the current step")
	ErrFlowDone        = errors.New("flow already completed")
	ErrUnknownSize     = errors.New("unknown drink size")
	ErrUnknownSide     = errors.New("side is not on the menu")
	ErrNoSides         = errors.New("no side dishes in the catalog")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

var sizeDeltas = map[Size]decimal.Decimal{
	SizeSmall:  decimal.Zero,
	SizeMedium: decimal.RequireFromString("0.25"),
	SizeLarge:  decimal.RequireFromString("0.5"),
}

// mealDelta is the fixed per-unit surcharge for upgrading to a meal.
var mealDelta = decimal.RequireFromString("4")

// Flow is one in-progress customization. It mutates the bag only on the
// final quantity submission; abandoning it at any step leaves the bag
// untouched, which is why cancellation needs no rollback.
type Flow struct {
	item catalog.Item
	bag  *cart.Store

	sideNames []string

	step  Step
	delta decimal.Decimal
	label string
}

// Begin starts a flow for the given item. The bag cap short-circuits here,
// before the first prompt. The opening step depends on the item's kind:
// drinks pick a size, mealable items decide on the meal upgrade, and
// everything else goes straight to the quantity prompt.
func Begin(item catalog.Item, cat *catalog.Catalog, bag *cart.Store) (*Flow, error) {
	if bag.Len() > cart.MaxEntries {
		return nil, ErrCartFull
	}

	f := &Flow{
		item:  item,
		bag:   bag,
		delta: decimal.Zero,
		label: item.Name,
	}
	for _, side := range cat.Sides() {
		f.sideNames = append(f.sideNames, side.Name)
	}

	switch item.Kind {
	case catalog.KindDrink:
		f.step = StepSize
	case catalog.KindMealable:
		f.step = StepMeal
	default:
		f.step = StepQuantity
	}
	return f, nil
}

// Step returns the prompt the flow is waiting on.
func (f *Flow) Step() Step {
	return f.step
}

// Item returns the item being customized.
func (f *Flow) Item() catalog.Item {
	return f.item
}

// SideOptions returns the side names offered at the sides step, in catalog
// order. The first entry is the default for both selections.
func (f *Flow) SideOptions() []string {
	out := make([]string, len(f.sideNames))
	copy(out, f.sideNames)
	return out
}

// ChooseSize answers the drink size prompt and advances to the quantity
// prompt, recording the size's price delta and label suffix.
func (f *Flow) ChooseSize(size Size) error {
	if f.step != StepSize {
		return f.stepError(StepSize)
	}
	delta, ok := sizeDeltas[size]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	f.delta = delta
	f.label = fmt.Sprintf("%s (%s)", f.item.Name, size)
	f.step = StepQuantity
	return nil
}

// ChooseMeal answers the meal-upgrade prompt. Declining goes straight to
// the quantity prompt; accepting moves to side selection and applies the
// meal surcharge.
func (f *Flow) ChooseMeal(upgrade bool) error {
	if f.step != StepMeal {
		return f.stepError(StepMeal)
	}
	if !upgrade {
		f.step = StepQuantity
		return nil
	}
	if len(f.sideNames) == 0 {
		return ErrNoSides
	}
	f.delta = mealDelta
	f.step = StepSides
	return nil
}

// ChooseSides answers the side-selection prompt. An empty selection keeps
// the default (the first catalog side); anything else must be on the menu.
func (f *Flow) ChooseSides(side1, side2 string) error {
	if f.step != StepSides {
		return f.stepError(StepSides)
	}
	if side1 == "" {
		side1 = f.sideNames[0]
	}
	if side2 == "" {
		side2 = f.sideNames[0]
	}
	for _, side := range []string{side1, side2} {
		if !f.validSide(side) {
			return fmt.Errorf("%w: %q", ErrUnknownSide, side)
		}
	}
	f.label = fmt.Sprintf("%s (Meal: %s, %s)", f.item.Name, side1, side2)
	f.step = StepQuantity
	return nil
}

// SubmitQuantity answers the final prompt and adds the configured entry to
// the bag. Quantities above MaxQuantity clamp down to it; zero or negative
// quantities are rejected and leave the flow open.
func (f *Flow) SubmitQuantity(ctx context.Context, quantity int) (cart.Entry, error) {
	if f.step != StepQuantity {
		return cart.Entry{}, f.stepError(StepQuantity)
	}
	if quantity <= 0 {
		return cart.Entry{}, ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}

	entry, err := f.bag.Add(ctx, f.item.ID, f.label, quantity, f.delta)
	if err != nil {
		return cart.Entry{}, err
	}
	f.step = StepDone
	return entry, nil
}

func (f *Flow) validSide(name string) bool {
	for _, side := range f.sideNames {
		if side == name {
			return true
		}
	}
	return false
}

func (f *Flow) stepError(want Step) error {
	if f.step == StepDone {
		return ErrFlowDone
	}
	return fmt.Errorf("%w: at %s, answered %s", ErrWrongStep, f.step, want)
}
