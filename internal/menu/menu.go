// Package menu turns the catalog plus an active filter into the view the
// page displays: item rows, aggregate-mode category sections, and the
// current category-button state.
package menu

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gameday-grill/web/internal/catalog"
	"github.com/gameday-grill/web/internal/money"
	"github.com/shopspring/decimal"
)

// NoItemsMessage is rendered in place of an empty item list.
const NoItemsMessage = "No items found! Try searching for a different term."

// ErrRenderInFlight is returned while a previous render's settle window is
// still open.
var ErrRenderInFlight = errors.New("render already in flight")

// Row is one displayed item.
type Row struct {
	ItemID      string       `json:"item_id"`
	Name        string       `json:"name"`
	Price       string       `json:"price"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Icon        string       `json:"icon,omitempty"`
	Kind        catalog.Kind `json:"kind"`
}

// Section is a run of rows under one category header. Scoped views emit a
// single section with an empty header.
type Section struct {
	Category string `json:"category,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Rows     []Row  `json:"rows"`
}

// View is the rendered result.
type View struct {
	Sections       []Section `json:"sections"`
	Aggregate      bool      `json:"aggregate"`
	Current        string    `json:"current"`
	Placeholder    string    `json:"placeholder,omitempty"`
	SkipTransition bool      `json:"skip_transition"`
}

// IsCurrent reports whether a category button with the given label should be
// highlighted. The match compares the button's leading label word against
// the view's current category ("All" in aggregate mode).
func (v View) IsCurrent(buttonLabel string) bool {
	fields := strings.Fields(buttonLabel)
	if len(fields) == 0 {
		return false
	}
	return fields[0] == v.Current
}

// Search filters items by a free-text query. If the query parses fully as a
// decimal number the filter silently becomes "price <= query" instead of a
// name match; surprising, but it is the page's established behavior.
// Otherwise the match is a case-insensitive substring test on the name, so
// an empty query returns everything.
func Search(items []catalog.Item, query string) []catalog.Item {
	trimmed := strings.TrimSpace(query)

	if limit, err := decimal.NewFromString(trimmed); err == nil {
		var found []catalog.Item
		for _, item := range items {
			if item.Price.LessThanOrEqual(limit) {
				found = append(found, item)
			}
		}
		return found
	}

	needle := strings.ToLower(trimmed)
	var found []catalog.Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			found = append(found, item)
		}
	}
	return found
}

// Engine renders item lists, holding a debounce flag so at most one render
// is in flight at a time.
type Engine struct {
	catalog *catalog.Catalog
	settle  time.Duration

	mu   sync.Mutex
	busy bool
}

// NewEngine creates an Engine. settle is how long the debounce stays held
// after a render completes, bounding how fast filters can be re-applied.
func NewEngine(c *catalog.Catalog, settle time.Duration) *Engine {
	return &Engine{catalog: c, settle: settle}
}

// Render builds the view for the given items. In aggregate mode items are
// grouped into sections by category in first-seen order; scoped mode emits
// one headerless section. Returns ErrRenderInFlight while the previous
// render has not settled.
func (e *Engine) Render(items []catalog.Item, aggregate, skipTransition bool) (View, error) {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return View{}, ErrRenderInFlight
	}
	e.busy = true
	e.mu.Unlock()

	view := e.build(items, aggregate, skipTransition)

	time.AfterFunc(e.settle, func() {
		e.mu.Lock()
		e.busy = false
		e.mu.Unlock()
	})

	return view, nil
}

func (e *Engine) build(items []catalog.Item, aggregate, skipTransition bool) View {
	view := View{
		Aggregate:      aggregate,
		SkipTransition: skipTransition,
	}

	if aggregate {
		view.Current = catalog.AllKey
	} else if len(items) > 0 {
		view.Current = items[0].Category
	}

	if len(items) == 0 {
		view.Placeholder = NoItemsMessage
		return view
	}

	if !aggregate {
		section := Section{Rows: make([]Row, 0, len(items))}
		for _, item := range items {
			section.Rows = append(section.Rows, e.row(item, false))
		}
		view.Sections = []Section{section}
		return view
	}

	// One section per first-seen category, in item order.
	index := make(map[string]int)
	for _, item := range items {
		i, seen := index[item.Category]
		if !seen {
			i = len(view.Sections)
			index[item.Category] = i
			view.Sections = append(view.Sections, Section{
				Category: item.Category,
				Icon:     e.catalog.Icon(item.Category),
			})
		}
		view.Sections[i].Rows = append(view.Sections[i].Rows, e.row(item, true))
	}
	return view
}

func (e *Engine) row(item catalog.Item, aggregate bool) Row {
	row := Row{
		ItemID:      item.ID,
		Name:        item.Name,
		Price:       money.FormatUSD(item.Price),
		Description: item.Description,
		Image:       item.Image,
		Kind:        item.Kind,
	}
	if row.Description == "" {
		row.Description = "No description available."
	}
	if aggregate {
		row.Icon = e.catalog.Icon(item.Category)
	}
	return row
}
