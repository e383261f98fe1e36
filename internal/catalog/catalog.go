// Package catalog loads and indexes the menu item feed.
//
// The feed is a JSONC array whose first record is a sentinel carrying the
// category icon map; every following record is an orderable item. The
// catalog is loaded once per process and never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/gameday-grill/web/internal/jsonc"
	"github.com/shopspring/decimal"
)

// Kind classifies what the customization flow asks for. It is decided once
// at load time from the feed's capability flags.
type Kind string

const (
	KindPlain    Kind = "PLAIN"
	KindDrink    Kind = "DRINK"
	KindMealable Kind = "MEALABLE"
)

// SidesCategory is the feed category the meal flow draws side dishes from.
const SidesCategory = "Sides"

// AllKey is the reserved icon-map key for the aggregate view.
const AllKey = "All"

var (
	ErrEmptyFeed     = errors.New("menu feed is empty")
	ErrMissingIcons  = errors.New("menu feed missing icons sentinel record")
	ErrNegativePrice = errors.New("negative price")
)

// Item is a single orderable menu entry. Immutable once loaded.
type Item struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Category    string
	Description string
	Image       string
	Kind        Kind
}

// Catalog is the full parsed menu: items in feed order, the category icon
// map, and category names in first-seen order.
type Catalog struct {
	Icons      map[string]string
	Items      []Item
	Categories []string

	byID       map[string]Item
	byCategory map[string][]Item
}

// feedRecord is the wire shape of a single feed entry. The sentinel record
// only populates Icons; item records populate everything else.
type feedRecord struct {
	Icons       map[string]string `json:"icons"`
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Price       decimal.Decimal   `json:"price"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	CanBeMeal   bool              `json:"canBeMeal"`
	IsDrink     bool              `json:"isDrink"`
}

// Parse decodes a raw feed document into a Catalog.
func Parse(data []byte) (*Catalog, error) {
	var records []feedRecord
	if err := jsonc.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse menu feed: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFeed
	}
	if records[0].Icons == nil {
		return nil, ErrMissingIcons
	}

	c := &Catalog{
		Icons:      records[0].Icons,
		byID:       make(map[string]Item),
		byCategory: make(map[string][]Item),
	}

	for _, rec := range records[1:] {
		if rec.Price.IsNegative() {
			return nil, fmt.Errorf("item %q: %w", rec.ID, ErrNegativePrice)
		}
		item := Item{
			ID:          rec.ID,
			Name:        rec.Name,
			Price:       rec.Price,
			Category:    rec.Category,
			Description: rec.Description,
			Image:       rec.Image,
			Kind:        kindOf(rec),
		}
		c.Items = append(c.Items, item)
		c.byID[item.ID] = item
		if _, seen := c.byCategory[item.Category]; !seen {
			c.Categories = append(c.Categories, item.Category)
		}
		c.byCategory[item.Category] = append(c.byCategory[item.Category], item)
	}

	return c, nil
}

// LoadFile reads and parses the feed at path. Any failure is terminal for
// the caller: the page cannot function without a catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu feed: %w", err)
	}
	return Parse(data)
}

func kindOf(rec feedRecord) Kind {
	switch {
	case rec.IsDrink:
		return KindDrink
	case rec.CanBeMeal:
		return KindMealable
	default:
		return KindPlain
	}
}

// ItemByID looks up an item by its feed id.
func (c *Catalog) ItemByID(id string) (Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// ByCategory returns the items of one category in feed order.
func (c *Catalog) ByCategory(name string) []Item {
	return c.byCategory[name]
}

// Sides returns the items of the Sides category, used as meal side options.
func (c *Catalog) Sides() []Item {
	return c.byCategory[SidesCategory]
}

// Icon returns the configured icon token for a category, or "" if the feed
// carries none.
func (c *Catalog) Icon(category string) string {
	return c.Icons[category]
}
