package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Product struct {
	Title string  `json:"title" yaml:"title"`
	Price float64 `json:"price" yaml:"price"`
	Image string  `json:"image" yaml:"image"`
}

var (
	ErrEmptyTitle     = errors.New("empty product title")
	ErrDuplicateTitle = errors.New("duplicate product title")
	ErrNegativePrice  = errors.New("negative product price")
)

// Source supplies the ordered product list. It is read once at startup.
type Source interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
}

// Catalog is the loaded, read-only product list with a title index.
type Catalog struct {
	items   []Product
	byTitle map[string]int
}

func New(items []Product) (*Catalog, error) {
	c := &Catalog{
		items:   make([]Product, 0, len(items)),
		byTitle: make(map[string]int, len(items)),
	}

	for i, p := range items {
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("product #%d: %w", i, ErrEmptyTitle)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q: %w", p.Title, ErrNegativePrice)
		}
		if _, dup := c.byTitle[p.Title]; dup {
			return nil, fmt.Errorf("product %q: %w", p.Title, ErrDuplicateTitle)
		}
		c.byTitle[p.Title] = len(c.items)
		c.items = append(c.items, p)
	}

	return c, nil
}

func Load(ctx context.Context, src Source) (*Catalog, error) {
	items, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return New(items)
}

// Items returns a copy of the products in catalog order.
func (c *Catalog) Items() []Product {
	out := make([]Product, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int { return len(c.items) }

func (c *Catalog) Lookup(title string) (Product, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return Product{}, false
	}
	return c.items[i], true
}

// Filter applies Filter to the catalog items.
func (c *Catalog) Filter(search string, r PriceRange) []Product {
	return Filter(c.items, search, r)
}
