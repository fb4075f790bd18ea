// Package cart holds the shopping cart value and its pure transitions.
//
// A Cart is an ordered list of line-items keyed by product title. Every
// operation returns a new Cart and leaves its receiver untouched, so a Cart
// can be shared freely between a reducer's old and new state.
package cart

import (
	"strconv"

	"MiniShop/internal/catalog"
)

type LineItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price x quantity, rounded to cents once.
func (li LineItem) Subtotal() Amount {
	return AmountOf(li.Price * float64(li.Quantity))
}

// Label renders the line as "price x quantity", e.g. "80 x 2".
func (li LineItem) Label() string {
	return strconv.FormatFloat(li.Price, 'f', -1, 64) + " x " + strconv.Itoa(li.Quantity)
}

type Cart []LineItem

func (c Cart) index(title string) int {
	for i := range c {
		if c[i].Title == title {
			return i
		}
	}
	return -1
}

func (c Cart) Find(title string) (LineItem, bool) {
	if i := c.index(title); i >= 0 {
		return c[i], true
	}
	return LineItem{}, false
}

// Add increments the quantity of the line-item titled p.Title, or appends
// a new line-item with quantity 1.
func (c Cart) Add(p catalog.Product) Cart {
	out := make(Cart, len(c), len(c)+1)
	copy(out, c)

	if i := out.index(p.Title); i >= 0 {
		out[i].Quantity++
		return out
	}
	return append(out, LineItem{Product: p, Quantity: 1})
}

// Remove drops the whole line-item titled title, whatever its quantity.
// Removing an absent title returns an equal cart.
func (c Cart) Remove(title string) Cart {
	out := make(Cart, 0, len(c))
	for _, li := range c {
		if li.Title != title {
			out = append(out, li)
		}
	}
	return out
}

// Total is the sum of price x quantity over all lines, rounded to cents
// after summing.
func (c Cart) Total() Amount {
	var sum float64
	for _, li := range c {
		sum += li.Price * float64(li.Quantity)
	}
	return AmountOf(sum)
}

// Units is the sum of all quantities.
func (c Cart) Units() int {
	n := 0
	for _, li := range c {
		n += li.Quantity
	}
	return n
}
