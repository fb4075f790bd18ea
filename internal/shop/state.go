// Package shop owns the storefront state: the filter inputs and the cart.
//
// State changes only through Reduce, a pure function of (state, action).
// Front ends hold one State each: the terminal UI keeps it in its model,
// the HTTP service behind a Controller.
package shop

import (
	"MiniShop/internal/cart"
	"MiniShop/internal/catalog"
)

type Filter struct {
	Search string             `json:"search"`
	Range  catalog.PriceRange `json:"range"`
}

type State struct {
	Filter Filter    `json:"filter"`
	Cart   cart.Cart `json:"cart"`
}

func NewState() State {
	return State{
		Filter: Filter{Range: catalog.AnyPrice},
		Cart:   cart.Cart{},
	}
}

// Action is one user input. The set is closed: SetSearch, SetPriceRange,
// AddToCart, RemoveFromCart and ClearCart.
type Action interface {
	actionName() string
}

type SetSearch struct{ Text string }

type SetPriceRange struct{ Range catalog.PriceRange }

type AddToCart struct{ Product catalog.Product }

type RemoveFromCart struct{ Title string }

type ClearCart struct{}

func (SetSearch) actionName() string      { return "set_search" }
func (SetPriceRange) actionName() string  { return "set_price_range" }
func (AddToCart) actionName() string      { return "add_to_cart" }
func (RemoveFromCart) actionName() string { return "remove_from_cart" }
func (ClearCart) actionName() string      { return "clear_cart" }

// ActionName is the stable label of a, used in logs and metrics.
func ActionName(a Action) string { return a.actionName() }

// Reduce applies a to s and returns the next state plus the notice the
// action produced, if any. s is never modified.
func Reduce(s State, a Action) (State, Notice) {
	switch a := a.(type) {
	case SetSearch:
		s.Filter.Search = a.Text
		return s, Notice{}
	case SetPriceRange:
		s.Filter.Range = a.Range
		return s, Notice{}
	case AddToCart:
		s.Cart = s.Cart.Add(a.Product)
		return s, success(a.Product.Title + " added to cart")
	case RemoveFromCart:
		s.Cart = s.Cart.Remove(a.Title)
		return s, success(a.Title + " removed from cart")
	case ClearCart:
		if len(s.Cart) == 0 {
			return s, Notice{}
		}
		s.Cart = cart.Cart{}
		return s, success("cart cleared")
	default:
		return s, Notice{}
	}
}

// View is what a front end renders: the filtered catalog and the cart.
type View struct {
	Filter   Filter            `json:"filter"`
	Preset   string            `json:"preset,omitempty"`
	Products []catalog.Product `json:"products"`
	Cart     cart.Cart         `json:"cart"`
	Units    int               `json:"units"`
	Total    string            `json:"total"`
}

func (s State) View(c *catalog.Catalog) View {
	items := s.Cart
	if items == nil {
		items = cart.Cart{}
	}

	v := View{
		Filter:   s.Filter,
		Products: c.Filter(s.Filter.Search, s.Filter.Range),
		Cart:     items,
		Units:    items.Units(),
		Total:    items.Total().String(),
	}
	if p, ok := catalog.PresetFor(s.Filter.Range); ok {
		v.Preset = p.ID
	}
	return v
}
