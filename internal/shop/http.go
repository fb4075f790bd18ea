package shop

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniShop/internal/cart"
	"MiniShop/internal/catalog"
	"MiniShop/pkg/kit"
)

type Server struct {
	Ctl     *Controller
	Log     *zap.Logger
	Limiter *kit.IPRateLimiter
}

// Register mounts the shop state and cart routes on r. Cart mutations go
// through the rate limiter when one is set.
func (s *Server) Register(r chi.Router) {
	r.Get("/shop", s.snapshot)
	r.Put("/shop/filter", s.setFilter)
	r.Delete("/shop", s.reset)

	r.Get("/cart", s.getCart)
	r.Group(func(mr chi.Router) {
		if s.Limiter != nil {
			mr.Use(s.Limiter.Middleware)
		}
		mr.Post("/cart/items", s.addItem)
		mr.Delete("/cart/items/{title}", s.removeItem)
		mr.Delete("/cart", s.clearCart)
	})
}

type filterReq struct {
	Search *string  `json:"search"`
	Price  *string  `json:"price"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
}

type addReq struct {
	Title string `json:"title"`
}

type cartResponse struct {
	Items  cart.Cart `json:"items"`
	Units  int       `json:"units"`
	Total  string    `json:"total"`
	Notice *Notice   `json:"notice,omitempty"`
}

func (s *Server) snapshot(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Ctl.Snapshot())
}

func (s *Server) setFilter(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	var actions []Action
	if req.Search != nil {
		actions = append(actions, SetSearch{Text: *req.Search})
	}

	pr, set, err := req.priceRange()
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad price range", nil)
		return
	}
	if set {
		actions = append(actions, SetPriceRange{Range: pr})
	}

	kit.WriteJSON(w, http.StatusOK, s.Ctl.Dispatch(actions...))
}

// priceRange resolves the requested range. set is false when the request
// leaves the range alone. A preset and explicit bounds are exclusive.
func (req filterReq) priceRange() (r catalog.PriceRange, set bool, err error) {
	if req.Price != nil && (req.Min != nil || req.Max != nil) {
		return catalog.PriceRange{}, false, catalog.ErrBadPriceRange
	}
	if req.Price != nil {
		p, ok := catalog.PresetByID(*req.Price)
		if !ok {
			return catalog.PriceRange{}, false, catalog.ErrBadPriceRange
		}
		return p.Range, true, nil
	}
	if req.Min == nil && req.Max == nil {
		return catalog.PriceRange{}, false, nil
	}

	r = catalog.AnyPrice
	if req.Min != nil {
		r.Min = *req.Min
	}
	if req.Max != nil {
		r.Max = *req.Max
	}
	if !r.Valid() {
		return catalog.PriceRange{}, false, catalog.ErrBadPriceRange
	}
	return r, true, nil
}

func (s *Server) getCart(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, cartOf(s.Ctl.Snapshot()))
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.Title == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "title required", nil)
		return
	}

	p, ok := s.Ctl.Catalog().Lookup(req.Title)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"title": req.Title})
		return
	}

	kit.WriteJSON(w, http.StatusOK, cartOf(s.Ctl.Dispatch(AddToCart{Product: p})))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	title, err := kit.URLParam(r, "title")
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad title", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartOf(s.Ctl.Dispatch(RemoveFromCart{Title: title})))
}

func (s *Server) clearCart(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, cartOf(s.Ctl.Dispatch(ClearCart{})))
}

func (s *Server) reset(w http.ResponseWriter, _ *http.Request) {
	if s.Log != nil {
		s.Log.Info("shop reset requested")
	}
	kit.WriteJSON(w, http.StatusOK, s.Ctl.Reset())
}

func cartOf(snap Snapshot) cartResponse {
	return cartResponse{
		Items:  snap.Cart,
		Units:  snap.Units,
		Total:  snap.Total,
		Notice: snap.Notice,
	}
}
