package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"MiniShop/pkg/kit"
)

type Server struct {
	Catalog *Catalog
}

// Register mounts the read-only catalog routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/products", s.list)
	r.Get("/products/{title}", s.get)
	r.Get("/price-ranges", s.priceRanges)
}

type listResponse struct {
	Search   string     `json:"search"`
	Range    PriceRange `json:"range"`
	Count    int        `json:"count"`
	Products []Product  `json:"products"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pr, err := ParseRange(q.Get("price"), q.Get("min"), q.Get("max"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad price range", map[string]any{
			"price": q.Get("price"),
			"min":   q.Get("min"),
			"max":   q.Get("max"),
		})
		return
	}

	search := q.Get("search")
	products := s.Catalog.Filter(search, pr)
	kit.WriteJSON(w, http.StatusOK, listResponse{
		Search:   search,
		Range:    pr,
		Count:    len(products),
		Products: products,
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	title, err := kit.URLParam(r, "title")
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad title", nil)
		return
	}

	p, ok := s.Catalog.Lookup(title)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"title": title})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) priceRanges(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, Presets())
}
