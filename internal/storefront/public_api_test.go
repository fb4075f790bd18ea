package storefront_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniShop/internal/catalog"
	"MiniShop/internal/shop"
	"MiniShop/internal/storefront"
	"MiniShop/pkg/kit"
)

var testProducts = []catalog.Product{
	{Title: "Shoe", Price: 80, Image: "shoe.jpg"},
	{Title: "Hat", Price: 20, Image: "hat.jpg"},
	{Title: "Rain Coat", Price: 150, Image: "coat.jpg"},
	{Title: "Snowshoe", Price: 95, Image: "snowshoe.jpg"},
}

type testEnv struct {
	ts    *httptest.Server
	ctl   *shop.Controller
	clock *fakeClock
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestEnv(t *testing.T, httpDeps storefront.HTTPDeps) *testEnv {
	t.Helper()
	return newTestEnvWith(t, testProducts, httpDeps)
}

func newTestEnvWith(t *testing.T, products []catalog.Product, httpDeps storefront.HTTPDeps) *testEnv {
	t.Helper()

	cat, err := catalog.New(products)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	env := &testEnv{clock: &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}}

	seq := 0
	env.ctl = shop.NewController(cat,
		shop.WithClock(env.clock.Now),
		shop.WithIDs(func() string { seq++; return "n_" + strconv.Itoa(seq) }),
	)

	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}
	if httpDeps.Service == "" {
		httpDeps.Service = "storefront"
	}

	h := storefront.NewHandler(storefront.Deps{
		Catalog: cat,
		Source:  catalog.NewMemStore(products),
		Shop:    env.ctl,
	}, httpDeps)

	env.ts = httptest.NewServer(h)
	t.Cleanup(env.ts.Close)
	return env
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(raw))
	}
	return v
}

type cartBody struct {
	Items []struct {
		Title    string  `json:"title"`
		Price    float64 `json:"price"`
		Image    string  `json:"image"`
		Quantity int     `json:"quantity"`
	} `json:"items"`
	Units  int          `json:"units"`
	Total  string       `json:"total"`
	Notice *shop.Notice `json:"notice"`
}

func TestStorefront_PublicAPI_HappyPath(t *testing.T) {
	env := newTestEnv(t, storefront.HTTPDeps{})
	base := env.ts.URL

	{
		resp, raw := doJSON(t, http.MethodGet, base+"/products?price=60-100", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list status=%d body=%s", resp.StatusCode, string(raw))
		}
		got := decode[struct {
			Count    int               `json:"count"`
			Products []catalog.Product `json:"products"`
		}](t, raw)
		if got.Count != 2 || got.Products[0].Title != "Shoe" || got.Products[1].Title != "Snowshoe" {
			t.Fatalf("filtered=%+v", got)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"title": "Shoe"}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add status=%d body=%s", resp.StatusCode, string(raw))
		}
		got := decode[cartBody](t, raw)
		if got.Notice == nil || got.Notice.Message != "Shoe added to cart" || got.Notice.ID != "n_1" {
			t.Fatalf("notice=%+v", got.Notice)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"title": "Shoe"}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add status=%d body=%s", resp.StatusCode, string(raw))
		}
		got := decode[cartBody](t, raw)
		if len(got.Items) != 1 || got.Items[0].Quantity != 2 || got.Items[0].Price != 80 {
			t.Fatalf("items=%+v", got.Items)
		}
		if got.Total != "160.00" || got.Units != 2 {
			t.Fatalf("total=%s units=%d", got.Total, got.Units)
		}
		if got.Notice == nil || got.Notice.ID != "n_2" {
			t.Fatalf("repeated add must produce a fresh notice: %+v", got.Notice)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodDelete, base+"/cart/items/"+url.PathEscape("Rain Coat"), nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("remove absent status=%d", resp.StatusCode)
		}
		got := decode[cartBody](t, raw)
		if len(got.Items) != 1 || got.Total != "160.00" {
			t.Fatalf("remove absent changed cart: %+v", got)
		}
		if got.Notice == nil || got.Notice.Message != "Rain Coat removed from cart" {
			t.Fatalf("notice=%+v", got.Notice)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodDelete, base+"/cart/items/Shoe", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("remove status=%d", resp.StatusCode)
		}
		got := decode[cartBody](t, raw)
		if len(got.Items) != 0 || got.Total != "0.00" {
			t.Fatalf("cart after remove=%+v", got)
		}
		if got.Items == nil {
			t.Fatalf("empty cart must render as []")
		}
	}
}

func TestStorefront_ShopFilterAndSnapshot(t *testing.T) {
	env := newTestEnv(t, storefront.HTTPDeps{})
	base := env.ts.URL

	resp, raw := doJSON(t, http.MethodPut, base+"/shop/filter", map[string]any{
		"search": "SHOE",
		"price":  "60-100",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("filter status=%d body=%s", resp.StatusCode, string(raw))
	}

	snap := decode[shop.Snapshot](t, raw)
	if snap.Filter.Search != "SHOE" || snap.Preset != "60-100" {
		t.Fatalf("filter=%+v preset=%q", snap.Filter, snap.Preset)
	}
	if len(snap.Products) != 2 {
		t.Fatalf("products=%+v", snap.Products)
	}

	resp, raw = doJSON(t, http.MethodPut, base+"/shop/filter", map[string]any{"min": 90, "max": 200}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("filter status=%d body=%s", resp.StatusCode, string(raw))
	}
	snap = decode[shop.Snapshot](t, raw)
	if snap.Filter.Search != "SHOE" {
		t.Fatalf("search must be kept when omitted, got %q", snap.Filter.Search)
	}
	if len(snap.Products) != 1 || snap.Products[0].Title != "Snowshoe" || snap.Preset != "" {
		t.Fatalf("snapshot=%+v", snap)
	}

	for _, body := range []map[string]any{
		{"price": "cheap"},
		{"min": 300, "max": 100},
		{"price": "60-100", "min": 10},
		{"search": "x", "unknown": true},
	} {
		resp, raw := doJSON(t, http.MethodPut, base+"/shop/filter", body, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body=%v status=%d raw=%s", body, resp.StatusCode, string(raw))
		}
	}

	_, _ = doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"title": "Hat"}, nil)

	resp, raw = doJSON(t, http.MethodDelete, base+"/shop", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset status=%d", resp.StatusCode)
	}
	snap = decode[shop.Snapshot](t, raw)
	if snap.Filter.Search != "" || snap.Preset != "any" || len(snap.Cart) != 0 || snap.Notice != nil {
		t.Fatalf("reset snapshot=%+v", snap)
	}
}

func TestStorefront_NoticeExpires(t *testing.T) {
	env := newTestEnv(t, storefront.HTTPDeps{})
	base := env.ts.URL

	_, _ = doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"title": "Hat"}, nil)

	_, raw := doJSON(t, http.MethodGet, base+"/cart", nil, nil)
	if got := decode[cartBody](t, raw); got.Notice == nil {
		t.Fatalf("notice missing before expiry")
	}

	env.clock.Advance(shop.DefaultNoticeTTL)

	_, raw = doJSON(t, http.MethodGet, base+"/cart", nil, nil)
	got := decode[cartBody](t, raw)
	if got.Notice != nil {
		t.Fatalf("notice still active after ttl: %+v", got.Notice)
	}
	if got.Total != "20.00" {
		t.Fatalf("expiry touched cart: total=%s", got.Total)
	}
}

func TestStorefront_Errors(t *testing.T) {
	env := newTestEnv(t, storefront.HTTPDeps{})
	base := env.ts.URL

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
		errMsg string
	}{
		{"unknown product", http.MethodPost, "/cart/items", map[string]any{"title": "Scarf"}, http.StatusNotFound, "unknown product"},
		{"missing title", http.MethodPost, "/cart/items", map[string]any{"title": ""}, http.StatusBadRequest, "title required"},
		{"bad json", http.MethodPost, "/cart/items", map[string]any{"title": "Hat", "qty": 3}, http.StatusBadRequest, "bad json"},
		{"bad preset", http.MethodGet, "/products?price=cheap", nil, http.StatusBadRequest, "bad price range"},
		{"inverted range", http.MethodGet, "/products?min=200&max=100", nil, http.StatusBadRequest, "bad price range"},
		{"preset with bounds", http.MethodGet, "/products?price=60-100&max=80", nil, http.StatusBadRequest, "bad price range"},
		{"product not found", http.MethodGet, "/products/Scarf", nil, http.StatusNotFound, "not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := doJSON(t, tc.method, base+tc.path, tc.body, nil)
			if resp.StatusCode != tc.want {
				t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, tc.want, string(raw))
			}
			er := decode[kit.ErrorResponse](t, raw)
			if er.Error != tc.errMsg {
				t.Fatalf("error=%q want=%q", er.Error, tc.errMsg)
			}
			if er.RequestID == "" {
				t.Fatalf("missing request_id")
			}
		})
	}
}

func TestStorefront_CatalogRoutes(t *testing.T) {
	env := newTestEnv(t, storefront.HTTPDeps{})
	base := env.ts.URL

	resp, raw := doJSON(t, http.MethodGet, base+"/products/"+url.PathEscape("Rain Coat"), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status=%d body=%s", resp.StatusCode, string(raw))
	}
	if p := decode[catalog.Product](t, raw); p.Price != 150 {
		t.Fatalf("product=%+v", p)
	}

	resp, raw = doJSON(t, http.MethodGet, base+"/price-ranges", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("presets status=%d", resp.StatusCode)
	}
	if ps := decode[[]catalog.Preset](t, raw); len(ps) != 3 || ps[2].ID != "any" {
		t.Fatalf("presets=%+v", ps)
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, _ := doJSON(t, http.MethodGet, base+path, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status=%d", path, resp.StatusCode)
		}
	}
}

func TestStorefront_ReservedCharsInTitle(t *testing.T) {
	products := []catalog.Product{
		{Title: "Shoes, red", Price: 80, Image: "red.jpg"},
		{Title: "A/B", Price: 20, Image: "ab.jpg"},
		{Title: "Plain Shoe", Price: 70, Image: "plain.jpg"},
	}
	env := newTestEnvWith(t, products, storefront.HTTPDeps{})
	base := env.ts.URL

	for _, p := range products {
		t.Run(p.Title, func(t *testing.T) {
			path := url.PathEscape(p.Title)

			resp, raw := doJSON(t, http.MethodGet, base+"/products/"+path, nil, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("get status=%d body=%s", resp.StatusCode, string(raw))
			}
			if got := decode[catalog.Product](t, raw); got.Title != p.Title {
				t.Fatalf("product=%+v", got)
			}

			resp, raw = doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"title": p.Title}, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("add status=%d body=%s", resp.StatusCode, string(raw))
			}

			resp, raw = doJSON(t, http.MethodDelete, base+"/cart/items/"+path, nil, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("remove status=%d body=%s", resp.StatusCode, string(raw))
			}
			got := decode[cartBody](t, raw)
			if len(got.Items) != 0 || got.Total != "0.00" {
				t.Fatalf("cart after remove=%+v", got)
			}
			if got.Notice == nil || got.Notice.Message != p.Title+" removed from cart" {
				t.Fatalf("notice=%+v", got.Notice)
			}
		})
	}
}

func TestStorefront_CartRateLimit(t *testing.T) {
	env := newTestEnv(t, storefront.HTTPDeps{
		CartLimiter: kit.NewIPRateLimiter(2, time.Minute),
	})
	base := env.ts.URL

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"title": "Hat"}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add #%d status=%d", i, resp.StatusCode)
		}
	}

	resp, _ := doJSON(t, http.MethodPost, base+"/cart/items", map[string]any{"title": "Hat"}, nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status=%d want 429", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, base+"/cart", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reads must not be limited, status=%d", resp.StatusCode)
	}
}

func TestStorefront_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	env := newTestEnv(t, storefront.HTTPDeps{
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   "metrics-token",
	})
	base := env.ts.URL

	_, _ = doJSON(t, http.MethodGet, base+"/products", nil, nil)

	resp, _ := doJSON(t, http.MethodGet, base+"/metrics", nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unauthenticated metrics status=%d", resp.StatusCode)
	}

	resp, raw := doJSON(t, http.MethodGet, base+"/metrics", nil, map[string]string{
		"Authorization": "Bearer metrics-token",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status=%d", resp.StatusCode)
	}
	if !strings.Contains(string(raw), `http_requests_total{method="GET",path="/products",service="storefront",status="200"} 1`) {
		t.Fatalf("missing request counter in:\n%s", string(raw))
	}
}
