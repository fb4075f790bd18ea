package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrRemoteBadStatus   = errors.New("remote catalog bad status")
	ErrRemoteUnavailable = errors.New("remote catalog unavailable")
)

// allPrices lifts the upstream's default price range so every product is
// returned.
var allPrices = url.Values{
	"max": {strconv.FormatFloat(math.MaxFloat64, 'g', -1, 64)},
}.Encode()

// HTTPStore reads the catalog from another storefront's GET /products.
type HTTPStore struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPStore(baseURL string) *HTTPStore {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &HTTPStore{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (s *HTTPStore) Ping(ctx context.Context) error {
	resp, err := s.get(ctx, "/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *HTTPStore) List(ctx context.Context) ([]Product, error) {
	resp, err := s.get(ctx, "/products?"+allPrices)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode remote catalog: %w", err)
	}
	if body.Products == nil {
		return []Product{}, nil
	}
	return body.Products, nil
}

func (s *HTTPStore) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: status=%d", ErrRemoteBadStatus, resp.StatusCode)
	}
	return resp, nil
}
