package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

func TestHTTPStore_ReadsUpstreamCatalog(t *testing.T) {
	upstream, err := New(sample)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	(&Server{Catalog: upstream}).Register(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	s := NewHTTPStore(ts.URL + "/")
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	c, err := Load(context.Background(), s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(sample, c.Items()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestHTTPStore_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	if _, err := NewHTTPStore(ts.URL).List(context.Background()); !errors.Is(err, ErrRemoteBadStatus) {
		t.Fatalf("err=%v want ErrRemoteBadStatus", err)
	}

	ts.Close()
	if err := NewHTTPStore(ts.URL).Ping(context.Background()); !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("err=%v want ErrRemoteUnavailable", err)
	}
}
