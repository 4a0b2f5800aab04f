package nominatim

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Chennai" {
			t.Errorf("expected q=Chennai, got %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("expected format=json, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("expected limit=1, got %q", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		fmt.Fprint(w, `[{"lat":"13.0837","lon":"80.2707","display_name":"Chennai, Tamil Nadu, India"}]`)
	}))
	defer srv.Close()

	c := New(BaseUrlOption(srv.URL))
	coords, err := c.Search(context.Background(), "Chennai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords == nil {
		t.Fatal("expected coordinates")
	}
	if coords.Latitude != 13.0837 || coords.Longitude != 80.2707 {
		t.Fatalf("unexpected coordinates: %+v", coords)
	}
}

func TestSearchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := New(BaseUrlOption(srv.URL))
	coords, err := c.Search(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("expected not-found without error, got: %v", err)
	}
	if coords != nil {
		t.Fatalf("expected nil coordinates, got %+v", coords)
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(BaseUrlOption(srv.URL))
	if _, err := c.Search(context.Background(), "Chennai"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestSearchMalformedCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"lat":"north","lon":"80.2707"}]`)
	}))
	defer srv.Close()

	c := New(BaseUrlOption(srv.URL))
	if _, err := c.Search(context.Background(), "Chennai"); err == nil {
		t.Fatal("expected error for unparseable latitude")
	}
}

func TestNewPanicsWithoutBaseUrl(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for missing baseUrl")
		}
	}()
	New()
}
