package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wishlyBack/internal/models"
)

func TestParseMetaOpenGraph(t *testing.T) {
	page := `<!DOCTYPE html><html><head>
		<meta property="og:title" content="Кофемашина DeLonghi" />
		<meta property="og:image" content="https://cdn.example.com/coffee.jpg" />
		<meta property="product:price:amount" content="24 990,50" />
		<title>fallback title</title>
	</head><body><p>ignored</p></body></html>`

	meta := parseMeta(strings.NewReader(page))
	if meta.Title != "Кофемашина DeLonghi" {
		t.Fatalf("title = %q", meta.Title)
	}
	if meta.ImageURL != "https://cdn.example.com/coffee.jpg" {
		t.Fatalf("image = %q", meta.ImageURL)
	}
	if meta.PriceCents == nil || *meta.PriceCents != 2499050 {
		t.Fatalf("price = %v, want 2499050", meta.PriceCents)
	}
}

func TestParseMetaFallsBackToTitleTag(t *testing.T) {
	page := `<html><head><title>Plain product page</title></head><body></body></html>`

	meta := parseMeta(strings.NewReader(page))
	if meta.Title != "Plain product page" {
		t.Fatalf("title = %q", meta.Title)
	}
	if meta.ImageURL != "" || meta.PriceCents != nil {
		t.Fatalf("unexpected extras: %+v", meta)
	}
}

func TestFetchMetaRejectsBadURL(t *testing.T) {
	svc := NewScraperService()
	for _, raw := range []string{"", "ftp://host/file", "not a url", "javascript:alert(1)"} {
		if _, err := svc.FetchMeta(context.Background(), raw); !errors.Is(err, models.ErrInvalidURL) {
			t.Fatalf("%q: want ErrInvalidURL, got %v", raw, err)
		}
	}
}

func TestFetchMetaEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "WishlistBot") {
			t.Errorf("user agent = %q", ua)
		}
		w.Write([]byte(`<html><head><meta property="og:title" content="Lamp"/></head></html>`))
	}))
	defer srv.Close()

	svc := NewScraperService()
	meta, err := svc.FetchMeta(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if meta.Title != "Lamp" {
		t.Fatalf("title = %q", meta.Title)
	}
}
