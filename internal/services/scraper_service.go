package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"wishlyBack/internal/models"
	"wishlyBack/internal/money"
)

// PageMeta is what the scraper manages to pull out of a product page.
// Any field may be empty or nil.
type PageMeta struct {
	Title      string `json:"title,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	PriceCents *int64 `json:"price_cents,omitempty"`
}

const (
	scraperUserAgent = "Mozilla/5.0 (compatible; WishlistBot/1.0)"
	maxScrapeBody    = 2 << 20
)

var priceRe = regexp.MustCompile(`(\d[\d\s\x{00a0}]*(?:[.,]\d{1,2})?)`)

type ScraperService struct {
	Client *http.Client
}

func NewScraperService() *ScraperService {
	return &ScraperService{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchMeta downloads the page and extracts Open Graph title, image and a
// price hint. Scheme must be http or https.
func (s *ScraperService) FetchMeta(ctx context.Context, rawURL string) (PageMeta, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return PageMeta{}, models.ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return PageMeta{}, err
	}
	req.Header.Set("User-Agent", scraperUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.Client.Do(req)
	if err != nil {
		return PageMeta{}, fmt.Errorf("scraper: fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return PageMeta{}, fmt.Errorf("scraper: fetch %s: status %d", u.Host, resp.StatusCode)
	}

	return parseMeta(io.LimitReader(resp.Body, maxScrapeBody)), nil
}

func parseMeta(r io.Reader) PageMeta {
	var meta PageMeta
	var ogPrice, plainTitle string

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			meta.finish(ogPrice, plainTitle)
			return meta
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "meta":
				prop, content := metaAttrs(tok)
				switch prop {
				case "og:title":
					meta.Title = content
				case "og:image":
					meta.ImageURL = content
				case "og:price:amount", "product:price:amount":
					ogPrice = content
				}
			case "title":
				if z.Next() == html.TextToken {
					plainTitle = strings.TrimSpace(string(z.Text()))
				}
			case "body":
				// Nothing useful below the head.
				meta.finish(ogPrice, plainTitle)
				return meta
			}
		}
	}
}

func (m *PageMeta) finish(ogPrice, plainTitle string) {
	if m.Title == "" {
		m.Title = plainTitle
	}
	if ogPrice != "" {
		if match := priceRe.FindString(ogPrice); match != "" {
			if cents, err := money.ToMinorUnits(match); err == nil && cents > 0 {
				m.PriceCents = &cents
			}
		}
	}
}

func metaAttrs(tok html.Token) (prop, content string) {
	for _, a := range tok.Attr {
		switch a.Key {
		case "property", "name":
			if prop == "" {
				prop = a.Val
			}
		case "content":
			content = a.Val
		}
	}
	return prop, content
}
