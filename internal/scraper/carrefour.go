package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"comparaprecos/internal/model"
)

// CarrefourScraper coleta a página de busca renderizada e extrai os
// cards de produto via seletores CSS.
type CarrefourScraper struct {
	BaseURL string
}

func NewCarrefour() *CarrefourScraper {
	return &CarrefourScraper{BaseURL: "https://mercado.carrefour.com.br"}
}

func (s *CarrefourScraper) MarketID() string { return "carrefour" }

var priceTextPattern = regexp.MustCompile(`R\$\s*\d{1,3}(?:\.\d{3})*,\d{2}`)

func (s *CarrefourScraper) Search(ctx context.Context, query, cep string) ([]model.RawListing, error) {
	searchURL := fmt.Sprintf("%s/busca/%s", s.BaseURL, url.PathEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("falha ao criar request para %s: %w", searchURL, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	if cep != "" {
		req.AddCookie(&http.Cookie{Name: "cep", Value: cep})
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar %s: %w", searchURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carrefour status %d para %s", resp.StatusCode, searchURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("falha ao parsear HTML de %s: %w", searchURL, err)
	}

	now := time.Now()
	var listings []model.RawListing

	// O Carrefour usa <a data-testid="search-product-card"> como container.
	doc.Find(`a[data-testid="search-product-card"]`).Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("h2").First().Text())
		if title == "" {
			title = strings.TrimSpace(card.Find("h3").First().Text())
		}
		if title == "" {
			return
		}

		priceText := priceTextPattern.FindString(card.Text())
		if priceText == "" {
			return
		}

		href, _ := card.Attr("href")
		if strings.HasPrefix(href, "/") {
			href = s.BaseURL + href
		}
		imageURL, _ := card.Find("img").First().Attr("src")

		listings = append(listings, model.RawListing{
			MarketID:         s.MarketID(),
			Title:            title,
			PriceText:        priceText,
			AvailabilityText: availabilityText(card),
			URL:              href,
			ImageURL:         imageURL,
			SearchQuery:      query,
			CEP:              cep,
			CollectedAt:      now,
		})
	})

	return listings, nil
}

// availabilityText repassa o texto cru do card que indica disponibilidade;
// o mapeamento para o enum é responsabilidade do pipeline.
func availabilityText(card *goquery.Selection) string {
	text := strings.ToLower(card.Text())
	for _, kw := range []string{"indisponível", "esgotado", "adicionar", "comprar"} {
		if strings.Contains(text, kw) {
			return kw
		}
	}
	return ""
}
