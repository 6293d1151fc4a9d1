package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"comparaprecos/internal/model"
)

// AtacadaoScraper coleta pela API de catálogo VTEX, que devolve a busca
// em JSON sem precisar renderizar a página.
type AtacadaoScraper struct {
	BaseURL string
}

func NewAtacadao() *AtacadaoScraper {
	return &AtacadaoScraper{BaseURL: "https://www.atacadao.com.br"}
}

func (s *AtacadaoScraper) MarketID() string { return "atacadao" }

type vtexImage struct {
	ImageURL string `json:"imageUrl"`
}

type vtexOffer struct {
	Price       float64 `json:"Price"`
	IsAvailable bool    `json:"IsAvailable"`
}

type vtexSeller struct {
	CommertialOffer vtexOffer `json:"commertialOffer"`
}

type vtexItem struct {
	UnitMultiplier  float64      `json:"unitMultiplier"`
	MeasurementUnit string       `json:"measurementUnit"`
	Images          []vtexImage  `json:"images"`
	Sellers         []vtexSeller `json:"sellers"`
}

type vtexProduct struct {
	ProductName string     `json:"productName"`
	LinkText    string     `json:"linkText"`
	Items       []vtexItem `json:"items"`
}

func (s *AtacadaoScraper) Search(ctx context.Context, query, cep string) ([]model.RawListing, error) {
	searchURL := fmt.Sprintf(
		"%s/api/catalog_system/pub/products/search/%s?_from=0&_to=49",
		s.BaseURL,
		url.PathEscape(query),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("falha ao criar request para %s: %w", searchURL, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar %s: %w", searchURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("VTEX status %d para %s", resp.StatusCode, searchURL)
	}

	var products []vtexProduct
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("falha ao decodificar resposta de %s: %w", searchURL, err)
	}

	now := time.Now()
	var listings []model.RawListing
	for _, p := range products {
		if len(p.Items) == 0 || len(p.Items[0].Sellers) == 0 {
			continue
		}
		item := p.Items[0]
		offer := item.Sellers[0].CommertialOffer

		availability := "indisponível"
		if offer.IsAvailable {
			availability = "disponível"
		}

		imageURL := ""
		if len(item.Images) > 0 {
			imageURL = item.Images[0].ImageURL
		}

		listings = append(listings, model.RawListing{
			MarketID:         s.MarketID(),
			Title:            p.ProductName,
			PriceText:        formatVTEXPrice(offer.Price),
			AvailabilityText: availability,
			QuantityText:     formatVTEXQuantity(item),
			URL:              s.BaseURL + "/" + p.LinkText + "/p",
			ImageURL:         imageURL,
			SearchQuery:      query,
			CEP:              cep,
			CollectedAt:      now,
		})
	}

	return listings, nil
}

// formatVTEXPrice devolve o preço no formato textual do site, que é o
// contrato de entrada do pipeline.
func formatVTEXPrice(price float64) string {
	return "R$ " + strings.Replace(fmt.Sprintf("%.2f", price), ".", ",", 1)
}

// formatVTEXQuantity monta a dica estruturada de quantidade quando o
// catálogo informa unidade de medida diferente de "un".
func formatVTEXQuantity(item vtexItem) string {
	unit := strings.ToLower(item.MeasurementUnit)
	if unit == "" || unit == "un" || item.UnitMultiplier <= 0 {
		return ""
	}
	return strings.Replace(fmt.Sprintf("%g", item.UnitMultiplier), ".", ",", 1) + unit
}
