package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawListing é o anúncio bruto extraído do scraper, com os textos
// exatamente como vieram do site.
type RawListing struct {
	MarketID         string    `json:"market_id"`
	Title            string    `json:"title"`
	PriceText        string    `json:"price_text"`
	AvailabilityText string    `json:"availability_text"`
	QuantityText     string    `json:"quantity_text,omitempty"` // dica estruturada do site, ex: "500g"
	URL              string    `json:"url"`
	ImageURL         string    `json:"image_url,omitempty"`
	SearchQuery      string    `json:"search_query"`
	CEP              string    `json:"cep,omitempty"`
	CollectedAt      time.Time `json:"collected_at"`
}

// QuantityInfo é a quantidade extraída do título e convertida para a
// unidade base da sua dimensão (kg, L ou un).
type QuantityInfo struct {
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	BaseValue  float64 `json:"base_value"`
	BaseUnit   string  `json:"base_unit"`
	Multiplier int     `json:"multiplier"`
	RawText    string  `json:"raw_text"`
}

// TotalBaseQuantity retorna a quantidade total na unidade base,
// considerando o multiplicador de pack.
func (q QuantityInfo) TotalBaseQuantity() float64 {
	return q.BaseValue * float64(q.Multiplier)
}

// ParsedPrice é o resultado do parsing do texto de preço/disponibilidade.
type ParsedPrice struct {
	Amount       decimal.Decimal `json:"amount"`
	Availability Availability    `json:"availability"`
}

// NormalizedProduct combina o anúncio bruto com quantidade e preço
// normalizados. Criado uma única vez pelo Normalizer; nunca mutado.
type NormalizedProduct struct {
	ID           uuid.UUID           `json:"id"`
	MarketID     string              `json:"market_id"`
	Title        string              `json:"title"`
	Price        decimal.Decimal     `json:"price"`
	Quantity     *QuantityInfo       `json:"quantity,omitempty"`
	Status       NormalizationStatus `json:"normalization_status"`
	Availability Availability        `json:"availability"`
	URL          string              `json:"url"`
	ImageURL     string              `json:"image_url,omitempty"`
	SearchQuery  string              `json:"search_query"`
	CEP          string              `json:"cep,omitempty"`
	CollectedAt  time.Time           `json:"collected_at"`
}
