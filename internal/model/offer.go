package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceOffer é a oferta final com preço normalizado por unidade base.
// Derivada deterministicamente de um NormalizedProduct; imutável.
type PriceOffer struct {
	ID              uuid.UUID           `json:"id"`
	MarketID        string              `json:"market_id"`
	Title           string              `json:"title"`
	URL             string              `json:"url"`
	ImageURL        string              `json:"image_url,omitempty"`
	Price           decimal.Decimal     `json:"price"`
	QuantityValue   float64             `json:"quantity_value,omitempty"`
	NormalizedPrice *decimal.Decimal    `json:"normalized_price,omitempty"`
	NormalizedUnit  string              `json:"normalized_unit,omitempty"`
	PriceDisplay    string              `json:"price_display"`
	IsComparable    bool                `json:"is_comparable"`
	Availability    Availability        `json:"availability"`
	Status          NormalizationStatus `json:"normalization_status"`
	SearchQuery     string              `json:"search_query"`
	CEP             string              `json:"cep,omitempty"`
	CollectedAt     time.Time           `json:"collected_at"`
}

// RankedOffer é uma oferta posicionada dentro de um grupo de unidade,
// com a economia calculada em relação à melhor oferta do grupo.
type RankedOffer struct {
	PriceOffer
	SavingsAbsolute decimal.Decimal `json:"savings_absolute"`
	SavingsPercent  decimal.Decimal `json:"savings_percent"`
}

// UnitGroup agrupa ofertas que compartilham a mesma unidade base.
// Ofertas de unidades diferentes nunca são comparadas entre si.
type UnitGroup struct {
	Unit   string        `json:"unit"`
	Offers []RankedOffer `json:"offers"`
	Best   *RankedOffer  `json:"best,omitempty"`
}

// ComparisonResult é o agregado de uma busca: ofertas agrupadas por
// unidade, melhor oferta global e totais. Reconstruído a cada consulta.
type ComparisonResult struct {
	Query            string       `json:"query"`
	CEP              string       `json:"cep,omitempty"`
	Groups           []UnitGroup  `json:"groups"`
	Best             *RankedOffer `json:"best_offer,omitempty"`
	TotalOffers      int          `json:"total_offers"`
	ComparableOffers int          `json:"comparable_offers"`
}

// CollectionMetadata registra uma sessão de coleta (uma busca em um ou
// mais mercados) para persistência e auditoria.
type CollectionMetadata struct {
	ID               uuid.UUID         `json:"id"`
	SearchQuery      string            `json:"search_query"`
	CEP              string            `json:"cep,omitempty"`
	Markets          []string          `json:"markets"`
	StartedAt        time.Time         `json:"started_at"`
	FinishedAt       time.Time         `json:"finished_at"`
	ResultsPerMarket map[string]int    `json:"results_per_market"`
	ErrorsPerMarket  map[string]string `json:"errors_per_market"`
	TotalListings    int               `json:"total_listings"`
	TotalComparable  int               `json:"total_comparable"`
}
