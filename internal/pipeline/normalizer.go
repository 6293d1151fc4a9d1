package pipeline

import (
	"time"

	"github.com/google/uuid"

	"comparaprecos/internal/model"
)

// Normalizer combina QuantityExtractor e PriceParser para transformar um
// anúncio bruto em NormalizedProduct. Função pura: sem estado oculto,
// o mesmo RawListing produz sempre o mesmo resultado.
type Normalizer struct {
	extractor *QuantityExtractor
	parser    *PriceParser
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		extractor: NewQuantityExtractor(),
		parser:    NewPriceParser(),
	}
}

// Normalize processa um anúncio. Preço e quantidade são extraídos de
// forma independente; falha de preço é sempre fatal para o anúncio,
// independente do status da quantidade.
func (n *Normalizer) Normalize(raw model.RawListing) model.NormalizedProduct {
	availability := n.parser.ParseAvailability(raw.AvailabilityText)
	price, priceErr := n.parser.ParsePrice(raw.PriceText)
	quantity, status := n.extractor.Extract(raw.Title, raw.QuantityText)

	if priceErr != nil {
		status = model.StatusFailed
	}
	if status == model.StatusFailed {
		// Invariante: produto FAILED não carrega quantidade.
		quantity = nil
	}

	return model.NormalizedProduct{
		ID:           listingID(raw),
		MarketID:     raw.MarketID,
		Title:        collapseSpaces(raw.Title),
		Price:        price,
		Quantity:     quantity,
		Status:       status,
		Availability: availability,
		URL:          raw.URL,
		ImageURL:     raw.ImageURL,
		SearchQuery:  raw.SearchQuery,
		CEP:          raw.CEP,
		CollectedAt:  raw.CollectedAt,
	}
}

// listingID deriva um UUID determinístico do anúncio, de modo que
// normalizar duas vezes o mesmo RawListing produz valores idênticos.
func listingID(raw model.RawListing) uuid.UUID {
	seed := raw.MarketID + "|" + raw.URL + "|" + raw.SearchQuery + "|" +
		raw.CollectedAt.UTC().Format(time.RFC3339Nano)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed))
}
