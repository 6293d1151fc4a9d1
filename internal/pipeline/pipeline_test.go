package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comparaprecos/internal/model"
)

func batchListing(market, title, priceText, availability string) model.RawListing {
	return model.RawListing{
		MarketID:         market,
		Title:            title,
		PriceText:        priceText,
		AvailabilityText: availability,
		URL:              "https://" + market + ".com.br/p/" + title,
		SearchQuery:      "arroz",
		CEP:              "01001-000",
		CollectedAt:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
}

func TestProcessBatch(t *testing.T) {
	listings := []model.RawListing{
		batchListing("atacadao", "Arroz Tipo 1 Tio João 5kg", "R$ 29,90", "disponível"),
		batchListing("carrefour", "Arroz Branco 5kg", "R$ 27,50", "disponível"),
		batchListing("carrefour", "Produto Especial", "R$ 12,99", "disponível"),
		batchListing("extra", "Arroz Integral 1kg", "R$ 8,90", "indisponível"),
	}

	p := New(3)
	result := p.ProcessBatch("arroz", "01001-000", listings)

	require.Len(t, result.Products, 4)
	require.Len(t, result.Offers, 4)

	// A ordem de entrada é preservada mesmo com processamento paralelo.
	for i, raw := range listings {
		assert.Equal(t, raw.MarketID, result.Offers[i].MarketID, "posição %d", i)
		assert.Equal(t, collapseSpaces(raw.Title), result.Offers[i].Title, "posição %d", i)
	}

	assert.Equal(t, model.StatusFailed, result.Products[2].Status)
	assert.False(t, result.Offers[3].IsComparable)

	cmp := result.Comparison
	assert.Equal(t, 4, cmp.TotalOffers)
	assert.Equal(t, 2, cmp.ComparableOffers)
	require.NotNil(t, cmp.Best)
	assert.Equal(t, "carrefour", cmp.Best.MarketID)
	assert.True(t, cmp.Best.NormalizedPrice.Equal(mustDecimal(t, "5.5")))
}

func TestProcessBatchOrderStable(t *testing.T) {
	var listings []model.RawListing
	for i := 0; i < 200; i++ {
		listings = append(listings, batchListing("atacadao",
			fmt.Sprintf("Arroz Lote %d 5kg", i), "R$ 29,90", "disponível"))
	}

	p := New(8)
	result := p.ProcessBatch("arroz", "", listings)
	require.Len(t, result.Offers, 200)
	for i, o := range result.Offers {
		assert.Equal(t, fmt.Sprintf("Arroz Lote %d 5kg", i), o.Title)
	}
}

func TestProcessBatchEmpty(t *testing.T) {
	p := New(0)
	result := p.ProcessBatch("arroz", "", nil)
	assert.Empty(t, result.Products)
	assert.Empty(t, result.Offers)
	assert.Nil(t, result.Comparison.Best)
}
