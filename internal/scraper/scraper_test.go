package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comparaprecos/internal/model"
)

type fakeScraper struct {
	id       string
	listings []model.RawListing
	err      error
}

func (f *fakeScraper) MarketID() string { return f.id }

func (f *fakeScraper) Search(ctx context.Context, query, cep string) ([]model.RawListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

func fakeListings(market string, n int) []model.RawListing {
	out := make([]model.RawListing, n)
	for i := range out {
		out[i] = model.RawListing{MarketID: market, Title: "Arroz 5kg", PriceText: "R$ 29,90"}
	}
	return out
}

func TestManagerMarkets(t *testing.T) {
	m := NewManager(map[string]Scraper{
		"carrefour": &fakeScraper{id: "carrefour"},
		"atacadao":  &fakeScraper{id: "atacadao"},
	}, 600)
	assert.Equal(t, []string{"atacadao", "carrefour"}, m.Markets())
}

func TestSearchAll(t *testing.T) {
	m := NewManager(map[string]Scraper{
		"atacadao":  &fakeScraper{id: "atacadao", listings: fakeListings("atacadao", 2)},
		"carrefour": &fakeScraper{id: "carrefour", listings: fakeListings("carrefour", 3)},
	}, 600)

	listings, meta := m.SearchAll(context.Background(), "arroz", "01001-000", nil)

	require.Len(t, listings, 5)
	// A ordem de saída segue a ordem dos mercados, não a ordem de término.
	assert.Equal(t, "atacadao", listings[0].MarketID)
	assert.Equal(t, "carrefour", listings[2].MarketID)

	assert.Equal(t, 2, meta.ResultsPerMarket["atacadao"])
	assert.Equal(t, 3, meta.ResultsPerMarket["carrefour"])
	assert.Empty(t, meta.ErrorsPerMarket)
	assert.Equal(t, 5, meta.TotalListings)
	assert.Equal(t, "arroz", meta.SearchQuery)
}

func TestSearchAllPartialFailure(t *testing.T) {
	m := NewManager(map[string]Scraper{
		"atacadao":  &fakeScraper{id: "atacadao", listings: fakeListings("atacadao", 2)},
		"carrefour": &fakeScraper{id: "carrefour", err: errors.New("status 503")},
	}, 600)

	listings, meta := m.SearchAll(context.Background(), "arroz", "", nil)

	require.Len(t, listings, 2)
	assert.Equal(t, "status 503", meta.ErrorsPerMarket["carrefour"])
	assert.Equal(t, 2, meta.ResultsPerMarket["atacadao"])
	assert.NotContains(t, meta.ResultsPerMarket, "carrefour")
}

func TestSearchAllUnknownMarket(t *testing.T) {
	m := NewManager(map[string]Scraper{
		"atacadao": &fakeScraper{id: "atacadao", listings: fakeListings("atacadao", 1)},
	}, 600)

	listings, meta := m.SearchAll(context.Background(), "arroz", "", []string{"atacadao", "extra"})

	require.Len(t, listings, 1)
	assert.Equal(t, "mercado não registrado", meta.ErrorsPerMarket["extra"])
}

func TestSearchAllSubset(t *testing.T) {
	m := NewManager(map[string]Scraper{
		"atacadao":  &fakeScraper{id: "atacadao", listings: fakeListings("atacadao", 1)},
		"carrefour": &fakeScraper{id: "carrefour", listings: fakeListings("carrefour", 1)},
	}, 600)

	listings, meta := m.SearchAll(context.Background(), "arroz", "", []string{"carrefour"})
	require.Len(t, listings, 1)
	assert.Equal(t, "carrefour", listings[0].MarketID)
	assert.Equal(t, []string{"carrefour"}, meta.Markets)
}
