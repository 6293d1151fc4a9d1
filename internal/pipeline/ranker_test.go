package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comparaprecos/internal/model"
)

func comparableOffer(t *testing.T, market, normalized, unit string) model.PriceOffer {
	t.Helper()
	np := mustDecimal(t, normalized)
	return model.PriceOffer{
		MarketID:        market,
		Title:           "Oferta " + market,
		NormalizedPrice: &np,
		NormalizedUnit:  unit,
		IsComparable:    true,
		Availability:    model.AvailabilityAvailable,
		Status:          model.StatusSuccess,
	}
}

func TestRankSavings(t *testing.T) {
	offers := []model.PriceOffer{
		comparableOffer(t, "carrefour", "5.98", "kg"),
		comparableOffer(t, "atacadao", "5.50", "kg"),
		comparableOffer(t, "extra", "6.58", "kg"),
	}

	r := NewOfferRanker()
	result := r.Rank("arroz", "01001-000", offers)

	require.Len(t, result.Groups, 1)
	g := result.Groups[0]
	assert.Equal(t, "kg", g.Unit)
	require.NotNil(t, g.Best)
	assert.Equal(t, "atacadao", g.Best.MarketID)

	require.Len(t, g.Offers, 3)
	assert.Equal(t, "atacadao", g.Offers[0].MarketID)
	assert.Equal(t, "carrefour", g.Offers[1].MarketID)
	assert.Equal(t, "extra", g.Offers[2].MarketID)

	assert.True(t, g.Offers[0].SavingsAbsolute.IsZero())
	assert.True(t, g.Offers[1].SavingsAbsolute.Equal(mustDecimal(t, "0.48")))
	assert.True(t, g.Offers[1].SavingsPercent.Equal(mustDecimal(t, "8.7")))
	assert.True(t, g.Offers[2].SavingsAbsolute.Equal(mustDecimal(t, "1.08")))
	assert.True(t, g.Offers[2].SavingsPercent.Equal(mustDecimal(t, "19.6")))

	require.NotNil(t, result.Best)
	assert.Equal(t, "atacadao", result.Best.MarketID)
	assert.Equal(t, 3, result.TotalOffers)
	assert.Equal(t, 3, result.ComparableOffers)
}

func TestRankUnitsNeverMix(t *testing.T) {
	offers := []model.PriceOffer{
		comparableOffer(t, "atacadao", "5.50", "kg"),
		comparableOffer(t, "carrefour", "3.99", "L"),
		comparableOffer(t, "extra", "5.98", "kg"),
	}

	r := NewOfferRanker()
	result := r.Rank("arroz", "", offers)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, "kg", result.Groups[0].Unit)
	assert.Equal(t, "L", result.Groups[1].Unit)
	assert.Len(t, result.Groups[0].Offers, 2)
	assert.Len(t, result.Groups[1].Offers, 1)

	// O litro a 3,99 é mais barato, mas a melhor oferta geral vem do
	// maior grupo comparável.
	require.NotNil(t, result.Best)
	assert.Equal(t, "atacadao", result.Best.MarketID)
}

func TestRankNonComparableLast(t *testing.T) {
	unavailable := comparableOffer(t, "extra", "4.00", "kg")
	unavailable.IsComparable = false
	unavailable.Availability = model.AvailabilityUnavailable

	failed := model.PriceOffer{
		MarketID: "carrefour",
		Title:    "Produto Especial",
		Price:    mustDecimal(t, "12.99"),
		Status:   model.StatusFailed,
	}

	offers := []model.PriceOffer{
		unavailable,
		failed,
		comparableOffer(t, "atacadao", "5.50", "kg"),
	}

	r := NewOfferRanker()
	result := r.Rank("arroz", "", offers)

	require.Len(t, result.Groups, 2)

	// Indisponível mais barato não vence: ranking só entre comparáveis.
	kg := result.Groups[0]
	assert.Equal(t, "kg", kg.Unit)
	require.NotNil(t, kg.Best)
	assert.Equal(t, "atacadao", kg.Best.MarketID)
	assert.Equal(t, "extra", kg.Offers[len(kg.Offers)-1].MarketID)

	// Grupo sem unidade sempre por último e sem melhor oferta.
	last := result.Groups[len(result.Groups)-1]
	assert.Equal(t, "", last.Unit)
	assert.Nil(t, last.Best)

	assert.Equal(t, 1, result.ComparableOffers)
}

func TestRankTieKeepsArrivalOrder(t *testing.T) {
	offers := []model.PriceOffer{
		comparableOffer(t, "carrefour", "5.98", "kg"),
		comparableOffer(t, "atacadao", "5.98", "kg"),
	}

	r := NewOfferRanker()
	result := r.Rank("arroz", "", offers)

	g := result.Groups[0]
	require.NotNil(t, g.Best)
	assert.Equal(t, "carrefour", g.Best.MarketID)
	assert.Equal(t, "carrefour", g.Offers[0].MarketID)
	assert.Equal(t, "atacadao", g.Offers[1].MarketID)
}

func TestRankMonotonic(t *testing.T) {
	offers := []model.PriceOffer{
		comparableOffer(t, "a", "7.31", "kg"),
		comparableOffer(t, "b", "5.02", "kg"),
		comparableOffer(t, "c", "6.77", "kg"),
		comparableOffer(t, "d", "5.01", "kg"),
		comparableOffer(t, "e", "9.99", "kg"),
	}

	r := NewOfferRanker()
	g := r.Rank("teste", "", offers).Groups[0]

	var prev decimal.Decimal
	for i, o := range g.Offers {
		require.NotNil(t, o.NormalizedPrice)
		if i > 0 {
			assert.True(t, prev.LessThanOrEqual(*o.NormalizedPrice),
				"posição %d fora de ordem", i)
		}
		assert.True(t, o.SavingsAbsolute.GreaterThanOrEqual(decimal.Zero))
		prev = *o.NormalizedPrice
	}
}

func TestRankNoComparableOffers(t *testing.T) {
	failed := model.PriceOffer{
		MarketID: "atacadao",
		Title:    "Produto Especial",
		Price:    mustDecimal(t, "12.99"),
		Status:   model.StatusFailed,
	}

	r := NewOfferRanker()
	result := r.Rank("especial", "", []model.PriceOffer{failed})
	assert.Nil(t, result.Best)
	assert.Equal(t, 0, result.ComparableOffers)
	require.Len(t, result.Groups, 1)
	assert.Nil(t, result.Groups[0].Best)
}

func TestRankEmpty(t *testing.T) {
	r := NewOfferRanker()
	result := r.Rank("arroz", "", nil)
	assert.Nil(t, result.Best)
	assert.Empty(t, result.Groups)
	assert.Equal(t, 0, result.TotalOffers)
}
