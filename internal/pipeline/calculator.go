package pipeline

import (
	"strings"

	"github.com/shopspring/decimal"

	"comparaprecos/internal/model"
)

// PriceCalculator deriva uma PriceOffer de um produto normalizado:
// preço por unidade base, string de exibição e flag de comparabilidade.
type PriceCalculator struct{}

func NewPriceCalculator() *PriceCalculator {
	return &PriceCalculator{}
}

// CreateOffer calcula o preço normalizado da oferta. O valor sem
// arredondamento é mantido para ranking; o arredondamento a 2 casas
// (half-up) é só para exibição. Quantidade total não positiva falha
// fechada: oferta sem preço normalizado, nunca pânico.
func (c *PriceCalculator) CreateOffer(p model.NormalizedProduct) model.PriceOffer {
	offer := model.PriceOffer{
		ID:           p.ID,
		MarketID:     p.MarketID,
		Title:        p.Title,
		URL:          p.URL,
		ImageURL:     p.ImageURL,
		Price:        p.Price,
		Availability: p.Availability,
		Status:       p.Status,
		SearchQuery:  p.SearchQuery,
		CEP:          p.CEP,
		CollectedAt:  p.CollectedAt,
	}

	if p.Status != model.StatusFailed && p.Quantity != nil {
		total := p.Quantity.TotalBaseQuantity()
		if total > 0 {
			// A conversão de unidade em float64 carrega ruído (350ml em
			// packs vira 4.2000000000000004); 9 casas absorvem o ruído
			// sem perder nenhuma quantidade real de gôndola.
			qty := decimal.NewFromFloat(total).Round(9)
			normalized := p.Price.Div(qty)
			offer.NormalizedPrice = &normalized
			offer.NormalizedUnit = p.Quantity.BaseUnit
			offer.QuantityValue = total
		}
	}

	offer.IsComparable = offer.NormalizedPrice != nil &&
		p.Availability == model.AvailabilityAvailable
	offer.PriceDisplay = priceDisplay(offer)
	return offer
}

func priceDisplay(o model.PriceOffer) string {
	if o.NormalizedPrice != nil {
		return "R$ " + FormatBRL(*o.NormalizedPrice) + "/" + o.NormalizedUnit
	}
	return "R$ " + FormatBRL(o.Price)
}

// FormatBRL formata um valor no padrão brasileiro com 2 casas decimais
// (ex: 1234.5 -> "1.234,50"), arredondando half-up.
func FormatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}
	return b.String() + "," + frac
}
