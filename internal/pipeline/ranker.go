package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"comparaprecos/internal/model"
)

var hundred = decimal.NewFromInt(100)

// OfferRanker agrupa as ofertas de uma busca por unidade base, ordena
// cada grupo por preço normalizado e calcula a economia em relação à
// melhor oferta do grupo. Ofertas de unidades diferentes (kg vs L)
// nunca são comparadas entre si.
type OfferRanker struct{}

func NewOfferRanker() *OfferRanker {
	return &OfferRanker{}
}

// Rank monta o ComparisonResult de uma busca. A ordenação é estável:
// empates em preço normalizado mantêm a ordem de chegada, e a primeira
// oferta vista vence como melhor do grupo.
func (r *OfferRanker) Rank(query, cep string, offers []model.PriceOffer) model.ComparisonResult {
	groupIndex := make(map[string]int)
	var groups []model.UnitGroup

	comparableCount := 0
	for _, o := range offers {
		if o.IsComparable {
			comparableCount++
		}
		idx, ok := groupIndex[o.NormalizedUnit]
		if !ok {
			idx = len(groups)
			groupIndex[o.NormalizedUnit] = idx
			groups = append(groups, model.UnitGroup{Unit: o.NormalizedUnit})
		}
		groups[idx].Offers = append(groups[idx].Offers, model.RankedOffer{PriceOffer: o})
	}

	for i := range groups {
		rankGroup(&groups[i])
	}

	// Ofertas sem unidade (normalização falhou) ficam por último.
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Unit != "" && groups[b].Unit == ""
	})

	return model.ComparisonResult{
		Query:            query,
		CEP:              cep,
		Groups:           groups,
		Best:             overallBest(groups),
		TotalOffers:      len(offers),
		ComparableOffers: comparableCount,
	}
}

// rankGroup ordena um grupo (comparáveis primeiro, ascendente por preço
// normalizado) e preenche melhor oferta e economias.
func rankGroup(g *model.UnitGroup) {
	sort.SliceStable(g.Offers, func(a, b int) bool {
		oa, ob := g.Offers[a], g.Offers[b]
		if oa.IsComparable != ob.IsComparable {
			return oa.IsComparable
		}
		if !oa.IsComparable {
			return false
		}
		return oa.NormalizedPrice.LessThan(*ob.NormalizedPrice)
	})

	if len(g.Offers) == 0 || !g.Offers[0].IsComparable {
		return
	}

	best := g.Offers[0]
	g.Best = &best

	for i := range g.Offers {
		o := &g.Offers[i]
		if !o.IsComparable {
			continue
		}
		diff := o.NormalizedPrice.Sub(*best.NormalizedPrice)
		o.SavingsAbsolute = diff.Round(2)
		if !best.NormalizedPrice.IsZero() {
			o.SavingsPercent = diff.Div(*best.NormalizedPrice).Mul(hundred).Round(1)
		}
	}
}

// overallBest escolhe a melhor oferta apenas dentro do maior grupo
// comparável; indefinida quando nenhum grupo tem oferta comparável.
func overallBest(groups []model.UnitGroup) *model.RankedOffer {
	bestIdx := -1
	bestSize := 0
	for i, g := range groups {
		if g.Best == nil {
			continue
		}
		size := 0
		for _, o := range g.Offers {
			if o.IsComparable {
				size++
			}
		}
		if size > bestSize {
			bestSize = size
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return nil
	}
	return groups[bestIdx].Best
}
