package pipeline

import (
	"sync"

	"comparaprecos/internal/model"
	"comparaprecos/internal/observability"
)

const defaultWorkers = 5

// Pipeline orquestra Normalizer, PriceCalculator e OfferRanker sobre um
// lote de anúncios. Cada anúncio é processado de forma independente;
// falha de um nunca aborta o restante do lote.
type Pipeline struct {
	normalizer *Normalizer
	calculator *PriceCalculator
	ranker     *OfferRanker
	workers    int
}

// Result é a saída completa do processamento de uma busca.
type Result struct {
	Products   []model.NormalizedProduct
	Offers     []model.PriceOffer
	Comparison model.ComparisonResult
}

func New(workers int) *Pipeline {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Pipeline{
		normalizer: NewNormalizer(),
		calculator: NewPriceCalculator(),
		ranker:     NewOfferRanker(),
		workers:    workers,
	}
}

// ProcessBatch normaliza um lote já materializado de anúncios e monta o
// resultado de comparação. O trabalho é puramente de CPU, então os
// workers só dividem o lote; os resultados são gravados pelo índice de
// entrada para manter a ordem determinística exigida pelo ranking.
func (p *Pipeline) ProcessBatch(query, cep string, listings []model.RawListing) Result {
	products := make([]model.NormalizedProduct, len(listings))
	offers := make([]model.PriceOffer, len(listings))

	type job struct {
		idx int
		raw model.RawListing
	}

	jobs := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				np := p.normalizer.Normalize(j.raw)
				products[j.idx] = np
				offers[j.idx] = p.calculator.CreateOffer(np)
			}
		}()
	}

	for i, raw := range listings {
		jobs <- job{idx: i, raw: raw}
	}
	close(jobs)
	wg.Wait()

	for _, np := range products {
		observability.ListingsProcessed.Inc()
		if np.Status == model.StatusFailed {
			observability.NormalizationFailures.Inc()
		}
	}
	for _, o := range offers {
		if o.IsComparable {
			observability.ComparableOffers.Inc()
		}
	}

	return Result{
		Products:   products,
		Offers:     offers,
		Comparison: p.ranker.Rank(query, cep, offers),
	}
}
