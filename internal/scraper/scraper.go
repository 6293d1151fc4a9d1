package scraper

import (
	"context"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"comparaprecos/internal/model"
	"comparaprecos/internal/observability"
)

var httpClient = &http.Client{
	Timeout: 60 * time.Second,
}

// Scraper é a capacidade de coletar anúncios brutos de um mercado.
// Cada mercado implementa a interface; não há hierarquia.
type Scraper interface {
	MarketID() string
	Search(ctx context.Context, query, cep string) ([]model.RawListing, error)
}

// Manager coordena a coleta em múltiplos mercados. O registro é um
// mapeamento construído explicitamente pelo chamador, com ciclo de vida
// restrito a uma execução de coleta; não existe registro global.
type Manager struct {
	registry map[string]Scraper
	limiters map[string]*rate.Limiter
}

func NewManager(registry map[string]Scraper, perMinute int) *Manager {
	if perMinute <= 0 {
		perMinute = 10
	}
	limiters := make(map[string]*rate.Limiter, len(registry))
	for id := range registry {
		limiters[id] = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
	return &Manager{registry: registry, limiters: limiters}
}

func (m *Manager) Markets() []string {
	ids := make([]string, 0, len(m.registry))
	for id := range m.registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SearchAll executa a busca nos mercados informados (todos, se vazio) em
// paralelo, respeitando o rate limit por mercado. Falha de um mercado é
// registrada nos metadados e não interrompe os demais.
func (m *Manager) SearchAll(ctx context.Context, query, cep string, markets []string) ([]model.RawListing, model.CollectionMetadata) {
	if len(markets) == 0 {
		markets = m.Markets()
	}

	meta := model.CollectionMetadata{
		ID:               uuid.New(),
		SearchQuery:      query,
		CEP:              cep,
		Markets:          markets,
		StartedAt:        time.Now(),
		ResultsPerMarket: make(map[string]int),
		ErrorsPerMarket:  make(map[string]string),
	}

	// Resultados coletados por índice de mercado: a ordem final é a do
	// slice de mercados, não a ordem de término das goroutines.
	results := make([][]model.RawListing, len(markets))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for i, id := range markets {
		s, ok := m.registry[id]
		if !ok {
			meta.ErrorsPerMarket[id] = "mercado não registrado"
			continue
		}

		wg.Add(1)
		go func(i int, id string, s Scraper) {
			defer wg.Done()

			if err := m.limiters[id].Wait(ctx); err != nil {
				mu.Lock()
				meta.ErrorsPerMarket[id] = err.Error()
				mu.Unlock()
				return
			}

			result, err := s.Search(ctx, query, cep)
			if err != nil {
				log.Printf("Erro ao coletar %s: %v", id, err)
				observability.ScrapeErrors.WithLabelValues(id).Inc()
				mu.Lock()
				meta.ErrorsPerMarket[id] = err.Error()
				mu.Unlock()
				return
			}

			results[i] = result
			mu.Lock()
			meta.ResultsPerMarket[id] = len(result)
			mu.Unlock()
		}(i, id, s)
	}

	wg.Wait()

	var listings []model.RawListing
	for _, r := range results {
		listings = append(listings, r...)
	}
	meta.FinishedAt = time.Now()
	meta.TotalListings = len(listings)
	return listings, meta
}
