package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ListingsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listings_processed_total",
			Help: "Total de anúncios processados pelo pipeline",
		},
	)
	NormalizationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "normalization_failures_total",
			Help: "Total de anúncios com normalização FAILED",
		},
	)
	ComparableOffers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "comparable_offers_total",
			Help: "Total de ofertas comparáveis geradas",
		},
	)
	ScrapeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_errors_total",
			Help: "Total de erros de coleta por mercado",
		},
		[]string{"market"},
	)
)

func Start(port string) {
	prometheus.MustRegister(ListingsProcessed, NormalizationFailures, ComparableOffers, ScrapeErrors)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
