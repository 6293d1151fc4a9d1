package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"comparaprecos/internal/cache"
	"comparaprecos/internal/config"
	"comparaprecos/internal/db"
	"comparaprecos/internal/export"
	"comparaprecos/internal/model"
	"comparaprecos/internal/observability"
	"comparaprecos/internal/pipeline"
	"comparaprecos/internal/repository"
	"comparaprecos/internal/scraper"
)

// go run cmd/collector/main.go -query="arroz tipo 1 5kg" -cep=40000000
// go run cmd/collector/main.go -query="cerveja lata 350ml" -markets=atacadao -out=ofertas.csv
func main() {
	query := flag.String("query", "", "Termo de busca (ex: 'arroz tipo 1 5kg')")
	cep := flag.String("cep", "", "CEP para escopo regional de preço")
	marketsArg := flag.String("markets", "", "Mercados separados por vírgula (vazio = todos)")
	out := flag.String("out", "", "Exporta as ofertas para um arquivo CSV")
	flag.Parse()

	if *query == "" {
		log.Fatal("Informe -query")
	}

	cfg := config.Load()
	observability.Start(cfg.MetricsPort)

	if *cep == "" {
		*cep = cfg.DefaultCEP
	}

	// Registro construído explicitamente; vale só para esta execução.
	registry := map[string]scraper.Scraper{
		"atacadao":  scraper.NewAtacadao(),
		"carrefour": scraper.NewCarrefour(),
	}
	manager := scraper.NewManager(registry, cfg.RatePerMin)

	var markets []string
	if *marketsArg != "" {
		for _, m := range strings.Split(*marketsArg, ",") {
			markets = append(markets, strings.TrimSpace(m))
		}
	}

	listings, meta := manager.SearchAll(context.Background(), *query, *cep, markets)
	log.Printf("Coleta concluída: %d anúncios", len(listings))

	result := pipeline.New(cfg.WorkerCount).ProcessBatch(*query, *cep, listings)
	meta.TotalComparable = result.Comparison.ComparableOffers

	if cfg.DatabaseURL != "" {
		if err := saveResults(cfg.DatabaseURL, listings, meta, result.Offers); err != nil {
			log.Printf("Erro ao persistir resultados: %v", err)
		}
	}

	if cfg.RedisURL != "" {
		if opt, err := redis.ParseURL(cfg.RedisURL); err == nil {
			store := &cache.ResultStore{Client: redis.NewClient(opt), TTL: cfg.CacheTTL}
			if err := store.Set(result.Comparison); err != nil {
				log.Printf("Erro ao salvar cache: %v", err)
			}
		}
	}

	if *out != "" {
		if err := export.WriteOffersFile(*out, result.Offers); err != nil {
			log.Fatalf("Erro ao exportar CSV: %v", err)
		}
		log.Printf("Ofertas exportadas para %s", *out)
	}

	export.PrintComparison(os.Stdout, result.Comparison)
}

func saveResults(databaseURL string, listings []model.RawListing, meta model.CollectionMetadata, offers []model.PriceOffer) error {
	sqlDB, err := db.New(databaseURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := repository.EnsureListingSchema(sqlDB); err != nil {
		return err
	}
	listingRepo := &repository.ListingRepository{DB: sqlDB}
	if err := listingRepo.SaveBatch(listings); err != nil {
		return err
	}

	pool, err := db.NewPool(context.Background(), databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := repository.EnsureOfferSchema(pool); err != nil {
		return err
	}
	offerRepo := &repository.OfferRepository{DB: pool}
	return offerRepo.SaveCollection(meta, offers)
}
