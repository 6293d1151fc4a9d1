package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"comparaprecos/internal/cache"
	"comparaprecos/internal/config"
	"comparaprecos/internal/db"
	"comparaprecos/internal/export"
	"comparaprecos/internal/pipeline"
	"comparaprecos/internal/repository"
)

// Compara os preços já coletados de uma busca, sem nova coleta.
//
// go run cmd/compare/main.go -query="arroz tipo 1 5kg"
// go run cmd/compare/main.go -query="leite integral 1l" -reprocess
func main() {
	query := flag.String("query", "", "Termo de busca já coletado")
	cep := flag.String("cep", "", "CEP usado na coleta")
	reprocess := flag.Bool("reprocess", false, "Reprocessa os anúncios brutos pelo pipeline em vez de usar as ofertas salvas")
	limit := flag.Int("limit", 200, "Máximo de anúncios brutos ao reprocessar")
	flag.Parse()

	if *query == "" {
		log.Fatal("Informe -query")
	}

	cfg := config.Load()

	// Cache primeiro: busca repetida dentro da janela não toca o banco.
	if cfg.RedisURL != "" && !*reprocess {
		if opt, err := redis.ParseURL(cfg.RedisURL); err == nil {
			store := &cache.ResultStore{Client: redis.NewClient(opt), TTL: cfg.CacheTTL}
			if result := store.Get(*query, *cep); result != nil {
				export.PrintComparison(os.Stdout, *result)
				return
			}
		}
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL não configurado")
	}

	if *reprocess {
		runReprocess(cfg, *query, *cep, *limit)
		return
	}

	pool, err := db.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no banco de dados: %v", err)
	}
	defer pool.Close()

	repo := &repository.OfferRepository{DB: pool}
	offers, err := repo.LatestOffers(*query, *cep)
	if err != nil {
		log.Fatalf("Erro ao carregar ofertas: %v", err)
	}
	if len(offers) == 0 {
		log.Fatalf("Nenhuma oferta salva para %q", *query)
	}

	ranker := pipeline.NewOfferRanker()
	export.PrintComparison(os.Stdout, ranker.Rank(*query, *cep, offers))
}

func runReprocess(cfg *config.Config, query, cep string, limit int) {
	sqlDB, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no banco de dados: %v", err)
	}
	defer sqlDB.Close()

	repo := &repository.ListingRepository{DB: sqlDB}
	listings, err := repo.ListByQuery(query, limit)
	if err != nil {
		log.Fatalf("Erro ao listar anúncios brutos: %v", err)
	}
	if len(listings) == 0 {
		log.Fatalf("Nenhum anúncio bruto salvo para %q", query)
	}

	result := pipeline.New(cfg.WorkerCount).ProcessBatch(query, cep, listings)
	export.PrintComparison(os.Stdout, result.Comparison)
}
