package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"comparaprecos/internal/config"
	"comparaprecos/internal/db"
	"comparaprecos/internal/pipeline"
	"comparaprecos/internal/repository"
)

// go run cmd/history/main.go -query="arroz tipo 1 5kg" -days=30
func main() {
	query := flag.String("query", "", "Termo de busca")
	market := flag.String("market", "", "Filtra por mercado (vazio = todos)")
	days := flag.Int("days", 30, "Janela do histórico em dias")
	flag.Parse()

	if *query == "" {
		log.Fatal("Informe -query")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL não configurado")
	}

	pool, err := db.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no banco de dados: %v", err)
	}
	defer pool.Close()

	repo := &repository.OfferRepository{DB: pool}
	points, err := repo.History(*query, *market, *days)
	if err != nil {
		log.Fatalf("Erro ao consultar histórico: %v", err)
	}
	if len(points) == 0 {
		log.Fatalf("Sem histórico para %q nos últimos %d dias", *query, *days)
	}

	fmt.Printf("Histórico de %q (%d dias)\n", *query, *days)
	for _, p := range points {
		fmt.Printf("%s  %-10s  R$ %s/%s\n",
			p.Day.Format("2006-01-02"), p.MarketID,
			pipeline.FormatBRL(p.MinNormalized), p.Unit)
	}
}
