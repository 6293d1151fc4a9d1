package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Criação preguiçosa do schema, espelhando o formato de persistência:
// uma linha de coleção por busca e zero ou mais linhas de oferta, cada
// uma com seus campos normalizados e proveniência.

func EnsureOfferSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS collections (
			id UUID PRIMARY KEY,
			search_query TEXT NOT NULL,
			cep TEXT,
			markets TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ,
			total_listings INTEGER DEFAULT 0,
			total_comparable INTEGER DEFAULT 0,
			errors_json TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS offers (
			id UUID PRIMARY KEY,
			collection_id UUID NOT NULL REFERENCES collections(id),
			market_id TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			image_url TEXT,
			price NUMERIC NOT NULL,
			quantity_value DOUBLE PRECISION,
			normalized_price NUMERIC,
			normalized_unit TEXT,
			price_display TEXT NOT NULL,
			is_comparable BOOLEAN NOT NULL,
			availability TEXT NOT NULL,
			normalization_status TEXT NOT NULL,
			search_query TEXT NOT NULL,
			cep TEXT,
			collected_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_offers_query ON offers(search_query)`,
		`CREATE INDEX IF NOT EXISTS idx_offers_market_query ON offers(market_id, search_query)`,
		`CREATE INDEX IF NOT EXISTS idx_offers_collected ON offers(collected_at)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func EnsureListingSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS raw_listings (
			id UUID PRIMARY KEY,
			market_id TEXT NOT NULL,
			title TEXT NOT NULL,
			price_text TEXT NOT NULL,
			availability_text TEXT,
			quantity_text TEXT,
			url TEXT NOT NULL,
			image_url TEXT,
			search_query TEXT NOT NULL,
			cep TEXT,
			collected_at TIMESTAMPTZ NOT NULL
		)
	`)
	return err
}
