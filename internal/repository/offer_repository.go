package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"comparaprecos/internal/model"
)

// OfferRepository persiste ofertas normalizadas e metadados de coleta.
// Cada linha de oferta carrega sua proveniência (busca, cep, timestamp)
// para consultas históricas.
type OfferRepository struct {
	DB *pgxpool.Pool
}

func (r *OfferRepository) SaveCollection(meta model.CollectionMetadata, offers []model.PriceOffer) error {
	ctx := context.Background()

	errorsJSON, _ := json.Marshal(meta.ErrorsPerMarket)

	_, err := r.DB.Exec(ctx, `
		INSERT INTO collections
		(id, search_query, cep, markets, started_at, finished_at,
		 total_listings, total_comparable, errors_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, meta.ID, meta.SearchQuery, meta.CEP, strings.Join(meta.Markets, ","),
		meta.StartedAt, meta.FinishedAt, meta.TotalListings, meta.TotalComparable,
		string(errorsJSON))
	if err != nil {
		return err
	}

	for _, o := range offers {
		var normalized any
		if o.NormalizedPrice != nil {
			normalized = o.NormalizedPrice.String()
		}
		_, err := r.DB.Exec(ctx, `
			INSERT INTO offers
			(id, collection_id, market_id, title, url, image_url, price,
			 quantity_value, normalized_price, normalized_unit, price_display,
			 is_comparable, availability, normalization_status,
			 search_query, cep, collected_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`, o.ID, meta.ID, o.MarketID, o.Title, o.URL, o.ImageURL, o.Price.String(),
			o.QuantityValue, normalized, o.NormalizedUnit, o.PriceDisplay,
			o.IsComparable, string(o.Availability), string(o.Status),
			o.SearchQuery, o.CEP, o.CollectedAt)
		if err != nil {
			return err
		}
	}

	return nil
}

// LatestOffers carrega as ofertas da coleta mais recente de uma busca.
func (r *OfferRepository) LatestOffers(searchQuery, cep string) ([]model.PriceOffer, error) {
	ctx := context.Background()

	rows, err := r.DB.Query(ctx, `
		SELECT o.id, o.market_id, o.title, o.url, o.image_url, o.price::text,
		       o.quantity_value, o.normalized_price::text, o.normalized_unit,
		       o.price_display, o.is_comparable, o.availability,
		       o.normalization_status, o.search_query, o.cep, o.collected_at
		FROM offers o
		WHERE o.collection_id = (
			SELECT id FROM collections
			WHERE search_query = $1 AND ($2 = '' OR cep = $2)
			ORDER BY started_at DESC
			LIMIT 1
		)
		ORDER BY o.collected_at
	`, searchQuery, cep)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []model.PriceOffer
	for rows.Next() {
		var o model.PriceOffer
		var priceStr string
		var normalizedStr *string
		var availability, status string
		if err := rows.Scan(&o.ID, &o.MarketID, &o.Title, &o.URL, &o.ImageURL,
			&priceStr, &o.QuantityValue, &normalizedStr, &o.NormalizedUnit,
			&o.PriceDisplay, &o.IsComparable, &availability, &status,
			&o.SearchQuery, &o.CEP, &o.CollectedAt); err != nil {
			return nil, err
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, err
		}
		o.Price = price
		if normalizedStr != nil {
			np, err := decimal.NewFromString(*normalizedStr)
			if err != nil {
				return nil, err
			}
			o.NormalizedPrice = &np
		}
		o.Availability = model.Availability(availability)
		o.Status = model.NormalizationStatus(status)
		offers = append(offers, o)
	}

	return offers, rows.Err()
}

// PricePoint é um ponto do histórico de preços de uma busca.
type PricePoint struct {
	Day           time.Time
	MarketID      string
	MinNormalized decimal.Decimal
	Unit          string
}

// History retorna o menor preço normalizado por dia e mercado para uma
// busca, dentro da janela informada.
func (r *OfferRepository) History(searchQuery, marketID string, days int) ([]PricePoint, error) {
	ctx := context.Background()

	rows, err := r.DB.Query(ctx, `
		SELECT date_trunc('day', collected_at) AS day, market_id,
		       min(normalized_price)::text, normalized_unit
		FROM offers
		WHERE search_query = $1
		  AND ($2 = '' OR market_id = $2)
		  AND is_comparable
		  AND collected_at > now() - make_interval(days => $3)
		GROUP BY day, market_id, normalized_unit
		ORDER BY day, market_id
	`, searchQuery, marketID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []PricePoint
	for rows.Next() {
		var p PricePoint
		var minStr string
		if err := rows.Scan(&p.Day, &p.MarketID, &minStr, &p.Unit); err != nil {
			return nil, err
		}
		min, err := decimal.NewFromString(minStr)
		if err != nil {
			return nil, err
		}
		p.MinNormalized = min
		points = append(points, p)
	}

	return points, rows.Err()
}
