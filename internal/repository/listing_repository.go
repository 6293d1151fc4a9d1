package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"comparaprecos/internal/model"
)

// ListingRepository persiste anúncios brutos exatamente como coletados,
// permitindo reprocessar o pipeline sem nova coleta.
type ListingRepository struct {
	DB *sql.DB
}

func (r *ListingRepository) Save(l model.RawListing) error {
	_, err := r.DB.Exec(`
		INSERT INTO raw_listings
		(id, market_id, title, price_text, availability_text, quantity_text,
		 url, image_url, search_query, cep, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, uuid.New().String(), l.MarketID, l.Title, l.PriceText, l.AvailabilityText,
		l.QuantityText, l.URL, l.ImageURL, l.SearchQuery, l.CEP, l.CollectedAt)
	return err
}

func (r *ListingRepository) SaveBatch(listings []model.RawListing) error {
	for _, l := range listings {
		if err := r.Save(l); err != nil {
			return err
		}
	}
	return nil
}

// ListByQuery retorna os anúncios brutos mais recentes de uma busca.
func (r *ListingRepository) ListByQuery(searchQuery string, limit int) ([]model.RawListing, error) {
	rows, err := r.DB.Query(`
		SELECT market_id, title, price_text, availability_text, quantity_text,
		       url, image_url, search_query, cep, collected_at
		FROM raw_listings
		WHERE search_query = $1
		ORDER BY collected_at DESC
		LIMIT $2
	`, searchQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.RawListing
	for rows.Next() {
		var l model.RawListing
		if err := rows.Scan(&l.MarketID, &l.Title, &l.PriceText, &l.AvailabilityText,
			&l.QuantityText, &l.URL, &l.ImageURL, &l.SearchQuery, &l.CEP, &l.CollectedAt); err != nil {
			return nil, err
		}
		list = append(list, l)
	}

	return list, rows.Err()
}
