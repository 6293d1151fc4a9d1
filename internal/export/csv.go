package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"comparaprecos/internal/model"
)

var csvHeader = []string{
	"market_id", "title", "url", "price", "quantity_value",
	"normalized_price", "normalized_unit", "price_display",
	"is_comparable", "availability", "normalization_status",
	"search_query", "cep", "collected_at",
}

// WriteOffers escreve as ofertas em CSV, uma linha por oferta, com os
// campos normalizados e a proveniência da coleta.
func WriteOffers(w io.Writer, offers []model.PriceOffer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, o := range offers {
		normalized := ""
		if o.NormalizedPrice != nil {
			normalized = o.NormalizedPrice.StringFixed(4)
		}
		quantity := ""
		if o.QuantityValue > 0 {
			quantity = strconv.FormatFloat(o.QuantityValue, 'f', -1, 64)
		}

		record := []string{
			o.MarketID,
			o.Title,
			o.URL,
			o.Price.StringFixed(2),
			quantity,
			normalized,
			o.NormalizedUnit,
			o.PriceDisplay,
			strconv.FormatBool(o.IsComparable),
			string(o.Availability),
			string(o.Status),
			o.SearchQuery,
			o.CEP,
			o.CollectedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteOffersFile grava o CSV no caminho informado.
func WriteOffersFile(path string, offers []model.PriceOffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteOffers(f, offers)
}
