package export

import (
	"fmt"
	"io"

	"comparaprecos/internal/model"
)

// PrintComparison escreve o relatório de comparação em texto, grupo a
// grupo, com a economia frente à melhor oferta.
func PrintComparison(w io.Writer, result model.ComparisonResult) {
	fmt.Fprintf(w, "Busca: %q", result.Query)
	if result.CEP != "" {
		fmt.Fprintf(w, " (CEP %s)", result.CEP)
	}
	fmt.Fprintf(w, " - %d ofertas, %d comparáveis\n", result.TotalOffers, result.ComparableOffers)

	for _, g := range result.Groups {
		if g.Unit == "" {
			fmt.Fprintf(w, "\nSem preço normalizado (%d ofertas)\n", len(g.Offers))
		} else {
			fmt.Fprintf(w, "\nPor %s (%d ofertas)\n", g.Unit, len(g.Offers))
		}
		for _, o := range g.Offers {
			marker := " "
			if g.Best != nil && o.ID == g.Best.ID {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %-10s %-50.50s %s", marker, o.MarketID, o.Title, o.PriceDisplay)
			if o.IsComparable && !o.SavingsPercent.IsZero() {
				fmt.Fprintf(w, "  (+%s%%)", o.SavingsPercent.String())
			}
			if !o.IsComparable {
				fmt.Fprintf(w, "  [não comparável]")
			}
			fmt.Fprintln(w)
		}
	}

	if result.Best != nil {
		fmt.Fprintf(w, "\nMelhor oferta: %s - %s (%s)\n",
			result.Best.MarketID, result.Best.Title, result.Best.PriceDisplay)
	}
}
