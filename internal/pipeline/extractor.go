package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"comparaprecos/internal/model"
	"comparaprecos/internal/units"
)

// Padrões compilados uma única vez.
var (
	// Número (separador decimal "." ou ",") seguido de token de unidade,
	// com no máximo um espaço entre eles.
	quantityPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)*)\s?(\p{L}+)`)

	// Marcadores de multiplicador de pack: "12x", "c/ 12", "pack 12",
	// "leve 12". O grupo não vazio carrega o inteiro.
	multiplierPattern = regexp.MustCompile(`(?i)(\d+)\s*x|c/\s*(\d+)|\bpack\s+(\d+)|\bleve\s+(\d+)`)
)

// QuantityExtractor extrai quantidade e multiplicador de pack do título
// de um produto.
type QuantityExtractor struct{}

func NewQuantityExtractor() *QuantityExtractor {
	return &QuantityExtractor{}
}

// Extract varre o título (e a dica estruturada, quando fornecida pelo
// scraper) e devolve a quantidade convertida para unidade base.
// Retorna nil e StatusFailed quando nenhum candidato resolve na tabela
// de unidades.
func (e *QuantityExtractor) Extract(title, hint string) (*model.QuantityInfo, model.NormalizationStatus) {
	title = collapseSpaces(title)

	// A dica estruturada, quando presente, tem prioridade sobre o título.
	var cand *quantityCandidate
	if hint != "" {
		cand = bestCandidate(collapseSpaces(hint))
	}
	if cand == nil {
		cand = bestCandidate(title)
	}
	if cand == nil {
		return nil, model.StatusFailed
	}

	info := &model.QuantityInfo{
		Value:      cand.value,
		Unit:       cand.unit,
		BaseValue:  cand.value * cand.entry.Factor,
		BaseUnit:   cand.entry.Dimension.BaseUnit(),
		Multiplier: 1,
		RawText:    cand.raw,
	}

	// O multiplicador é sempre procurado no título, onde os marcadores
	// de pack aparecem. Ausente ou ambíguo rebaixa o status para PARTIAL.
	mult, ok := extractMultiplier(title)
	if !ok {
		return info, model.StatusPartial
	}
	info.Multiplier = mult
	return info, model.StatusSuccess
}

type quantityCandidate struct {
	value float64
	unit  string
	entry units.Entry
	raw   string
}

// bestCandidate devolve o último candidato do texto cuja unidade resolve
// na tabela. Candidatos com unidade desconhecida são descartados; a
// política de desempate é fixa e não depende da ordem interna do motor
// de regex.
func bestCandidate(text string) *quantityCandidate {
	matches := quantityPattern.FindAllStringSubmatch(text, -1)
	var best *quantityCandidate
	for _, m := range matches {
		value, ok := parseNumber(m[1])
		if !ok || value <= 0 {
			continue
		}
		entry, err := units.Lookup(m[2])
		if err != nil {
			continue
		}
		best = &quantityCandidate{
			value: value,
			unit:  m[2],
			entry: entry,
			raw:   m[0],
		}
	}
	return best
}

// extractMultiplier coleta todos os marcadores de pack do texto.
// Retorna (n, true) quando há exatamente um valor distinto; ausência ou
// valores conflitantes retornam (1, false).
func extractMultiplier(text string) (int, bool) {
	matches := multiplierPattern.FindAllStringSubmatch(text, -1)
	found := 0
	for _, m := range matches {
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			n, err := strconv.Atoi(g)
			if err != nil || n <= 0 {
				continue
			}
			if found == 0 {
				found = n
			} else if found != n {
				// Candidatos conflitantes: ambíguo.
				return 1, false
			}
		}
	}
	if found == 0 {
		return 1, false
	}
	return found, true
}

// parseNumber converte um número com separador ambíguo ("." ou ",").
// Separador seguido de exatamente 1-2 dígitos é tratado como decimal;
// caso contrário, como agrupamento de milhar. Heurística documentada,
// não exata.
func parseNumber(s string) (float64, bool) {
	idx := strings.LastIndexAny(s, ".,")
	if idx == -1 {
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	}

	frac := s[idx+1:]
	intPart := strings.NewReplacer(".", "", ",", "").Replace(s[:idx])

	var v float64
	var err error
	if len(frac) <= 2 {
		v, err = strconv.ParseFloat(intPart+"."+frac, 64)
	} else {
		v, err = strconv.ParseFloat(intPart+frac, 64)
	}
	return v, err == nil
}

// collapseSpaces normaliza o espaçamento do texto cru vindo do scraper.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
