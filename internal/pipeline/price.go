package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"comparaprecos/internal/model"
)

var ErrInvalidPrice = errors.New("preço inválido")

// Palavras-chave de disponibilidade. "indisponível" contém "disponível",
// então os termos de indisponibilidade são verificados primeiro.
var (
	unavailableKeywords = []string{
		"indisponível", "indisponivel", "esgotado", "sem estoque",
		"unavailable", "out of stock", "sold out",
	}
	availableKeywords = []string{
		"disponível", "disponivel", "em estoque", "adicionar",
		"comprar", "available", "in stock", "add to cart",
	}
)

// PriceParser converte strings localizadas de preço e disponibilidade
// em valores estruturados.
type PriceParser struct{}

func NewPriceParser() *PriceParser {
	return &PriceParser{}
}

// Parse processa o par (preço, disponibilidade) de um anúncio.
// Um preço não parseável retorna ErrInvalidPrice; o chamador trata o
// anúncio como não comparável, nunca como preço zero.
func (p *PriceParser) Parse(priceText, availabilityText string) (model.ParsedPrice, error) {
	amount, err := p.ParsePrice(priceText)
	if err != nil {
		return model.ParsedPrice{}, err
	}
	return model.ParsedPrice{
		Amount:       amount,
		Availability: p.ParseAvailability(availabilityText),
	}, nil
}

// ParsePrice converte um preço localizado ("R$ 1.234,56") em decimal.
func (p *PriceParser) ParsePrice(priceText string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(priceText)
	cleaned = strings.NewReplacer("R$", "", "r$", "", " ", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, priceText)
	}

	// Formato brasileiro: pontos são milhar, vírgula é decimal.
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, priceText)
	}
	return amount, nil
}

// ParseAvailability mapeia o texto de disponibilidade para o enum via
// conjunto fixo de palavras-chave.
func (p *PriceParser) ParseAvailability(text string) model.Availability {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return model.AvailabilityUnknown
	}
	for _, kw := range unavailableKeywords {
		if strings.Contains(t, kw) {
			return model.AvailabilityUnavailable
		}
	}
	for _, kw := range availableKeywords {
		if strings.Contains(t, kw) {
			return model.AvailabilityAvailable
		}
	}
	return model.AvailabilityUnknown
}
