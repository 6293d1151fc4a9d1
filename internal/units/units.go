package units

import (
	"errors"
	"strings"
)

// Dimension é a dimensão física de uma unidade de medida.
type Dimension string

const (
	Mass   Dimension = "mass"
	Volume Dimension = "volume"
	Count  Dimension = "count"
)

// Unidades base por dimensão, usadas na comparação de preços.
const (
	BaseMass   = "kg"
	BaseVolume = "L"
	BaseCount  = "un"
)

var ErrUnknownUnit = errors.New("unidade desconhecida")

// Entry descreve uma unidade reconhecida: sua dimensão e o fator de
// conversão para a unidade base da dimensão.
type Entry struct {
	Dimension Dimension
	Factor    float64
}

// BaseUnit retorna a unidade base da dimensão.
func (d Dimension) BaseUnit() string {
	switch d {
	case Mass:
		return BaseMass
	case Volume:
		return BaseVolume
	default:
		return BaseCount
	}
}

// Tabela de tokens reconhecidos. Chaves sempre minúsculas e sem acento;
// a normalização acontece no Lookup.
var table = map[string]Entry{
	// Massa -> kg
	"kg":     {Mass, 1},
	"quilo":  {Mass, 1},
	"quilos": {Mass, 1},
	"kilo":   {Mass, 1},
	"kilos":  {Mass, 1},
	"g":      {Mass, 0.001},
	"gr":     {Mass, 0.001},
	"grama":  {Mass, 0.001},
	"gramas": {Mass, 0.001},
	"mg":     {Mass, 0.000001},

	// Volume -> L
	"l":          {Volume, 1},
	"lt":         {Volume, 1},
	"litro":      {Volume, 1},
	"litros":     {Volume, 1},
	"ml":         {Volume, 0.001},
	"mililitro":  {Volume, 0.001},
	"mililitros": {Volume, 0.001},

	// Contagem -> un
	"un":       {Count, 1},
	"und":      {Count, 1},
	"unid":     {Count, 1},
	"unidade":  {Count, 1},
	"unidades": {Count, 1},
	"dz":       {Count, 12},
	"duzia":    {Count, 12},
	"duzias":   {Count, 12},
}

var accents = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

func normalizeToken(token string) string {
	return accents.Replace(strings.ToLower(strings.TrimSpace(token)))
}

// Lookup resolve um token de unidade (case-insensitive, sem distinção de
// acento, singular/plural/abreviação) para sua entrada na tabela.
// Retorna ErrUnknownUnit quando o token não é reconhecido.
func Lookup(token string) (Entry, error) {
	e, ok := table[normalizeToken(token)]
	if !ok {
		return Entry{}, ErrUnknownUnit
	}
	return e, nil
}

// Known informa se o token resolve na tabela.
func Known(token string) bool {
	_, err := Lookup(token)
	return err == nil
}
