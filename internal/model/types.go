package model

// Availability indica a disponibilidade do produto no mercado.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
	AvailabilityUnknown     Availability = "unknown"
)

// NormalizationStatus indica o resultado da normalização de um anúncio.
type NormalizationStatus string

const (
	// StatusSuccess: preço e quantidade (com multiplicador) extraídos sem ambiguidade.
	StatusSuccess NormalizationStatus = "success"
	// StatusPartial: quantidade extraída, mas multiplicador ausente ou ambíguo.
	StatusPartial NormalizationStatus = "partial"
	// StatusFailed: preço ou quantidade não extraíveis; anúncio não comparável.
	StatusFailed NormalizationStatus = "failed"
)
