package model

// QuoteRequest asks for a delivery fee and ETA ahead of checkout.
type QuoteRequest struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Restaurant string  `json:"restaurant,omitempty"`
	Priority   bool    `json:"priority"`
}

// QuoteResponse carries the computed fee and delivery estimate.
type QuoteResponse struct {
	DistanceKm float64 `json:"distanceKm"`
	FeePhp     float64 `json:"feePhp"`
	Zone       string  `json:"zone"`
	ETA        ETAView `json:"eta"`
}
