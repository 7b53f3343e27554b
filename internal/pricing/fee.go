package pricing

import "math"

// Policy describes the delivery-fee rules for the single configured zone.
// The per-kilometre rate is one-way; the quote doubles it for the round trip.
type Policy struct {
	ZoneName     string
	MinFeePhp    float64
	PerKmRatePhp float64
	MaxRadiusKm  float64
	Hub          Point
}

// DefaultPolicy returns the fee policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		ZoneName:     "core",
		MinFeePhp:    100,
		PerKmRatePhp: 12.5,
		MaxRadiusKm:  10,
	}
}

// FeeQuote is a computed delivery fee for a given distance.
type FeeQuote struct {
	DistanceKm float64 `json:"distanceKm"`
	FeePhp     float64 `json:"feePhp"`
	Zone       string  `json:"zone"`
}

// Quote computes the delivery fee for a distance in kilometres:
// max(MinFeePhp, round(distance × rate × 2)). The radius cap is not
// enforced here; callers reject out-of-range orders upstream.
func (p Policy) Quote(distanceKm float64) FeeQuote {
	fee := math.Round(distanceKm * p.PerKmRatePhp * 2)
	if fee < p.MinFeePhp {
		fee = p.MinFeePhp
	}
	return FeeQuote{
		DistanceKm: distanceKm,
		FeePhp:     fee,
		Zone:       p.ZoneName,
	}
}

// QuoteBetween computes the fee between a pickup and a dropoff point.
// When pickup is nil the configured hub coordinate is used as fallback.
func (p Policy) QuoteBetween(pickup *Point, dropoff Point) FeeQuote {
	from := p.Hub
	if pickup != nil {
		from = *pickup
	}
	return p.Quote(HaversineKm(from, dropoff))
}
