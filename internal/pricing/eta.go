package pricing

import "math"

// ETARange is a customer-facing delivery estimate in minutes.
// Display only; nothing schedules or dispatches off it.
type ETARange struct {
	MinMinutes int `json:"minMinutes"`
	MaxMinutes int `json:"maxMinutes"`
}

// EstimateETA returns the estimated delivery window for a distance.
// Prep 10-15 minutes with priority, 15-22 without; travel 2-3 minutes
// per kilometre; fixed buffer of 5-12 minutes on top.
func EstimateETA(distanceKm float64, priority bool) ETARange {
	prepMin, prepMax := 15, 22
	if priority {
		prepMin, prepMax = 10, 15
	}

	travelMin := int(math.Floor(distanceKm * 2))
	travelMax := int(math.Ceil(distanceKm * 3))

	return ETARange{
		MinMinutes: prepMin + travelMin + 5,
		MaxMinutes: prepMax + travelMax + 12,
	}
}
