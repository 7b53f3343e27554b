package pricing

// DefaultCommissionPct is applied when a restaurant has no configuration row.
const DefaultCommissionPct = 30

// DisplayFromCost converts a restaurant's cost price into the customer-facing
// display price by applying the commission markup.
func DisplayFromCost(cost, pct float64) float64 {
	return cost * (1 + pct/100)
}

// CostFromDisplay inverts DisplayFromCost. When pct <= -100 the divisor would
// be zero or negative, so the display price is returned unchanged.
func CostFromDisplay(display, pct float64) float64 {
	if pct <= -100 {
		return display
	}
	return display / (1 + pct/100)
}
