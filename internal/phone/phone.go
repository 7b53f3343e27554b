// Package phone implements the phone-tail identity heuristic used for guest
// order lookup, cancellation and review submission. It is a deliberate
// low-friction trade-off, not authentication: two customers sharing the same
// local number suffix will collide.
package phone

import "strings"

// tailLength is how many trailing digits are compared when both numbers are
// long enough to make suffix comparison meaningful.
const tailLength = 6

// Normalize strips every non-digit character from a phone number.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Match reports whether two phone numbers identify the same customer.
// Both sides are normalized first. If both have at least 4 digits the last
// 6 digits (or fewer, if either is shorter) are compared, which tolerates
// formatting and country-code variance; otherwise the full strings must be
// equal.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if len(na) >= 4 && len(nb) >= 4 {
		n := min(tailLength, len(na), len(nb))
		return na[len(na)-n:] == nb[len(nb)-n:]
	}
	return na == nb
}
