package domain

import "math"

// APIUsage is a point-in-time reading of the org's daily API quota.
type APIUsage struct {
	// Used is the number of API calls consumed.
	Used int

	// Total is the daily API call allowance.
	Total int
}

// Percent returns the consumed fraction as a percentage rounded to
// two decimal places, or 0 when the total is unknown.
func (u APIUsage) Percent() float64 {
	if u.Total <= 0 {
		return 0
	}
	return math.Round(float64(u.Used)/float64(u.Total)*100*100) / 100
}
