package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePoint is a mid-rate for a single day: PLN per one unit of currency.
type RatePoint struct {
	Date time.Time
	Rate decimal.Decimal
}

// CollapseByDate drops points that repeat an earlier date, keeping the later
// value at the position of the first occurrence.
func CollapseByDate(points []RatePoint) []RatePoint {
	idx := make(map[time.Time]int, len(points))
	out := make([]RatePoint, 0, len(points))
	for _, p := range points {
		d := DateOf(p.Date)
		if i, ok := idx[d]; ok {
			out[i].Rate = p.Rate
			continue
		}
		idx[d] = len(out)
		out = append(out, RatePoint{Date: d, Rate: p.Rate})
	}
	return out
}
