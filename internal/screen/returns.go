// Package screen implements the statistical screening pipeline: log
// returns, the normality gate, deviation scoring, and batched orchestration
// over the symbol universe.
package screen

import (
	"math"
)

// LogReturns converts a close-price series into log returns,
// ln(p[t] / p[t-1]). The first point has no predecessor and is dropped.
// A series containing a zero, negative, or NaN price is rejected
// wholesale: the result is empty.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	for _, p := range prices {
		if p <= 0 || math.IsNaN(p) {
			return nil
		}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}
	return returns
}
