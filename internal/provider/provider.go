// Package provider supplies daily price histories for batches of symbols.
package provider

import (
	"context"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
)

// PriceSeriesProvider fetches daily close histories for a batch of symbols
// over a trailing window. Implementations may parallelize per-symbol I/O
// internally; the caller issues one blocking call per batch.
type PriceSeriesProvider interface {
	FetchDaily(ctx context.Context, symbols []string, period string) (*BatchQuotes, error)
}

// BatchQuotes is the result of one batch fetch: a table of per-symbol
// daily close series. Symbols the provider had no data for are absent.
type BatchQuotes struct {
	series map[string]models.PriceSeries
}

// NewBatchQuotes creates a BatchQuotes from per-symbol series.
func NewBatchQuotes(series map[string]models.PriceSeries) *BatchQuotes {
	if series == nil {
		series = make(map[string]models.PriceSeries)
	}
	return &BatchQuotes{series: series}
}

// Closes returns the close series for a symbol and whether it was present.
func (b *BatchQuotes) Closes(symbol string) (models.PriceSeries, bool) {
	s, ok := b.series[symbol]
	return s, ok
}

// Empty reports whether the batch contains no data at all.
func (b *BatchQuotes) Empty() bool {
	return len(b.series) == 0
}

// Len returns the number of symbols with data in the batch.
func (b *BatchQuotes) Len() int {
	return len(b.series)
}
