package provider

import (
	"context"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
)

// StubProvider serves canned batch responses. Used in tests and dry runs.
type StubProvider struct {
	// Series holds the data returned for every batch, keyed by symbol.
	Series map[string]models.PriceSeries
	// Err, when set, fails every batch.
	Err error
	// Calls records the symbol batches requested, in order.
	Calls [][]string
}

// FetchDaily returns the canned series for the requested symbols.
func (s *StubProvider) FetchDaily(ctx context.Context, symbols []string, period string) (*BatchQuotes, error) {
	batch := append([]string(nil), symbols...)
	s.Calls = append(s.Calls, batch)

	if s.Err != nil {
		return nil, s.Err
	}

	series := make(map[string]models.PriceSeries)
	for _, symbol := range symbols {
		if prices, ok := s.Series[symbol]; ok {
			series[symbol] = prices
		}
	}
	return NewBatchQuotes(series), nil
}
