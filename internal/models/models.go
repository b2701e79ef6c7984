// Package models provides domain models for the stock screening application.
package models

import (
	"time"
)

// StockInfo identifies one instrument in the symbol universe.
type StockInfo struct {
	Symbol string
	Name   string
	Sector string
}

// PricePoint is one daily closing observation.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is a date-ascending sequence of closing prices for one symbol.
type PriceSeries []PricePoint

// Closes returns the raw closing prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// Latest returns the most recent closing price, or 0 if the series is empty.
func (s PriceSeries) Latest() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Close
}

// ExclusionReason records why a symbol was excluded from scoring.
type ExclusionReason string

const (
	ReasonProviderUnavailable ExclusionReason = "provider_unavailable"
	ReasonSymbolDataMissing   ExclusionReason = "symbol_data_missing"
	ReasonInsufficientHistory ExclusionReason = "insufficient_history"
	ReasonDegenerateSeries    ExclusionReason = "degenerate_series"
	ReasonNotNormal           ExclusionReason = "not_normal"
	ReasonEvaluationError     ExclusionReason = "evaluation_error"
)

// ScoredStock is a symbol whose returns passed the normality gate,
// with the standardized deviation of its latest close.
type ScoredStock struct {
	Symbol string
	Name   string
	ZScore float64
}

// ExcludedStock is a symbol dropped from scoring, with the reason.
type ExcludedStock struct {
	Symbol string
	Name   string
	Sector string
	Reason ExclusionReason
}

// RunSummary describes the outcome of a full screening run.
type RunSummary struct {
	Universe  int
	Filtered  int
	Scored    int
	Excluded  int
	Batches   int
	StartedAt time.Time
	Duration  time.Duration
}
