// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
)

// DataStore defines the interface for the screening result store.
type DataStore interface {
	// Schema
	InitSchema(ctx context.Context) error
	ResetRun(ctx context.Context) error

	// Symbol universe
	AddSymbols(ctx context.Context, symbols []models.StockInfo) error
	UpdateSymbolInfo(ctx context.Context, info models.StockInfo) error
	ListSymbols(ctx context.Context) ([]models.StockInfo, error)

	// Run results (bulk, append-only; symbol is the natural key)
	AppendScored(ctx context.Context, scored []models.ScoredStock) error
	AppendExcluded(ctx context.Context, excluded []models.ExcludedStock) error

	// Reporting
	Candidates(ctx context.Context, maxZScore float64) ([]models.ScoredStock, error)

	// Lifecycle
	Close() error
}
