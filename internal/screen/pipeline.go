package screen

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/FrankTrani/Stock-Prediction/internal/config"
	apperrors "github.com/FrankTrani/Stock-Prediction/internal/errors"
	"github.com/FrankTrani/Stock-Prediction/internal/logging"
	"github.com/FrankTrani/Stock-Prediction/internal/models"
	"github.com/FrankTrani/Stock-Prediction/internal/provider"
)

// ResultStore persists the two output collections of a run.
type ResultStore interface {
	AppendScored(ctx context.Context, scored []models.ScoredStock) error
	AppendExcluded(ctx context.Context, excluded []models.ExcludedStock) error
}

// Pipeline drives the end-to-end screen over a symbol universe: static
// filtering, batched provider calls, per-symbol evaluation, and a single
// bulk append of both result sets at the end of the run. Batches are
// processed sequentially; a failed batch excludes exactly its own symbols
// and the run continues. No retries anywhere.
type Pipeline struct {
	provider   provider.PriceSeriesProvider
	store      ResultStore
	classifier *Classifier
	cfg        config.ScreeningConfig
	logger     zerolog.Logger
	progress   func(done, total int)
}

// NewPipeline creates a screening pipeline.
func NewPipeline(p provider.PriceSeriesProvider, rs ResultStore, cfg config.ScreeningConfig, logger zerolog.Logger) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Pipeline{
		provider:   p,
		store:      rs,
		classifier: NewClassifier(cfg.SignificanceLevel),
		cfg:        cfg,
		logger:     logger,
	}
}

// SetProgress installs a callback invoked after each symbol is classified.
func (p *Pipeline) SetProgress(fn func(done, total int)) {
	p.progress = fn
}

// Run screens the universe and persists the results. Every symbol that
// survives the static filter lands in exactly one of the two outputs.
// The only error paths are an empty universe and a store failure at the
// final append; provider and evaluation failures become exclusions.
func (p *Pipeline) Run(ctx context.Context, universe []models.StockInfo) (*models.RunSummary, error) {
	if len(universe) == 0 {
		return nil, apperrors.ErrNoSymbols
	}

	started := time.Now()
	filtered := FilterUniverse(universe, p.cfg.Blocklist, p.cfg.ExcludeSuffixes)
	p.logger.Info().
		Int("universe", len(universe)).
		Int("filtered", len(filtered)).
		Int("batch_size", p.cfg.BatchSize).
		Msg("Screening run started")

	var (
		scored   []models.ScoredStock
		excluded []models.ExcludedStock
		batches  int
		done     int
	)

	for start := 0; start < len(filtered); start += p.cfg.BatchSize {
		end := start + p.cfg.BatchSize
		if end > len(filtered) {
			end = len(filtered)
		}
		batch := filtered[start:end]
		batches++

		quotes := p.fetchBatch(ctx, batch)
		if quotes == nil || quotes.Empty() {
			// Whole-batch fail-fast: no partial recovery within a failed batch.
			for _, info := range batch {
				excluded = append(excluded, models.ExcludedStock{
					Symbol: info.Symbol,
					Name:   info.Name,
					Sector: info.Sector,
					Reason: models.ReasonProviderUnavailable,
				})
				done++
				p.report(done, len(filtered))
			}
			logging.LogBatch(p.logger, batches, len(batch), true)
			p.pace()
			continue
		}

		for _, info := range batch {
			ev := p.evaluateSymbol(info, quotes)
			if ev.scored != nil {
				scored = append(scored, *ev.scored)
				logging.LogScored(p.logger, info.Symbol, ev.scored.ZScore)
			} else {
				excluded = append(excluded, *ev.excluded)
				logging.LogExcluded(p.logger, info.Symbol, string(ev.excluded.Reason))
			}
			done++
			p.report(done, len(filtered))
		}

		logging.LogBatch(p.logger, batches, len(batch), false)
		p.pace()
	}

	if err := p.store.AppendScored(ctx, scored); err != nil {
		return nil, apperrors.Wrap(err, "persisting scored results")
	}
	if err := p.store.AppendExcluded(ctx, excluded); err != nil {
		return nil, apperrors.Wrap(err, "persisting excluded results")
	}

	summary := &models.RunSummary{
		Universe:  len(universe),
		Filtered:  len(filtered),
		Scored:    len(scored),
		Excluded:  len(excluded),
		Batches:   batches,
		StartedAt: started,
		Duration:  time.Since(started),
	}
	p.logger.Info().
		Int("scored", summary.Scored).
		Int("excluded", summary.Excluded).
		Int("batches", summary.Batches).
		Dur("duration", summary.Duration).
		Msg("Screening run complete")
	return summary, nil
}

// fetchBatch issues the single blocking provider call for one batch.
// A nil result signals the whole batch failed.
func (p *Pipeline) fetchBatch(ctx context.Context, batch []models.StockInfo) *provider.BatchQuotes {
	symbols := make([]string, len(batch))
	for i, info := range batch {
		symbols[i] = info.Symbol
	}

	quotes, err := p.provider.FetchDaily(ctx, symbols, p.cfg.Period)
	if err != nil {
		p.logger.Warn().Err(err).Strs("symbols", symbols).Msg("Batch fetch failed")
		return nil
	}
	return quotes
}

// evaluation is the tagged per-symbol outcome: exactly one field is set.
type evaluation struct {
	scored   *models.ScoredStock
	excluded *models.ExcludedStock
}

func exclude(info models.StockInfo, reason models.ExclusionReason) evaluation {
	return evaluation{excluded: &models.ExcludedStock{
		Symbol: info.Symbol,
		Name:   info.Name,
		Sector: info.Sector,
		Reason: reason,
	}}
}

// evaluateSymbol classifies one symbol from a successful batch. Unexpected
// failures are recovered here so one bad symbol cannot take down the run.
func (p *Pipeline) evaluateSymbol(info models.StockInfo, quotes *provider.BatchQuotes) (ev evaluation) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Str("symbol", info.Symbol).
				Interface("panic", r).
				Msg("Unexpected evaluation error")
			ev = exclude(info, models.ReasonEvaluationError)
		}
	}()

	series, ok := quotes.Closes(info.Symbol)
	if !ok {
		return exclude(info, models.ReasonSymbolDataMissing)
	}
	if len(series) < 2 {
		return exclude(info, models.ReasonInsufficientHistory)
	}

	prices := series.Closes()
	returns := LogReturns(prices)
	if len(returns) == 0 {
		return exclude(info, models.ReasonDegenerateSeries)
	}
	if len(returns) < 3 {
		return exclude(info, models.ReasonInsufficientHistory)
	}

	if normal, reason := p.classifier.Verdict(returns); !normal {
		return exclude(info, reason)
	}

	mean := stat.Mean(prices, nil)
	stddev := stat.StdDev(prices, nil)
	z, defined := ZScore(series.Latest(), mean, stddev)
	if !defined {
		return exclude(info, models.ReasonDegenerateSeries)
	}

	return evaluation{scored: &models.ScoredStock{
		Symbol: info.Symbol,
		Name:   info.Name,
		ZScore: z,
	}}
}

func (p *Pipeline) report(done, total int) {
	if p.progress != nil {
		p.progress(done, total)
	}
}

// pace sleeps the fixed inter-batch delay.
func (p *Pipeline) pace() {
	if p.cfg.Pacing > 0 {
		time.Sleep(p.cfg.Pacing)
	}
}
