package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/FrankTrani/Stock-Prediction/internal/errors"
	"github.com/FrankTrani/Stock-Prediction/internal/models"
)

// YahooProvider implements PriceSeriesProvider using the Yahoo Finance
// public chart API. One FetchDaily call fans out per-symbol requests
// across a bounded set of workers.
type YahooProvider struct {
	baseURL     string
	client      *http.Client
	concurrency int
	logger      zerolog.Logger
}

// NewYahooProvider creates a new Yahoo Finance provider.
func NewYahooProvider(baseURL string, timeout time.Duration, concurrency int, logger zerolog.Logger) *YahooProvider {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &YahooProvider{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: timeout},
		concurrency: concurrency,
		logger:      logger,
	}
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				ShortName string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// FetchDaily fetches daily close series for all symbols in the batch.
// Symbols with no data are omitted from the result; a non-nil error means
// the batch as a whole could not be fetched.
func (p *YahooProvider) FetchDaily(ctx context.Context, symbols []string, period string) (*BatchQuotes, error) {
	if len(symbols) == 0 {
		return NewBatchQuotes(nil), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewProviderError("yahoo", "batch aborted", symbols, err)
	}

	series := make(map[string]models.PriceSeries, len(symbols))
	var mu sync.Mutex
	var wg sync.WaitGroup

	workChan := make(chan string, len(symbols))
	for _, symbol := range symbols {
		workChan <- symbol
	}
	close(workChan)

	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range workChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				prices, err := p.fetchChart(ctx, symbol, period)
				if err != nil {
					p.logger.Warn().Err(err).Str("symbol", symbol).Msg("Symbol fetch failed")
					continue
				}
				if len(prices) == 0 {
					continue
				}
				mu.Lock()
				series[symbol] = prices
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewProviderError("yahoo", "batch aborted", symbols, err)
	}

	return NewBatchQuotes(series), nil
}

// fetchChart fetches a single symbol's daily close history.
func (p *YahooProvider) fetchChart(ctx context.Context, symbol, period string) (models.PriceSeries, error) {
	chart, err := p.getChart(ctx, symbol, period)
	if err != nil {
		return nil, err
	}

	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]

	prices := make(models.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		c, ok := toFloat(quote.Close[i])
		if !ok {
			continue // null bars (holidays etc.)
		}
		prices = append(prices, models.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: c,
		})
	}

	sort.Slice(prices, func(i, j int) bool { return prices[i].Date.Before(prices[j].Date) })
	return prices, nil
}

func (p *YahooProvider) getChart(ctx context.Context, symbol, period string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		p.baseURL, url.PathEscape(symbol), url.QueryEscape(period))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d for %s", resp.StatusCode, symbol)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	return &chart, nil
}

// FetchInfo looks up display metadata for one symbol from the chart meta.
// Used by universe enrichment, not by the screening pipeline.
func (p *YahooProvider) FetchInfo(ctx context.Context, symbol string) (models.StockInfo, error) {
	chart, err := p.getChart(ctx, symbol, "1d")
	if err != nil {
		return models.StockInfo{}, err
	}
	if len(chart.Chart.Result) == 0 {
		return models.StockInfo{}, fmt.Errorf("yahoo: no metadata for %s", symbol)
	}
	meta := chart.Chart.Result[0].Meta
	return models.StockInfo{
		Symbol: symbol,
		Name:   meta.ShortName,
	}, nil
}
