package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartJSON(symbol string, timestamps []int64, closes []string) string {
	ts := make([]string, len(timestamps))
	for i, t := range timestamps {
		ts[i] = fmt.Sprintf("%d", t)
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {"symbol": %q, "shortName": "%s Inc."},
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [%s]}]}
			}],
			"error": null
		}
	}`, symbol, symbol, strings.Join(ts, ","), strings.Join(closes, ","))
}

func newChartServer(t *testing.T, data map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
		body, ok := data[symbol]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	}))
}

func TestFetchDailyParsesCloses(t *testing.T) {
	day := int64(86400)
	srv := newChartServer(t, map[string]string{
		"AAPL": chartJSON("AAPL",
			[]int64{1700000000, 1700000000 + day, 1700000000 + 2*day},
			[]string{"190.5", "192.1", "191.3"}),
	})
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second, 2, zerolog.Nop())
	quotes, err := p.FetchDaily(context.Background(), []string{"AAPL"}, "1mo")
	require.NoError(t, err)

	series, ok := quotes.Closes("AAPL")
	require.True(t, ok)
	require.Len(t, series, 3)
	assert.Equal(t, []float64{190.5, 192.1, 191.3}, series.Closes())
	assert.True(t, series[0].Date.Before(series[1].Date))
	assert.InDelta(t, 191.3, series.Latest(), 1e-9)
}

func TestFetchDailySkipsNullBars(t *testing.T) {
	day := int64(86400)
	srv := newChartServer(t, map[string]string{
		"MSFT": chartJSON("MSFT",
			[]int64{1700000000, 1700000000 + day, 1700000000 + 2*day, 1700000000 + 3*day},
			[]string{"410.2", "null", "412.8", "null"}),
	})
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second, 2, zerolog.Nop())
	quotes, err := p.FetchDaily(context.Background(), []string{"MSFT"}, "1mo")
	require.NoError(t, err)

	series, ok := quotes.Closes("MSFT")
	require.True(t, ok)
	assert.Equal(t, []float64{410.2, 412.8}, series.Closes())
}

func TestFetchDailyOmitsFailedSymbols(t *testing.T) {
	srv := newChartServer(t, map[string]string{
		"AAPL": chartJSON("AAPL", []int64{1700000000}, []string{"190.5"}),
	})
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second, 4, zerolog.Nop())
	quotes, err := p.FetchDaily(context.Background(), []string{"AAPL", "NOPE"}, "1mo")
	require.NoError(t, err)

	_, ok := quotes.Closes("AAPL")
	assert.True(t, ok)
	_, ok = quotes.Closes("NOPE")
	assert.False(t, ok)
	assert.Equal(t, 1, quotes.Len())
}

func TestFetchDailyEmptyWhenNothingResolves(t *testing.T) {
	srv := newChartServer(t, nil)
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second, 2, zerolog.Nop())
	quotes, err := p.FetchDaily(context.Background(), []string{"AAA", "BBB"}, "1mo")
	require.NoError(t, err)
	assert.True(t, quotes.Empty())
}

func TestFetchDailyCanceledContext(t *testing.T) {
	srv := newChartServer(t, nil)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewYahooProvider(srv.URL, 5*time.Second, 2, zerolog.Nop())
	_, err := p.FetchDaily(ctx, []string{"AAPL"}, "1mo")
	assert.Error(t, err)
}

func TestFetchDailyNoSymbols(t *testing.T) {
	p := NewYahooProvider("http://unused", time.Second, 2, zerolog.Nop())
	quotes, err := p.FetchDaily(context.Background(), nil, "1mo")
	require.NoError(t, err)
	assert.True(t, quotes.Empty())
}

func TestFetchInfo(t *testing.T) {
	srv := newChartServer(t, map[string]string{
		"AAPL": chartJSON("AAPL", []int64{1700000000}, []string{"190.5"}),
	})
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second, 2, zerolog.Nop())
	info, err := p.FetchInfo(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", info.Symbol)
	assert.Equal(t, "AAPL Inc.", info.Name)
}

func TestFetchInfoUnknownSymbol(t *testing.T) {
	srv := newChartServer(t, nil)
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second, 2, zerolog.Nop())
	_, err := p.FetchInfo(context.Background(), "NOPE")
	assert.Error(t, err)
}
