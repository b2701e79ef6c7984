package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
)

func universeOf(symbols ...string) []models.StockInfo {
	infos := make([]models.StockInfo, len(symbols))
	for i, s := range symbols {
		infos[i] = models.StockInfo{Symbol: s}
	}
	return infos
}

func symbolsOf(infos []models.StockInfo) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Symbol
	}
	return out
}

func TestFilterUniverse(t *testing.T) {
	blocklist := []string{"FB", "BRK.B", "SIVB"}

	tests := []struct {
		name     string
		universe []string
		want     []string
	}{
		{
			name:     "blocklisted symbols removed",
			universe: []string{"AAPL", "FB", "MSFT", "SIVB"},
			want:     []string{"AAPL", "MSFT"},
		},
		{
			name:     "instrument class suffixes removed",
			universe: []string{"AAPL", "OCAXW", "GLACR", "AGBAU", "TACAP"},
			want:     []string{"AAPL"},
		},
		{
			name:     "single letter symbols survive suffix check",
			universe: []string{"W", "R", "U", "P", "F"},
			want:     []string{"W", "R", "U", "P", "F"},
		},
		{
			name:     "order preserved",
			universe: []string{"MSFT", "AAPL", "GOOG"},
			want:     []string{"MSFT", "AAPL", "GOOG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterUniverse(universeOf(tt.universe...), blocklist, "WRUP")
			assert.Equal(t, tt.want, symbolsOf(got))
		})
	}
}

func TestFilterUniverseNoRules(t *testing.T) {
	universe := universeOf("AAPL", "OCAXW", "FB")
	got := FilterUniverse(universe, nil, "")
	assert.Equal(t, universe, got)
}
