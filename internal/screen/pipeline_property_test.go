package screen

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
	"github.com/FrankTrani/Stock-Prediction/internal/provider"
)

// Property: A run partitions the filtered universe. Every symbol that
// survives the static filter appears in exactly one of the two outputs,
// regardless of batch size or what data the provider returns.
func TestProperty_RunPartitionsFilteredUniverse(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("scored and excluded partition the filtered universe", prop.ForAll(
		func(n, batchSize int, seed int64) bool {
			rng := rand.New(rand.NewSource(seed))

			universe := make([]models.StockInfo, 0, n)
			series := make(map[string]models.PriceSeries)
			for i := 0; i < n; i++ {
				sym := fmt.Sprintf("S%02d", i)
				switch rng.Intn(6) {
				case 0: // suffix-excluded before any fetch
					sym += "W"
				case 1: // no data at the provider
				case 2: // too short
					series[sym] = seriesOf(42)
				case 3: // flat
					series[sym] = seriesOf(50, 50, 50, 50, 50)
				case 4: // wildly non-normal
					series[sym] = seriesOf(100, 100.1, 99.9, 100.2, 99.8, 100.1, 99.9, 100.2, 99.8, 180)
				default: // plausibly normal
					series[sym] = seriesOf(normalishCloses()...)
				}
				universe = append(universe, models.StockInfo{Symbol: sym})
			}

			stub := &provider.StubProvider{Series: series}
			store := &memoryStore{}
			cfg := testScreeningConfig(batchSize)
			p := NewPipeline(stub, store, cfg, zerolog.Nop())

			summary, err := p.Run(context.Background(), universe)
			if err != nil {
				return false
			}

			filtered := FilterUniverse(universe, cfg.Blocklist, cfg.ExcludeSuffixes)
			if len(store.scored)+len(store.excluded) != len(filtered) {
				return false
			}
			if summary.Scored+summary.Excluded != summary.Filtered {
				return false
			}

			seen := make(map[string]int)
			for _, s := range store.scored {
				seen[s.Symbol]++
			}
			for _, e := range store.excluded {
				seen[e.Symbol]++
			}
			for _, info := range filtered {
				if seen[info.Symbol] != 1 {
					return false
				}
			}
			return len(seen) == len(filtered)
		},
		gen.IntRange(1, 40),
		gen.IntRange(1, 10),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// Property: Log returns are a pure function of the price series: the
// result has exactly one fewer element than a valid input, and repeated
// evaluation is bit-identical.
func TestProperty_LogReturnsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("length and determinism over positive prices", prop.ForAll(
		func(n int, seed int64) bool {
			rng := rand.New(rand.NewSource(seed))
			prices := make([]float64, n)
			for i := range prices {
				prices[i] = 1 + rng.Float64()*999
			}

			first := LogReturns(prices)
			second := LogReturns(prices)
			if len(first) != n-1 || len(second) != n-1 {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 60),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// Property: The static filter never lets a blocklisted or suffix-marked
// symbol through, and never invents symbols.
func TestProperty_FilterNeverLeaksExcludedSymbols(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	blocklist := []string{"FB", "BRK.B", "SIVB"}
	suffixes := "WRUP"

	properties.Property("filtered output is a clean subset", prop.ForAll(
		func(n int, seed int64) bool {
			rng := rand.New(rand.NewSource(seed))

			universe := make([]models.StockInfo, 0, n)
			for i := 0; i < n; i++ {
				var sym string
				switch rng.Intn(4) {
				case 0:
					sym = blocklist[rng.Intn(len(blocklist))]
				case 1:
					sym = fmt.Sprintf("T%02d%c", i, suffixes[rng.Intn(len(suffixes))])
				default:
					sym = fmt.Sprintf("T%02dX", i)
				}
				universe = append(universe, models.StockInfo{Symbol: sym})
			}

			members := make(map[string]struct{}, len(universe))
			for _, info := range universe {
				members[info.Symbol] = struct{}{}
			}

			for _, info := range FilterUniverse(universe, blocklist, suffixes) {
				if _, ok := members[info.Symbol]; !ok {
					return false
				}
				for _, b := range blocklist {
					if info.Symbol == b {
						return false
					}
				}
				if len(info.Symbol) >= 2 && strings.ContainsRune(suffixes, rune(info.Symbol[len(info.Symbol)-1])) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 50),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
