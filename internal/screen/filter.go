package screen

import (
	"strings"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
)

// FilterUniverse removes blocklisted symbols and symbols whose trailing
// character marks a non-common-stock instrument class (warrants, rights,
// units, preferred). Applied once, before any provider calls.
func FilterUniverse(universe []models.StockInfo, blocklist []string, excludeSuffixes string) []models.StockInfo {
	blocked := make(map[string]struct{}, len(blocklist))
	for _, s := range blocklist {
		blocked[strings.ToUpper(s)] = struct{}{}
	}

	filtered := make([]models.StockInfo, 0, len(universe))
	for _, info := range universe {
		if _, ok := blocked[info.Symbol]; ok {
			continue
		}
		if hasExcludedSuffix(info.Symbol, excludeSuffixes) {
			continue
		}
		filtered = append(filtered, info)
	}
	return filtered
}

// hasExcludedSuffix reports whether the symbol ends in one of the excluded
// trailing characters. Single-character symbols never match: the suffix
// must follow at least one other character.
func hasExcludedSuffix(symbol, suffixes string) bool {
	if len(symbol) < 2 || suffixes == "" {
		return false
	}
	return strings.ContainsRune(suffixes, rune(symbol[len(symbol)-1]))
}
