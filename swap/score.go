package swap

import (
	"math"
	"strings"

	"github.com/mtgswap/go-mtgswap/scryfall"
)

// Checked in priority order, so a multi-keyword type line is still
// classified exactly once.
var typeFamilies = []string{
	"creature",
	"instant",
	"sorcery",
	"enchantment",
	"artifact",
	"planeswalker",
	"land",
}

// TypeFamily classifies a type line into its primary card family, or
// "other" when no known keyword appears.
func TypeFamily(typeLine string) string {
	line := strings.ToLower(typeLine)
	for _, family := range typeFamilies {
		if strings.Contains(line, family) {
			return family
		}
	}
	return "other"
}

// Similarity scores how close a candidate is to the target card. The
// score is the unweighted sum of three signals: oracle token overlap
// (jaccard scaled to 0-100), a flat +10 for a matching type family,
// and up to +10 for mana value closeness, fading to zero at a
// difference of five. Scores are comparable only within one ranking
// pass.
func Similarity(target, candidate *scryfall.Card, targetTokens map[string]bool) float64 {
	score := Jaccard(targetTokens, OracleTokens(candidate)) * 100

	if TypeFamily(target.TypeLine) == TypeFamily(candidate.TypeLine) {
		score += 10
	}

	if target.ManaValue != nil && candidate.ManaValue != nil {
		diff := math.Abs(*target.ManaValue - *candidate.ManaValue)
		score += math.Max(0, 10-diff*2)
	}

	return score
}
