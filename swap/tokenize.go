package swap

import (
	"strings"

	"github.com/mtgswap/go-mtgswap/scryfall"
)

// Rules-text function words and generic nouns that carry no signal for
// effect comparison. Loaded once, never mutated.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"to": true, "of": true, "in": true, "on": true, "for": true,
	"with": true, "without": true, "from": true, "into": true,
	"until": true, "as": true, "this": true, "that": true,
	"those": true, "these": true, "it": true, "its": true,
	"their": true, "your": true, "you": true, "they": true,
	"them": true, "each": true, "any": true, "all": true,
	"at": true, "by": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true,
	"if": true, "then": true, "may": true, "can": true,
	"cannot": true, "can't": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true,
	"when": true, "whenever": true, "where": true, "while": true,
	"during": true, "after": true, "before": true,
	"target": true, "targets": true, "player": true, "players": true,
	"opponent": true, "opponents": true, "creature": true,
	"creatures": true, "card": true, "cards": true, "spell": true,
	"spells": true, "ability": true, "abilities": true,
	"control": true, "controls": true, "controlled": true,
	"owner": true, "owners": true, "battlefield": true,
	"graveyard": true, "library": true, "hand": true, "turn": true,
	"end": true, "step": true, "phase": true, "game": true,
	"next": true,
}

var oracleCleaner = strings.NewReplacer(
	"(", " ", ")", " ",
	"[", " ", "]", " ",
	"{", " ", "}", " ",
	",", " ", ".", " ",
	";", " ", ":", " ",
	"!", " ", "?", " ",
)

// OracleTokens reduces a card's rules text to the set of significant
// word tokens used for overlap scoring. Tokens shorter than four
// characters, purely numeric tokens, and stopwords are dropped. A card
// with no oracle text yields an empty set.
func OracleTokens(card *scryfall.Card) map[string]bool {
	tokens := map[string]bool{}
	if card == nil || card.OracleText == "" {
		return tokens
	}

	text := oracleCleaner.Replace(strings.ToLower(card.OracleText))
	for _, token := range strings.Fields(text) {
		if len(token) < 4 || stopWords[token] || isNumeric(token) {
			continue
		}
		tokens[token] = true
	}
	return tokens
}

func isNumeric(token string) bool {
	for _, c := range token {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(token) > 0
}

// Jaccard computes |intersection| / |union| of two token sets, defined
// as 0 when either set is empty.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for token := range a {
		if b[token] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
