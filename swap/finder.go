package swap

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mtgswap/go-mtgswap/scryfall"
)

const (
	// Hard cap on the candidate pool fetched per search.
	defaultPoolSize = 180

	DefaultMaxPrice   = 10.0
	DefaultMaxResults = 12
)

type LogCallbackFunc func(format string, a ...interface{})

// Catalog is the slice of the card catalog the finder depends on.
// *scryfall.Client satisfies it.
type Catalog interface {
	LookupByName(ctx context.Context, name string) (*scryfall.Card, error)
	SearchMany(ctx context.Context, query string, maxCards int) ([]scryfall.Card, error)
}

// SubstituteOptions bound a single substitute search.
type SubstituteOptions struct {
	// Reject candidates priced above this cap. Non-finite or
	// non-positive values fall back to DefaultMaxPrice.
	MaxPrice float64

	// Maximum number of ranked candidates returned.
	MaxResults int

	// Drop cards on the reserved list from the pool.
	ExcludeReserved bool
}

// ScoredCandidate pairs a pooled card with its cheapest price and its
// similarity score against the target. Ordering key is score
// descending, then price ascending.
type ScoredCandidate struct {
	Card  scryfall.Card `json:"card"`
	Price float64       `json:"price"`
	Score float64       `json:"score"`
}

// Finder runs substitute searches against a catalog.
type Finder struct {
	LogCallback LogCallbackFunc

	client   Catalog
	poolSize int
}

func NewFinder(client Catalog) *Finder {
	return &Finder{
		client:   client,
		poolSize: defaultPoolSize,
	}
}

func (f *Finder) printf(format string, a ...interface{}) {
	if f.LogCallback != nil {
		f.LogCallback("[SWAP] "+format, a...)
	}
}

// IsSameCardOrPrinting reports whether two cards are the same logical
// card: a shared oracle identity, a shared prints group, or equal
// normalized names all count, so alternate printings and name variants
// are caught.
func IsSameCardOrPrinting(target, candidate *scryfall.Card) bool {
	if target == nil || candidate == nil {
		return false
	}
	if target.OracleId != "" && target.OracleId == candidate.OracleId {
		return true
	}
	if target.PrintsSearchURI != "" && target.PrintsSearchURI == candidate.PrintsSearchURI {
		return true
	}
	return NormalizeName(target.Name) == NormalizeName(candidate.Name)
}

func colorIdentityQuery(identity []string) string {
	if len(identity) == 0 {
		return "id:c"
	}
	return "id<=" + strings.ToLower(strings.Join(identity, ""))
}

// BuildQuery renders the catalog filter expression for one substitute
// search: commander legality, paper availability, color identity as a
// subset of the target's, a positive price window, and exclusion of the
// target itself by oracle identity and by exact name.
func (f *Finder) BuildQuery(target *scryfall.Card, opts SubstituteOptions) string {
	parts := []string{
		"f:commander",
		"game:paper",
		colorIdentityQuery(target.ColorIdentity),
		fmt.Sprintf("usd<=%g", opts.MaxPrice),
		"usd>0",
	}

	if target.OracleId != "" {
		parts = append(parts, "-oracleid:"+target.OracleId)
	}
	parts = append(parts, `!"`+strings.ReplaceAll(target.Name, `"`, `\"`)+`"`)

	if opts.ExcludeReserved {
		parts = append(parts, "-is:reserved")
	}

	return strings.Join(parts, " ")
}

// FindSubstitutes fetches a candidate pool for the target and returns
// the ranked, deduplicated list of cheaper functional replacements. A
// zero-candidate outcome is a successful empty list; only a failed pool
// fetch returns an error.
func (f *Finder) FindSubstitutes(ctx context.Context, target *scryfall.Card, opts SubstituteOptions) ([]ScoredCandidate, error) {
	if math.IsNaN(opts.MaxPrice) || math.IsInf(opts.MaxPrice, 0) || opts.MaxPrice <= 0 {
		opts.MaxPrice = DefaultMaxPrice
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}

	query := f.BuildQuery(target, opts)
	f.printf("Searching substitutes for %s: %s", target.Name, query)

	pool, err := f.client.SearchMany(ctx, query, f.poolSize)
	if err != nil {
		return nil, fmt.Errorf("substitute search for %q: %w", target.Name, err)
	}
	f.printf("Pool of %d candidates for %s", len(pool), target.Name)

	targetTokens := OracleTokens(target)

	// The query already excludes the target by oracle id and name, but
	// alternate printings and name variants can slip through, so the
	// in-process identity check is the authoritative one.
	var scored []ScoredCandidate
	for i := range pool {
		candidate := &pool[i]
		if IsSameCardOrPrinting(target, candidate) {
			continue
		}
		price, ok := candidate.LowestUSD()
		if !ok || price > opts.MaxPrice {
			continue
		}
		scored = append(scored, ScoredCandidate{
			Card:  pool[i],
			Price: price,
			Score: Similarity(target, candidate, targetTokens),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Price < scored[j].Price
	})

	seen := map[string]bool{}
	var out []ScoredCandidate
	for _, item := range scored {
		key := item.Card.OracleId
		if key == "" {
			key = item.Card.PrintsSearchURI
		}
		if key == "" {
			key = item.Card.Id
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		if NormalizeName(item.Card.Name) == NormalizeName(target.Name) {
			continue
		}

		out = append(out, item)
		if len(out) >= opts.MaxResults {
			break
		}
	}

	return out, nil
}
