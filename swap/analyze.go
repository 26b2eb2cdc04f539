package swap

import (
	"context"
	"math"
	"sync"
)

const defaultConcurrency = 4

// AnalyzeOptions control one full-deck analysis pass.
type AnalyzeOptions struct {
	// Entries priced at or above this value get a substitute search.
	Threshold float64

	// Maximum substitutes reported per entry.
	MaxCandidates int

	// Price cap applied when the decklist holds a single entry. A
	// single-card run searches below this user-set cap instead of
	// below the card's own price.
	SinglePriceCap float64

	// Drop reserved-list cards from candidate pools.
	ExcludeReserved bool

	// Number of entries resolved in parallel. Pagination within each
	// entry's pool fetch remains sequential.
	MaxConcurrency int
}

// EntryResult is the outcome for one decklist entry. A failed lookup or
// substitute search is recorded on the entry without aborting the rest
// of the batch.
type EntryResult struct {
	Quantity      int               `json:"quantity"`
	Name          string            `json:"name"`
	TypeLine      string            `json:"type_line,omitempty"`
	ManaValue     *float64          `json:"mana_value,omitempty"`
	ColorIdentity []string          `json:"color_identity,omitempty"`
	Price         *float64          `json:"price,omitempty"`
	ImageURL      string            `json:"image_url,omitempty"`
	URL           string            `json:"url,omitempty"`
	Candidates    []ScoredCandidate `json:"candidates"`
	Error         string            `json:"error,omitempty"`
}

// AnalyzeDeck resolves every entry against the catalog and searches for
// cheaper substitutes where the entry's price warrants it. Results
// preserve decklist order. With more than one entry, substitutes are
// bounded below the entry's own price; a single-entry list is bounded
// by the configured SinglePriceCap instead.
func (f *Finder) AnalyzeDeck(ctx context.Context, entries []Entry, opts AnalyzeOptions) []EntryResult {
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = DefaultMaxResults
	}
	if opts.SinglePriceCap <= 0 || math.IsNaN(opts.SinglePriceCap) || math.IsInf(opts.SinglePriceCap, 0) {
		opts.SinglePriceCap = DefaultMaxPrice
	}
	concurrency := opts.MaxConcurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	singleMode := len(entries) == 1

	results := make([]EntryResult, len(entries))
	indexes := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				results[idx] = f.analyzeEntry(ctx, entries[idx], opts, singleMode)
			}
		}()
	}

	for idx := range entries {
		f.printf("Fetching %d/%d: %s", idx+1, len(entries), entries[idx].Name)
		indexes <- idx
	}
	close(indexes)
	wg.Wait()

	return results
}

func (f *Finder) analyzeEntry(ctx context.Context, entry Entry, opts AnalyzeOptions, singleMode bool) EntryResult {
	card, err := f.client.LookupByName(ctx, entry.Name)
	if err != nil {
		f.printf("%s", err.Error())
		return EntryResult{
			Quantity: entry.Quantity,
			Name:     entry.Name,
			Error:    err.Error(),
		}
	}

	result := EntryResult{
		Quantity:      entry.Quantity,
		Name:          card.Name,
		TypeLine:      card.TypeLine,
		ManaValue:     card.ManaValue,
		ColorIdentity: card.ColorIdentity,
		ImageURL:      card.ImageURL(),
		URL:           card.ScryfallURI,
	}

	price, havePrice := card.LowestUSD()
	if havePrice {
		result.Price = &price
	}

	var maxPrice float64
	switch {
	case singleMode:
		maxPrice = opts.SinglePriceCap
	case havePrice && price >= opts.Threshold:
		// Bound strictly below the card's own price so a substitute
		// is always an actual saving.
		maxPrice = math.Max(0.25, price-0.01)
	default:
		return result
	}

	candidates, err := f.FindSubstitutes(ctx, card, SubstituteOptions{
		MaxPrice:        maxPrice,
		MaxResults:      opts.MaxCandidates,
		ExcludeReserved: opts.ExcludeReserved,
	})
	if err != nil {
		f.printf("%s", err.Error())
		result.Error = err.Error()
		return result
	}

	result.Candidates = candidates
	return result
}
