package swap

import (
	"github.com/montanaflynn/stats"
)

// Summary aggregates the price profile of an analyzed deck and the
// savings available by taking the top-ranked substitute for every
// entry that has one.
type Summary struct {
	Entries        int     `json:"entries"`
	Priced         int     `json:"priced"`
	Failed         int     `json:"failed"`
	TotalPrice     float64 `json:"total_price"`
	MedianPrice    float64 `json:"median_price"`
	BestCaseSaving float64 `json:"best_case_saving"`
}

// Summarize computes deck-level statistics from per-entry results.
// Quantities multiply both totals and savings. Entries with no price
// contribute only to the entry count.
func Summarize(results []EntryResult) Summary {
	summary := Summary{Entries: len(results)}

	var prices []float64
	for _, result := range results {
		if result.Error != "" {
			summary.Failed++
		}
		if result.Price == nil {
			continue
		}
		summary.Priced++
		prices = append(prices, *result.Price)
		summary.TotalPrice += *result.Price * float64(result.Quantity)

		if len(result.Candidates) > 0 {
			saving := *result.Price - result.Candidates[0].Price
			if saving > 0 {
				summary.BestCaseSaving += saving * float64(result.Quantity)
			}
		}
	}

	if len(prices) > 0 {
		median, err := stats.Median(prices)
		if err == nil {
			summary.MedianPrice = median
		}
	}

	return summary
}
