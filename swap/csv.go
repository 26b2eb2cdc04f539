package swap

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// The canonical header present in all exported swap files
var ResultsHeader = []string{
	"Quantity", "Card", "Price", "Substitute", "Substitute Price", "Similarity", "Card URL", "Substitute URL",
}

// WriteResultsToCSV renders one row per (entry, candidate) pair, and a
// single bare row for entries without candidates, so no entry is lost
// in the export.
func WriteResultsToCSV(results []EntryResult, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	err := csvWriter.Write(ResultsHeader)
	if err != nil {
		return err
	}

	for _, result := range results {
		price := ""
		if result.Price != nil {
			price = fmt.Sprintf("%0.2f", *result.Price)
		}

		if len(result.Candidates) == 0 {
			err = csvWriter.Write([]string{
				strconv.Itoa(result.Quantity),
				result.Name,
				price,
				"", "", "",
				result.URL,
				"",
			})
			if err != nil {
				return err
			}
			continue
		}

		for _, candidate := range result.Candidates {
			err = csvWriter.Write([]string{
				strconv.Itoa(result.Quantity),
				result.Name,
				price,
				candidate.Card.Name,
				fmt.Sprintf("%0.2f", candidate.Price),
				fmt.Sprintf("%0.f", candidate.Score),
				result.URL,
				candidate.Card.ScryfallURI,
			})
			if err != nil {
				return err
			}
		}
	}

	return csvWriter.Error()
}
