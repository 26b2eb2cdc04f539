package swap

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/mtgswap/go-mtgswap/scryfall"
)

func price(value float64) *float64 {
	return &value
}

var sampleResults = []EntryResult{
	{
		Quantity: 1,
		Name:     "Rhystic Study",
		Price:    price(35),
		URL:      "https://scryfall.com/card/rhystic-study",
		Candidates: []ScoredCandidate{
			{
				Card:  scryfall.Card{Name: "Curious Obsession", ScryfallURI: "https://scryfall.com/card/curious-obsession"},
				Price: 2.5,
				Score: 42,
			},
			{
				Card:  scryfall.Card{Name: "Mystic Remora"},
				Price: 4,
				Score: 40,
			},
		},
	},
	{
		Quantity: 4,
		Name:     "Island",
		Price:    price(0.10),
	},
	{
		Quantity: 1,
		Name:     "No Such Card",
		Error:    `lookup failed for "No Such Card": status code 404`,
	},
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleResults)

	if summary.Entries != 3 || summary.Priced != 2 || summary.Failed != 1 {
		t.Errorf("FAIL: Unexpected counts: %+v", summary)
	}
	if math.Abs(summary.TotalPrice-35.4) > 1e-9 {
		t.Errorf("FAIL: Expected total 35.40 got %f", summary.TotalPrice)
	}
	if math.Abs(summary.MedianPrice-17.55) > 1e-9 {
		t.Errorf("FAIL: Expected median 17.55 got %f", summary.MedianPrice)
	}
	// Only the top-ranked candidate counts: (35 - 2.5) * 1
	if math.Abs(summary.BestCaseSaving-32.5) > 1e-9 {
		t.Errorf("FAIL: Expected saving 32.5 got %f", summary.BestCaseSaving)
	}
}

func TestWriteResultsToCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResultsToCSV(sampleResults, &buf)
	if err != nil {
		t.Fatalf("FAIL: Unexpected error: %s", err.Error())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Header + two candidate rows + two bare rows
	if len(lines) != 5 {
		t.Fatalf("FAIL: Expected 5 lines got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != strings.Join(ResultsHeader, ",") {
		t.Errorf("FAIL: Unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Curious Obsession") || !strings.Contains(lines[1], "2.50") {
		t.Errorf("FAIL: Missing candidate row: %s", lines[1])
	}
	if !strings.Contains(lines[3], "Island") {
		t.Errorf("FAIL: Entries without candidates keep a row: %s", lines[3])
	}
}
