package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/scizorman/go-ndjson"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mtgswap/go-mtgswap/deckimport"
	"github.com/mtgswap/go-mtgswap/scryfall"
	"github.com/mtgswap/go-mtgswap/swap"
)

var GlobalLogCallback swap.LogCallbackFunc = log.Printf

var MaxConcurrency int

func init() {
	MaxConcurrency, _ = strconv.Atoi(os.Getenv("MAX_CONCURRENCY"))
}

func loadDecklist(deckPath, deckURL string) (string, error) {
	if deckURL != "" {
		log.Println("Importing deck from", deckURL)
		return deckimport.NewImporter().ImportFromURL(context.Background(), deckURL)
	}

	if deckPath == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(deckPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func dump(results []swap.EntryResult, outputPath, format string) error {
	var writer io.WriteCloser = os.Stdout
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	switch format {
	case "csv":
		return swap.WriteResultsToCSV(results, writer)
	case "ndjson":
		output, err := ndjson.Marshal(results)
		if err != nil {
			return err
		}
		_, err = writer.Write(output)
		return err
	case "json":
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	return fmt.Errorf("invalid format %q", format)
}

func report(results []swap.EntryResult) {
	for _, result := range results {
		price := "N/A"
		if result.Price != nil {
			price = fmt.Sprintf("$%0.2f", *result.Price)
		}
		fmt.Printf("%dx %s (%s)\n", result.Quantity, result.Name, price)

		if result.Error != "" {
			fmt.Println("  !", result.Error)
		}
		for _, candidate := range result.Candidates {
			fmt.Printf("  - %s ~$%0.2f similarity %0.f\n",
				candidate.Card.Name, candidate.Price, candidate.Score)
		}
	}

	summary := swap.Summarize(results)
	fmt.Printf("\n%d entries, %d priced, %d failed\n", summary.Entries, summary.Priced, summary.Failed)
	fmt.Printf("Deck total $%0.2f, median card $%0.2f, best-case saving $%0.2f\n",
		summary.TotalPrice, summary.MedianPrice, summary.BestCaseSaving)
}

func run() int {
	deckOpt := flag.String("deck", "", "Path to a decklist file, or - for stdin")
	urlOpt := flag.String("url", "", "Archidekt or Moxfield deck URL or id to import")

	thresholdOpt := flag.Float64("threshold", 5, "Only search substitutes for cards at or above this price")
	maxPriceOpt := flag.Float64("max-price", swap.DefaultMaxPrice, "Price cap for single-card searches")
	maxResultsOpt := flag.Int("max-results", swap.DefaultMaxResults, "Maximum substitutes per card")
	reservedOpt := flag.Bool("exclude-reserved", true, "Exclude reserved list cards from candidates")

	outputPathOpt := flag.String("output-path", "", "Path where to dump results (default stdout)")
	fileFormatOpt := flag.String("format", "", "File format of the output (json/csv/ndjson), empty for a text report")
	verboseOpt := flag.Bool("verbose", false, "Log progress while fetching")
	flag.Parse()

	switch *fileFormatOpt {
	case "", "json", "csv", "ndjson":
	default:
		log.Println("Invalid -format option, see -h for supported values")
		return 1
	}

	if *deckOpt == "" && *urlOpt == "" {
		log.Println("Missing -deck or -url argument, run with -h for usage")
		return 1
	}

	text, err := loadDecklist(*deckOpt, *urlOpt)
	if err != nil {
		log.Println(err)
		return 1
	}

	entries := swap.ParseDecklist(text)
	if len(entries) == 0 {
		log.Println("Decklist is empty")
		return 1
	}
	log.Println("Analyzing", len(entries), "entries")

	finder := swap.NewFinder(scryfall.NewClient())
	if *verboseOpt {
		finder.LogCallback = GlobalLogCallback
	}

	results := finder.AnalyzeDeck(context.Background(), entries, swap.AnalyzeOptions{
		Threshold:       *thresholdOpt,
		MaxCandidates:   *maxResultsOpt,
		SinglePriceCap:  *maxPriceOpt,
		ExcludeReserved: *reservedOpt,
		MaxConcurrency:  MaxConcurrency,
	})

	if *fileFormatOpt == "" {
		report(results)
		return 0
	}

	err = dump(results, *outputPathOpt, *fileFormatOpt)
	if err != nil {
		log.Println(err)
		return 1
	}
	if *outputPathOpt != "" {
		log.Println("Results written to", *outputPathOpt)
	}

	return 0
}

func main() {
	os.Exit(run())
}
