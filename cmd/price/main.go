// Command price reads a fitted Model and a list of requested OfferTypes,
// and writes the modeled probability of every outcome of every requested
// offer as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jhw/go-soccer-markets/pkg/soccermarkets"
)

func main() {
	modelFile := "fixtures/model-fitted.json"
	offersFile := "fixtures/offer-types.json"
	outFile := "fixtures/prices.json"
	intervals := 0

	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch {
		case strings.HasPrefix(arg, "--model="):
			modelFile = strings.TrimPrefix(arg, "--model=")
		case strings.HasPrefix(arg, "--offers="):
			offersFile = strings.TrimPrefix(arg, "--offers=")
		case strings.HasPrefix(arg, "--out="):
			outFile = strings.TrimPrefix(arg, "--out=")
		case strings.HasPrefix(arg, "--intervals="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--intervals="))
			if err != nil {
				log.Fatalf("Invalid intervals: %s", arg)
			}
			intervals = n
		case arg == "--help" || arg == "-h":
			fmt.Println("Usage: go run ./cmd/price [--model=filename] [--offers=filename] [--out=filename] [--intervals=N]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --model=filename   Fitted model JSON file (default: fixtures/model-fitted.json)")
			fmt.Println("  --offers=filename  Requested OfferType list JSON file (default: fixtures/offer-types.json)")
			fmt.Println("  --out=filename     Priced outcomes output JSON file (default: fixtures/prices.json)")
			fmt.Println("  --intervals=N      Number of interval-engine slices (default: 90)")
			os.Exit(0)
		default:
			log.Fatalf("Unknown argument: %s", arg)
		}
	}

	modelData, err := os.ReadFile(modelFile)
	if err != nil {
		log.Fatal(err)
	}
	model := soccermarkets.NewModel()
	if err := json.Unmarshal(modelData, model); err != nil {
		log.Fatalf("Invalid model file: %v", err)
	}

	offersData, err := os.ReadFile(offersFile)
	if err != nil {
		log.Fatal(err)
	}
	var offerTypes []soccermarkets.OfferType
	if err := json.Unmarshal(offersData, &offerTypes); err != nil {
		log.Fatalf("Invalid offer type list: %v", err)
	}

	opts := soccermarkets.DefaultFitOptions()
	if intervals > 0 {
		opts.Intervals = uint8(intervals)
	}

	cache := soccermarkets.NewCachingContext()
	log.Printf("Pricing %d offer type(s)...", len(offerTypes))
	priced, err := soccermarkets.Price(model, offerTypes, opts, cache)
	if err != nil {
		log.Fatalf("Price error: %v", err)
	}
	log.Printf("Pricing complete: %+v", cache.Stats)

	type outcomePrice struct {
		Outcome     soccermarkets.Outcome `json:"outcome"`
		Probability float64               `json:"probability"`
	}
	type offerPrices struct {
		OfferType soccermarkets.OfferType `json:"offer_type"`
		Outcomes  []outcomePrice          `json:"outcomes"`
	}

	var response []offerPrices
	for _, ot := range offerTypes {
		entry := offerPrices{OfferType: ot}
		for outcome, prob := range priced[ot] {
			entry.Outcomes = append(entry.Outcomes, outcomePrice{Outcome: outcome, Probability: prob})
		}
		response = append(response, entry)
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal prices: %v", err)
	}
	if err := os.WriteFile(outFile, out, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote prices to %s", outFile)
}
