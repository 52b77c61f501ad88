// Command fit reads a Model request file (offers populated from observed
// market prices), fits its team and player scoring parameters, and writes
// the fitted Model back out as JSON -- following the teacher's demo.go
// convention of flag-free --key=value argument parsing and os.ReadFile +
// encoding/json for request/response plumbing.
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
	requestFile := "fixtures/model-request.json"
	outFile := "fixtures/model-fitted.json"
	intervals := 0 // 0 means use default

	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch {
		case strings.HasPrefix(arg, "--request="):
			requestFile = strings.TrimPrefix(arg, "--request=")
		case strings.HasPrefix(arg, "--out="):
			outFile = strings.TrimPrefix(arg, "--out=")
		case strings.HasPrefix(arg, "--intervals="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--intervals="))
			if err != nil {
				log.Fatalf("Invalid intervals: %s", arg)
			}
			intervals = n
		case arg == "--help" || arg == "-h":
			fmt.Println("Usage: go run ./cmd/fit [--request=filename] [--out=filename] [--intervals=N]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --request=filename  Model request JSON file (default: fixtures/model-request.json)")
			fmt.Println("  --out=filename      Fitted model output JSON file (default: fixtures/model-fitted.json)")
			fmt.Println("  --intervals=N       Number of interval-engine slices (default: 90)")
			os.Exit(0)
		default:
			log.Fatalf("Unknown argument: %s", arg)
		}
	}

	data, err := os.ReadFile(requestFile)
	if err != nil {
		log.Fatal(err)
	}

	model := soccermarkets.NewModel()
	if err := json.Unmarshal(data, model); err != nil {
		log.Fatalf("Invalid model request: %v", err)
	}

	log.Printf("Loaded %s with %d offers", requestFile, len(model.Offers))

	opts := soccermarkets.DefaultFitOptions()
	if intervals > 0 {
		opts.Intervals = uint8(intervals)
	}

	cache := soccermarkets.NewCachingContext()
	log.Println("Fitting model...")
	if err := soccermarkets.Fit(model, opts, cache); err != nil {
		log.Fatalf("Fit error: %v", err)
	}
	log.Printf("Fit complete: %+v", cache.Stats)

	out, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal fitted model: %v", err)
	}
	if err := os.WriteFile(outFile, out, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote fitted model to %s", outFile)
}
