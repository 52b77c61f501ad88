// Command lambda runs either as a CLI (for local testing) or, with no
// arguments, as an AWS Lambda handler, following the teacher's main.go dual
// CLI-or-Lambda convention exactly: len(os.Args) decides which path runs.
// The handler fits a Model's parameters from its observed offers, then
// prices the caller's requested offer types against the fitted result --
// the one HTTP-shaped interface this domain plausibly exposes.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jhw/go-soccer-markets/pkg/soccermarkets"
)

// fitPriceRequest is the Lambda request body: a Model (offers populated)
// plus the list of offer types the caller wants priced back.
type fitPriceRequest struct {
	Model  soccermarkets.Model       `json:"model"`
	Offers []soccermarkets.OfferType `json:"price_offers"`
}

type fitPriceResponse struct {
	Model  soccermarkets.Model          `json:"model"`
	Prices map[string]map[string]float64 `json:"prices"`
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log.Printf("Received request: %s", request.Body)

	var req fitPriceRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		log.Printf("Error unmarshaling request: %v", err)
		return events.APIGatewayProxyResponse{StatusCode: 400, Body: "Invalid JSON"}, nil
	}

	priced, _, err := soccermarkets.FitAndPrice(&req.Model, req.Offers, nil)
	if err != nil {
		log.Printf("Error fitting/pricing model: %v", err)
		return events.APIGatewayProxyResponse{StatusCode: 422, Body: err.Error()}, nil
	}

	responseBody, err := json.Marshal(fitAndPriceResponseBody(req.Model, priced))
	if err != nil {
		log.Printf("Error marshaling response: %v", err)
		return events.APIGatewayProxyResponse{StatusCode: 500, Body: "Internal server error"}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(responseBody),
	}, nil
}

// fitAndPriceResponseBody flattens outcome keys to their String() form,
// since Outcome is not itself usable as a JSON object key.
func fitAndPriceResponseBody(model soccermarkets.Model, priced map[soccermarkets.OfferType]map[soccermarkets.Outcome]float64) fitPriceResponse {
	out := fitPriceResponse{Model: model, Prices: make(map[string]map[string]float64, len(priced))}
	for ot, outcomes := range priced {
		flat := make(map[string]float64, len(outcomes))
		for outcome, prob := range outcomes {
			flat[outcome.String()] = prob
		}
		out.Prices[ot.String()] = flat
	}
	return out
}

func runCLI() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run ./cmd/lambda <request.json>")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	var req fitPriceRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Fatalf("Invalid request: %v", err)
	}

	log.Printf("Fitting and pricing %d offer type(s)", len(req.Offers))
	priced, stats, err := soccermarkets.FitAndPrice(&req.Model, req.Offers, nil)
	if err != nil {
		log.Fatalf("FitAndPrice error: %v", err)
	}
	log.Printf("Done: %+v", stats)

	out, err := json.MarshalIndent(fitAndPriceResponseBody(req.Model, priced), "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	os.Stdout.Write(out)
}

func main() {
	if len(os.Args) > 1 {
		runCLI()
		return
	}
	lambda.Start(handleRequest)
}
