package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"bitfolio/pkg/utils"
)

type Transaction struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	FiatAmount  float64 `json:"fiat_amount"`
	AssetAmount float64 `json:"asset_amount"`
	Price       float64 `json:"price"`
}

type Portfolio struct {
	CashBalance   float64 `json:"cash_balance"`
	AssetHoldings float64 `json:"asset_holdings"`
}

type TradeResponse struct {
	Transaction Transaction `json:"transaction"`
	Portfolio   Portfolio   `json:"portfolio"`
}

type ValueResponse struct {
	Price float64 `json:"price"`
	Value float64 `json:"value"`
}

// Replays a week of dollar-cost averaging against a running server, then
// takes some profit.
func main() {
	baseURL := utils.GetEnv("BITFOLIO_URL", "http://localhost:8080") + "/api"

	var portfolio Portfolio
	post(baseURL+"/portfolio/reset", nil, http.StatusOK, &portfolio)
	fmt.Printf("Reset portfolio: %.2f USD\n", portfolio.CashBalance)

	btcPrice := 60000.0
	for day := 1; day <= 7; day++ {
		spend := portfolio.CashBalance * 0.05

		var trade TradeResponse
		post(baseURL+"/portfolio/buy", map[string]float64{
			"fiat_amount": spend,
			"price":       btcPrice,
		}, http.StatusCreated, &trade)
		portfolio = trade.Portfolio

		fmt.Printf("Day %d: Bought %.8f BTC for %.2f USD at %.2f\n",
			day, trade.Transaction.AssetAmount, trade.Transaction.FiatAmount, btcPrice)
		btcPrice *= 1.01
	}

	var trade TradeResponse
	post(baseURL+"/portfolio/sell", map[string]float64{
		"fiat_amount": 500,
		"price":       btcPrice,
	}, http.StatusCreated, &trade)
	fmt.Printf("Sold %.8f BTC for %.2f USD at %.2f\n",
		trade.Transaction.AssetAmount, trade.Transaction.FiatAmount, btcPrice)

	var value ValueResponse
	get(fmt.Sprintf("%s/portfolio/value?price=%f", baseURL, btcPrice), &value)
	fmt.Printf("\nPortfolio value at %.2f: %.2f USD\n", value.Price, value.Value)
	fmt.Println("Sample trades created successfully!")
}

func post(url string, payload any, wantStatus int, out any) {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		log.Fatalf("POST %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Fatalf("Failed to decode response from %s: %v", url, err)
	}
}

func get(url string, out any) {
	resp, err := http.Get(url)
	if err != nil {
		log.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Fatalf("Failed to decode response from %s: %v", url, err)
	}
}
