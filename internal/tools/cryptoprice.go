package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/pkg/logger"
)

const defaultCryptoBaseURL = "https://api.coingecko.com"

// symbolToID maps common ticker symbols to CoinGecko identifiers. Input that
// is not listed is treated as already being the canonical id.
var symbolToID = map[string]string{
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"sol":   "solana",
	"doge":  "dogecoin",
	"xrp":   "ripple",
	"ada":   "cardano",
	"dot":   "polkadot",
	"ltc":   "litecoin",
	"bnb":   "binancecoin",
	"matic": "matic-network",
	"avax":  "avalanche-2",
	"link":  "chainlink",
}

type cryptoTool struct {
	client  *http.Client
	baseURL string
}

func NewCryptoTool(client *http.Client, baseURL string) *cryptoTool {
	if baseURL == "" {
		baseURL = defaultCryptoBaseURL
	}
	return &cryptoTool{client: client, baseURL: baseURL}
}

func (t *cryptoTool) Name() string { return "get_crypto_price" }

func (t *cryptoTool) Declaration() dto.ToolDeclaration {
	return dto.FunctionTool(
		t.Name(),
		"Get the current price, 24h change, and market cap for a cryptocurrency",
		&dto.ToolSchema{
			Type: "object",
			Properties: map[string]*dto.ToolSchema{
				"symbol": {Type: "string", Description: "Ticker symbol or id (e.g., BTC, eth, solana)"},
			},
			Required: []string{"symbol"},
		},
	)
}

// ResolveID maps a ticker symbol, case-insensitively, to the price-feed id.
func ResolveID(symbol string) string {
	key := strings.ToLower(strings.TrimSpace(symbol))
	if id, ok := symbolToID[key]; ok {
		return id
	}
	return key
}

func (t *cryptoTool) Invoke(ctx context.Context, args map[string]any) map[string]any {
	symbol := stringArg(args, "symbol")
	if symbol == "" {
		return errorPayload("symbol is required")
	}
	id := ResolveID(symbol)

	endpoint := fmt.Sprintf(
		"%s/api/v3/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true&include_market_cap=true",
		t.baseURL, url.QueryEscape(id),
	)
	data, err := fetchJSON(ctx, t.client, endpoint)
	if err != nil {
		logger.FromContext(ctx).Warn("crypto lookup failed", "symbol", symbol, "error", err)
		return errorPayload("Failed to fetch crypto price")
	}

	coin := data.Get(id)
	if !coin.Exists() {
		return errorPayload("Cryptocurrency not found")
	}

	return map[string]any{
		"symbol":       strings.ToUpper(symbol),
		"id":           id,
		"priceUsd":     coin.Get("usd").Float(),
		"change24hPct": fmt.Sprintf("%.2f", coin.Get("usd_24h_change").Float()),
		"marketCapUsd": coin.Get("usd_market_cap").Float(),
	}
}
