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

const defaultStockBaseURL = "https://query1.finance.yahoo.com"

type stockTool struct {
	client  *http.Client
	baseURL string
}

func NewStockTool(client *http.Client, baseURL string) *stockTool {
	if baseURL == "" {
		baseURL = defaultStockBaseURL
	}
	return &stockTool{client: client, baseURL: baseURL}
}

func (t *stockTool) Name() string { return "get_stock_price" }

func (t *stockTool) Declaration() dto.ToolDeclaration {
	return dto.FunctionTool(
		t.Name(),
		"Get the current stock price for a given symbol (e.g., AAPL, GOOGL, MSFT, TSLA)",
		&dto.ToolSchema{
			Type: "object",
			Properties: map[string]*dto.ToolSchema{
				"symbol": {Type: "string", Description: "The stock symbol (e.g., AAPL for Apple)"},
			},
			Required: []string{"symbol"},
		},
	)
}

func (t *stockTool) Invoke(ctx context.Context, args map[string]any) map[string]any {
	symbol := stringArg(args, "symbol")
	if symbol == "" {
		return errorPayload("symbol is required")
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", t.baseURL, url.PathEscape(symbol))
	data, err := fetchJSON(ctx, t.client, endpoint)
	if err != nil {
		logger.FromContext(ctx).Warn("stock lookup failed", "symbol", symbol, "error", err)
		return errorPayload("Failed to fetch stock price")
	}

	meta := data.Get("chart.result.0.meta")
	if !meta.Exists() {
		return errorPayload("Stock not found")
	}

	price := meta.Get("regularMarketPrice").Float()
	previousClose := meta.Get("chartPreviousClose").Float()
	change := price - previousClose

	changePercent := "0.00"
	if previousClose != 0 {
		changePercent = fmt.Sprintf("%.2f", change/previousClose*100)
	}

	return map[string]any{
		"symbol":        strings.ToUpper(symbol),
		"price":         price,
		"currency":      meta.Get("currency").String(),
		"change":        change,
		"changePercent": changePercent,
		"marketState":   meta.Get("marketState").String(),
	}
}
