package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/pkg/logger"
)

const defaultWeatherBaseURL = "https://wttr.in"

type weatherTool struct {
	client  *http.Client
	baseURL string
}

func NewWeatherTool(client *http.Client, baseURL string) *weatherTool {
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	return &weatherTool{client: client, baseURL: baseURL}
}

func (t *weatherTool) Name() string { return "get_weather" }

func (t *weatherTool) Declaration() dto.ToolDeclaration {
	return dto.FunctionTool(
		t.Name(),
		"Get the current weather conditions for a city",
		&dto.ToolSchema{
			Type: "object",
			Properties: map[string]*dto.ToolSchema{
				"city": {Type: "string", Description: "City name (e.g., London, New York)"},
			},
			Required: []string{"city"},
		},
	)
}

func (t *weatherTool) Invoke(ctx context.Context, args map[string]any) map[string]any {
	city := stringArg(args, "city")
	if city == "" {
		return errorPayload("city is required")
	}

	endpoint := fmt.Sprintf("%s/%s?format=j1", t.baseURL, url.PathEscape(city))
	data, err := fetchJSON(ctx, t.client, endpoint)
	if err != nil {
		logger.FromContext(ctx).Warn("weather lookup failed", "city", city, "error", err)
		return errorPayload("Failed to fetch weather")
	}

	current := data.Get("current_condition.0")
	if !current.Exists() {
		return errorPayload("Weather data not available for this city")
	}

	return map[string]any{
		"city":          city,
		"temperatureC":  current.Get("temp_C").String(),
		"temperatureF":  current.Get("temp_F").String(),
		"condition":     current.Get("weatherDesc.0.value").String(),
		"humidity":      current.Get("humidity").String(),
		"windSpeedKmph": current.Get("windspeedKmph").String(),
		"windDirection": current.Get("winddir16Point").String(),
		"visibilityKm":  current.Get("visibility").String(),
		"uvIndex":       current.Get("uvIndex").String(),
	}
}
