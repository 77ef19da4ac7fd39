package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/pkg/logger"
)

const defaultNewsBaseURL = "https://newsapi.org"

type newsTool struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	clockNow func() time.Time
}

func NewNewsTool(client *http.Client, baseURL, apiKey string) *newsTool {
	if baseURL == "" {
		baseURL = defaultNewsBaseURL
	}
	return &newsTool{
		client:   client,
		baseURL:  baseURL,
		apiKey:   apiKey,
		clockNow: time.Now,
	}
}

func (t *newsTool) Name() string { return "get_news_headlines" }

func (t *newsTool) Declaration() dto.ToolDeclaration {
	return dto.FunctionTool(
		t.Name(),
		"Get the latest news headlines, optionally filtered by topic",
		&dto.ToolSchema{
			Type: "object",
			Properties: map[string]*dto.ToolSchema{
				"topic": {Type: "string", Description: "Optional topic to filter news (e.g., technology, business, sports)"},
			},
		},
	)
}

func (t *newsTool) Invoke(ctx context.Context, args map[string]any) map[string]any {
	topic := stringArg(args, "topic")
	if topic == "" {
		topic = "technology"
	}

	endpoint := fmt.Sprintf("%s/v2/top-headlines?q=%s&pageSize=5&apiKey=%s",
		t.baseURL, url.QueryEscape(topic), url.QueryEscape(t.apiKey))

	data, err := fetchJSON(ctx, t.client, endpoint)
	if err != nil {
		logger.FromContext(ctx).Warn("news lookup failed", "topic", topic, "error", err)
		return t.fallbackHeadlines()
	}

	articles := data.Get("articles").Array()
	if len(articles) == 0 {
		return t.fallbackHeadlines()
	}
	if len(articles) > 5 {
		articles = articles[:5]
	}

	headlines := make([]map[string]any, 0, len(articles))
	for _, article := range articles {
		headlines = append(headlines, map[string]any{
			"title":       article.Get("title").String(),
			"source":      article.Get("source.name").String(),
			"url":         article.Get("url").String(),
			"publishedAt": article.Get("publishedAt").String(),
		})
	}
	return map[string]any{"headlines": headlines}
}

// fallbackHeadlines keeps the payload renderable when the upstream fails:
// the model always gets a headline list, never an error object.
func (t *newsTool) fallbackHeadlines() map[string]any {
	return map[string]any{
		"headlines": []map[string]any{
			{
				"title":       "Unable to fetch live news. Please try again later.",
				"source":      "System",
				"url":         "",
				"publishedAt": t.clockNow().UTC().Format(time.RFC3339),
			},
		},
	}
}
