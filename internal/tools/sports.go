package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/pkg/logger"
)

const defaultSportsBaseURL = "https://site.api.espn.com"

// leagueFor picks the scoreboard league for a sport.
var leagueFor = map[string]string{
	"basketball": "nba",
	"football":   "nfl",
	"baseball":   "mlb",
	"hockey":     "nhl",
}

type sportsTool struct {
	client  *http.Client
	baseURL string
}

func NewSportsTool(client *http.Client, baseURL string) *sportsTool {
	if baseURL == "" {
		baseURL = defaultSportsBaseURL
	}
	return &sportsTool{client: client, baseURL: baseURL}
}

func (t *sportsTool) Name() string { return "get_sports_scores" }

func (t *sportsTool) Declaration() dto.ToolDeclaration {
	return dto.FunctionTool(
		t.Name(),
		"Get recent sports scores and game information",
		&dto.ToolSchema{
			Type: "object",
			Properties: map[string]*dto.ToolSchema{
				"sport": {Type: "string", Description: "Optional sport type (e.g., basketball, football, soccer)"},
			},
		},
	)
}

// NormalizeSport lowercases the sport filter and maps "soccer" to the
// upstream's "football" naming.
func NormalizeSport(sport string) string {
	s := strings.ToLower(strings.TrimSpace(sport))
	if s == "" {
		s = "basketball"
	}
	if s == "soccer" {
		s = "football"
	}
	return s
}

func (t *sportsTool) Invoke(ctx context.Context, args map[string]any) map[string]any {
	sport := NormalizeSport(stringArg(args, "sport"))

	league, ok := leagueFor[sport]
	if !ok {
		league = "nba"
	}

	endpoint := fmt.Sprintf("%s/apis/site/v2/sports/%s/%s/scoreboard", t.baseURL, sport, league)
	data, err := fetchJSON(ctx, t.client, endpoint)
	if err != nil {
		logger.FromContext(ctx).Warn("sports lookup failed", "sport", sport, "error", err)
		return errorPayload("Failed to fetch sports scores")
	}

	events := data.Get("events").Array()
	if len(events) == 0 {
		return map[string]any{"message": "No recent games found for this sport"}
	}
	if len(events) > 5 {
		events = events[:5]
	}

	games := make([]map[string]any, 0, len(events))
	for _, event := range events {
		home := findCompetitor(event, "home")
		away := findCompetitor(event, "away")
		games = append(games, map[string]any{
			"name":      event.Get("name").String(),
			"status":    event.Get("status.type.description").String(),
			"homeTeam":  home.Get("team.displayName").String(),
			"awayTeam":  away.Get("team.displayName").String(),
			"homeScore": home.Get("score").String(),
			"awayScore": away.Get("score").String(),
		})
	}

	return map[string]any{
		"sport": sport,
		"games": games,
	}
}

func findCompetitor(event gjson.Result, side string) gjson.Result {
	for _, competitor := range event.Get("competitions.0.competitors").Array() {
		if competitor.Get("homeAway").String() == side {
			return competitor
		}
	}
	return gjson.Result{}
}
