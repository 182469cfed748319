// Package livescores reads in-progress NCAA men's basketball scores.
package livescores

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const scoreboardPath = "/scoreboard/basketball-men/d1"

// Game is one scoreboard entry. Team 1 is the home side.
type Game struct {
	ID         string     `json:"game_id"`
	Team1Name  string     `json:"team_1_name"`
	Team1Score string     `json:"team_1_score"`
	Team2Name  string     `json:"team_2_name"`
	Team2Score string     `json:"team_2_score"`
	GameTime   *time.Time `json:"game_time,omitempty"`
	Period     string     `json:"game_period"`
	Clock      string     `json:"game_clock"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

type scoreboard struct {
	Games []struct {
		Game struct {
			GameID        string `json:"gameID"`
			StartDate     string `json:"startDate"`
			StartTime     string `json:"startTime"`
			CurrentPeriod string `json:"currentPeriod"`
			ContestClock  string `json:"contestClock"`
			Home          side   `json:"home"`
			Away          side   `json:"away"`
		} `json:"game"`
	} `json:"games"`
}

type side struct {
	Score string `json:"score"`
	Names struct {
		Short string `json:"short"`
	} `json:"names"`
}

var eastern = time.FixedZone("EST", -5*60*60)

// parseStart reads "03-20-2025" and "12:15PM ET". Unparseable times are
// dropped rather than failing the whole scoreboard.
func parseStart(date, clock string) *time.Time {
	clock = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(clock), "ET"))
	for _, layout := range []string{"01-02-2006 3:04PM", "01/02/2006 3:04PM", "2006-01-02 3:04PM"} {
		if t, err := time.ParseInLocation(layout, date+" "+clock, eastern); err == nil {
			return &t
		}
	}
	return nil
}

// CurrentScores returns today's games keyed by the provider's game id.
func (c *Client) CurrentScores(ctx context.Context) (map[string]Game, error) {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.BaseURL, "/")+scoreboardPath, nil)
	if err != nil {
		return nil, err
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch scoreboard: status %d", res.StatusCode)
	}

	var board scoreboard
	if err := json.NewDecoder(res.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("decode scoreboard: %w", err)
	}

	games := make(map[string]Game, len(board.Games))
	for _, entry := range board.Games {
		g := entry.Game
		games[g.GameID] = Game{
			ID:         g.GameID,
			Team1Name:  g.Home.Names.Short,
			Team1Score: g.Home.Score,
			Team2Name:  g.Away.Names.Short,
			Team2Score: g.Away.Score,
			GameTime:   parseStart(g.StartDate, g.StartTime),
			Period:     g.CurrentPeriod,
			Clock:      g.ContestClock,
		}
	}
	return games, nil
}
