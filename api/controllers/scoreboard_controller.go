package controllers

import (
	"context"
	"log"
	"net/http"

	"PickEm/api/cache"
	"PickEm/api/models"
	"PickEm/api/scoring"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func uintOr0(p *uint) uint {
	if p == nil {
		return 0
	}
	return *p
}

// computeScoreboard scores every user against the stored results.
func computeScoreboard(db *gorm.DB) ([]scoring.Entry, error) {
	users, err := (&models.User{}).FindAllUsers(db)
	if err != nil {
		return nil, err
	}
	stored, err := (&models.Game{}).FindAllGames(db)
	if err != nil {
		return nil, err
	}
	allPicks, err := (&models.UserPick{}).FindAllPicks(db)
	if err != nil {
		return nil, err
	}

	games := make([]scoring.Game, 0, len(*stored))
	for _, g := range *stored {
		games = append(games, scoring.Game{
			ID:       g.ID,
			Round:    g.Round,
			Team1ID:  uintOr0(g.Team1ID),
			Team2ID:  uintOr0(g.Team2ID),
			WinnerID: uintOr0(g.WinnerID),
		})
	}

	picksByUser := make(map[uint][]scoring.Pick)
	for _, p := range allPicks {
		picksByUser[p.UserID] = append(picksByUser[p.UserID], scoring.Pick{
			GameID: p.GameID,
			TeamID: p.PredictedWinnerID,
			Seed:   p.PredictedWinner.Seed,
		})
	}

	entries := make([]scoring.Entry, 0, len(*users))
	for _, u := range *users {
		e := scoring.Entry{
			UserID:          u.ID,
			Username:        displayName(u.Username),
			FinalScoreGuess: u.FinalScore,
		}
		if u.Winner != nil {
			e.ChampionName = u.Winner.Name
		}
		entries = append(entries, scoring.Score(e, games, picksByUser[u.ID]))
	}
	scoring.Rank(entries)
	return entries, nil
}

// WarmScoreboard recomputes the scoreboard into the cache.
func (server *Server) WarmScoreboard(ctx context.Context) error {
	entries, err := computeScoreboard(server.DB.WithContext(ctx))
	if err != nil {
		return err
	}
	return cache.SetJSON(ctx, scoreboardCacheKey, entries, scoreboardCacheTTL)
}

// GetScoreboard godoc
// @Summary      Scoreboard
// @Description  Every player's points, maximum reachable points, correct picks and per-round scores, best first.
// @Tags         scoreboard
// @Produce      json
// @Success      200  {object}  ScoreboardResponse
// @Security     BearerAuth
// @Router       /scoreboard [get]
func (server *Server) GetScoreboard(c *gin.Context) {
	ctx := c.Request.Context()

	var entries []scoring.Entry
	if cache.GetJSON(ctx, scoreboardCacheKey, &entries) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": entries})
		return
	}

	entries, err := computeScoreboard(server.DB.WithContext(ctx))
	if err != nil {
		log.Printf("[scoreboard] compute: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to compute scoreboard"})
		return
	}
	storeCached(ctx, scoreboardCacheKey, entries, scoreboardCacheTTL)

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": entries})
}
