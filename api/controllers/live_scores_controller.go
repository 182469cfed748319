package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"PickEm/api/cache"
	"PickEm/api/livescores"

	"github.com/gin-gonic/gin"
)

var errLiveScoresDisabled = errors.New("live scores are not configured")

func (server *Server) cachedLiveScores(ctx context.Context, dst *map[string]livescores.Game) bool {
	return cache.GetJSON(ctx, liveScoresCacheKey, dst)
}

func (server *Server) fetchLiveScores(ctx context.Context) (map[string]livescores.Game, error) {
	if server.Live == nil || server.Live.BaseURL == "" {
		return nil, errLiveScoresDisabled
	}
	return server.Live.CurrentScores(ctx)
}

// RefreshLiveScores pulls the NCAA scoreboard into the cache.
func (server *Server) RefreshLiveScores(ctx context.Context) error {
	games, err := server.fetchLiveScores(ctx)
	if err != nil {
		return err
	}
	return cache.SetJSON(ctx, liveScoresCacheKey, games, liveScoresCacheTTL)
}

// GetLiveScores godoc
// @Summary      Live scores
// @Description  Today's NCAA men's basketball scoreboard keyed by game id.
// @Tags         games
// @Produce      json
// @Success      200  {object}  LiveScoresResponse
// @Failure      502  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /live-scores [get]
func (server *Server) GetLiveScores(c *gin.Context) {
	ctx := c.Request.Context()

	var games map[string]livescores.Game
	if server.cachedLiveScores(ctx, &games) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": games})
		return
	}

	games, err := server.fetchLiveScores(ctx)
	if errors.Is(err, errLiveScoresDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("[live] fetch: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to reach the live scoreboard"})
		return
	}
	storeCached(ctx, liveScoresCacheKey, games, liveScoresCacheTTL)

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": games})
}
