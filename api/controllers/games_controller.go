package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"PickEm/api/livescores"
	"PickEm/api/models"

	"github.com/gin-gonic/gin"
)

// matchesQuery is the case-insensitive substring filter over both teams.
func matchesQuery(g *models.Game, q string) bool {
	if q == "" {
		return true
	}
	for _, t := range []*models.Team{g.Team1, g.Team2} {
		if t != nil && strings.Contains(strings.ToLower(t.Name), q) {
			return true
		}
	}
	return false
}

// liveFor finds the scoreboard entry whose two teams are g's teams.
func liveFor(g *models.Game, live map[string]livescores.Game) *livescores.Game {
	if g.Team1 == nil || g.Team2 == nil {
		return nil
	}
	a, b := strings.ToLower(g.Team1.Name), strings.ToLower(g.Team2.Name)
	for _, lg := range live {
		x, y := strings.ToLower(lg.Team1Name), strings.ToLower(lg.Team2Name)
		if (x == a && y == b) || (x == b && y == a) {
			found := lg
			return &found
		}
	}
	return nil
}

// GetGames godoc
// @Summary      Upcoming games
// @Description  Games with both teams known and no result, with the players who picked each side.
// @Tags         games
// @Produce      json
// @Param        q    query     string  false  "Filter by team name"
// @Success      200  {object}  GamesListResponse
// @Security     BearerAuth
// @Router       /games [get]
func (server *Server) GetGames(c *gin.Context) {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))

	upcoming, err := (&models.Game{}).FindUpcomingGames(server.DB)
	if err != nil {
		log.Printf("[games] upcoming: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load games"})
		return
	}

	var filtered []*models.Game
	ids := make([]uint, 0, len(*upcoming))
	for i := range *upcoming {
		g := &(*upcoming)[i]
		if matchesQuery(g, q) {
			filtered = append(filtered, g)
			ids = append(ids, g.ID)
		}
	}

	picks, err := (&models.UserPick{}).FindPicksForGames(server.DB, ids)
	if err != nil {
		log.Printf("[games] pickers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load games"})
		return
	}

	var live map[string]livescores.Game
	server.cachedLiveScores(c.Request.Context(), &live)

	resp := make([]UpcomingGameDTO, 0, len(filtered))
	index := make(map[uint]int, len(filtered))
	for _, g := range filtered {
		index[g.ID] = len(resp)
		resp = append(resp, UpcomingGameDTO{
			GameID:       g.ID,
			Round:        g.Round,
			GameTime:     g.GameTime,
			Team1:        *server.teamToDTO(g.Team1),
			Team2:        *server.teamToDTO(g.Team2),
			Team1Pickers: []string{},
			Team2Pickers: []string{},
			Live:         liveFor(g, live),
		})
	}
	for _, p := range picks {
		i, ok := index[p.GameID]
		if !ok {
			continue
		}
		dto := &resp[i]
		switch p.PredictedWinnerID {
		case dto.Team1.ID:
			dto.Team1Pickers = append(dto.Team1Pickers, displayName(p.User.Username))
		case dto.Team2.ID:
			dto.Team2Pickers = append(dto.Team2Pickers, displayName(p.User.Username))
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": resp})
}

// GetAllGames godoc
// @Summary      All games
// @Description  Every stored game with its teams and result.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  AdminGamesListResponse
// @Security     BearerAuth
// @Router       /admin/games [get]
func (server *Server) GetAllGames(c *gin.Context) {
	games, err := (&models.Game{}).FindAllGames(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load games"})
		return
	}
	resp := make([]GameDTO, 0, len(*games))
	for i := range *games {
		resp = append(resp, server.gameToDTO(&(*games)[i]))
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": resp})
}

// SetGameResult godoc
// @Summary      Record result
// @Description  Set or clear a game's winner. The winner moves into the game it feeds.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path      int                true  "Game ID"
// @Param        result  body      GameResultRequest  true  "Winner team id, null to clear"
// @Success      200     {object}  GameResultResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      422     {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /admin/games/{id}/result [post]
func (server *Server) SetGameResult(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	var req GameResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g := models.Game{}
	downstream, err := g.SetWinner(server.DB, uint(id), req.WinnerID)
	switch {
	case errors.Is(err, models.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, models.ErrWinnerNotInGame), errors.Is(err, models.ErrGameTeamsMissing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("[admin] set result for game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save result"})
		return
	}

	updated, err := g.FindGameByID(server.DB, uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load game"})
		return
	}

	invalidateScoreboardCache(c.Request.Context())
	log.Printf("[admin] game %d winner set to team %d", id, uintOr0(req.WinnerID))

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": GameResultResponse{
			Game:             server.gameToDTO(updated),
			DownstreamGameID: downstream,
		},
	})
}
