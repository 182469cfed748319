package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"PickEm/api/bracket"
	"PickEm/api/models"
	"PickEm/api/submit"
	"PickEm/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgPicksSaved       = "Picks saved!"
	msgPicksLocked      = "Picks are locked"
	msgFinalScoreNaN    = "Final score must be a number"
	msgUnknownChampion  = "Unknown champion pick"
	msgInvalidSubmitted = "Invalid submission"
)

// storeTransport delivers submissions straight to the database on behalf
// of uid.
func (server *Server) storeTransport(uid uint) submit.Transport {
	return submit.TransportFunc(func(ctx context.Context, sub bracket.Submission) (submit.Response, error) {
		return server.savePicks(ctx, uid, sub)
	})
}

// savePicks replaces every saved pick of uid with sub. Declined submissions
// come back as an unsuccessful response with a message; err is reserved for
// storage failures. Nothing is written unless the whole submission is valid.
func (server *Server) savePicks(ctx context.Context, uid uint, sub bracket.Submission) (resp submit.Response, err error) {
	defer func() {
		server.counters.submitted(err == nil && resp.Success)
	}()

	if server.locked() {
		return submit.Response{Message: msgPicksLocked}, nil
	}

	var finalScore *int
	if text := strings.TrimSpace(sub.FinalScore); text != "" {
		n, convErr := strconv.Atoi(text)
		if convErr != nil {
			return submit.Response{Message: msgFinalScoreNaN}, nil
		}
		finalScore = &n
	}

	db := server.DB.WithContext(ctx)

	var winnerID *uint
	if sub.ChampionPick != nil && strings.TrimSpace(*sub.ChampionPick) != "" {
		team, findErr := (&models.Team{}).FindTeamByName(db, strings.TrimSpace(*sub.ChampionPick))
		if errors.Is(findErr, models.ErrTeamNotFound) {
			return submit.Response{Message: msgUnknownChampion}, nil
		}
		if findErr != nil {
			return submit.Response{}, findErr
		}
		winnerID = &team.ID
	}

	rows, reason, err := pickRows(db, sub.Picks)
	if err != nil {
		return submit.Response{}, err
	}
	if reason != "" {
		return submit.Response{Message: reason}, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := (&models.UserPick{}).ReplaceUserPicks(tx, uid, rows); err != nil {
			return err
		}
		return (&models.User{}).SetBracketExtras(tx, uid, winnerID, finalScore)
	})
	if err != nil {
		return submit.Response{}, fmt.Errorf("save picks for user %d: %w", uid, err)
	}

	invalidateScoreboardCache(ctx)
	return submit.Response{Success: true, Message: msgPicksSaved}, nil
}

// pickRows checks that every pick names a stored game and team, once per
// game. A non-empty reason declines the submission.
func pickRows(db *gorm.DB, picks []bracket.Pick) ([]models.UserPick, string, error) {
	if len(picks) == 0 {
		return nil, "", nil
	}

	gameIDs := make([]uint, 0, len(picks))
	teamIDs := make([]uint, 0, len(picks))
	seen := make(map[int]bool, len(picks))
	for _, p := range picks {
		if p.GameID <= 0 || p.TeamID <= 0 {
			return nil, msgInvalidSubmitted, nil
		}
		if seen[p.GameID] {
			return nil, fmt.Sprintf("Duplicate pick for game %d", p.GameID), nil
		}
		seen[p.GameID] = true
		gameIDs = append(gameIDs, uint(p.GameID))
		teamIDs = append(teamIDs, uint(p.TeamID))
	}

	known := func(model interface{}, ids []uint) (map[uint]bool, error) {
		var found []uint
		if err := db.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
			return nil, err
		}
		set := make(map[uint]bool, len(found))
		for _, id := range found {
			set[id] = true
		}
		return set, nil
	}
	games, err := known(&models.Game{}, gameIDs)
	if err != nil {
		return nil, "", err
	}
	teams, err := known(&models.Team{}, teamIDs)
	if err != nil {
		return nil, "", err
	}

	rows := make([]models.UserPick, 0, len(picks))
	for _, p := range picks {
		if !games[uint(p.GameID)] {
			return nil, fmt.Sprintf("Unknown game %d", p.GameID), nil
		}
		if !teams[uint(p.TeamID)] {
			return nil, fmt.Sprintf("Unknown team %d", p.TeamID), nil
		}
		rows = append(rows, models.UserPick{GameID: uint(p.GameID), PredictedWinnerID: uint(p.TeamID)})
	}
	return rows, "", nil
}

// scoreText renders a final_score field given as a JSON string or number.
func scoreText(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

// SubmitPicks godoc
// @Summary      Submit picks
// @Description  Replace the caller's picks, champion and final score guess. Declined submissions answer success=false with a message.
// @Tags         bracket
// @Accept       json
// @Produce      json
// @Param        submission  body      SubmitPicksRequest  true  "Picks payload"
// @Success      200         {object}  submit.Response
// @Failure      400         {object}  submit.Response
// @Failure      500         {object}  submit.Response
// @Security     BearerAuth
// @Router       /submit-picks [post]
func (server *Server) SubmitPicks(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, submit.Response{Message: "Unauthorized"})
		return
	}

	var req SubmitPicksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, submit.Response{Message: msgInvalidSubmitted})
		return
	}

	sub := bracket.Submission{
		Picks:        req.UserPicks,
		ChampionPick: req.WinnerPick,
		FinalScore:   scoreText(req.FinalScore),
	}
	resp, err := server.savePicks(c.Request.Context(), uid, sub)
	if err != nil {
		log.Printf("[picks] user %d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, submit.Response{Message: submit.FailureMessage})
		return
	}
	if resp.Success {
		// The stored picks no longer match any open session.
		server.sessions.drop(uid)
	}
	c.JSON(http.StatusOK, resp)
}
