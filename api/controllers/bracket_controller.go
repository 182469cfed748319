package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"PickEm/api/bracket"
	"PickEm/api/middlewares"
	"PickEm/api/models"
	"PickEm/api/submit"
	"PickEm/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errSessionExpired = errors.New("picking session expired, reload the bracket")

// GetBracket godoc
// @Summary      Open bracket
// @Description  Start or resume the caller's picking session. Saved picks are replayed onto the seeded bracket.
// @Tags         bracket
// @Produce      json
// @Success      200  {object}  BracketResponseEnvelope
// @Failure      401  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /bracket [get]
func (server *Server) GetBracket(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sess, err := server.session(uid)
	if err != nil {
		log.Printf("[bracket] load session for user %d: %v", uid, err)
		middlewares.CaptureError(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load bracket"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(server.now())

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": server.bracketResponse(sess),
	})
}

// SelectWinner godoc
// @Summary      Pick a winner
// @Description  Mark a team as a game's winner and advance it. Picks that depended on the displaced team are cleared.
// @Tags         bracket
// @Accept       json
// @Produce      json
// @Param        selection  body      SelectRequest  true  "Game and team row or team id"
// @Success      200        {object}  SelectResponseEnvelope
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Failure      422        {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /bracket/select [post]
func (server *Server) SelectWinner(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Position == nil && req.TeamID == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "position or team_id is required"})
		return
	}
	if server.locked() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Picks are locked"})
		return
	}

	sess, err := server.session(uid)
	if err != nil {
		log.Printf("[bracket] load session for user %d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load bracket"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if req.SessionID != "" && req.SessionID != sess.ID {
		c.JSON(http.StatusConflict, gin.H{"error": errSessionExpired.Error()})
		return
	}
	sess.touch(server.now())

	var result bracket.Result
	if req.Position != nil {
		result, err = sess.Bracket.ApplySelection(req.GameID, *req.Position)
	} else {
		result, err = sess.Bracket.SelectTeam(req.GameID, *req.TeamID)
	}
	switch {
	case errors.Is(err, bracket.ErrUnknownGame):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if result.Applied {
		if g, ok := sess.Bracket.Game(req.GameID); ok {
			server.counters.selections.WithLabelValues(string(g.Round.Stage)).Inc()
		}
		server.counters.cleared.Add(float64(len(result.Cleared)))
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": SelectResponse{
			Result:  result,
			Bracket: server.bracketResponse(sess),
		},
	})
}

// SubmitBracket godoc
// @Summary      Save bracket
// @Description  Collect the session's picks and save them with the champion and final score guess.
// @Tags         bracket
// @Accept       json
// @Produce      json
// @Param        submission  body      SubmitBracketRequest  false  "Final score guess"
// @Success      200         {object}  submit.Outcome
// @Failure      422         {object}  submit.Outcome
// @Security     BearerAuth
// @Router       /bracket/submit [post]
func (server *Server) SubmitBracket(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SubmitBracketRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := server.session(uid)
	if err != nil {
		log.Printf("[bracket] load session for user %d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load bracket"})
		return
	}

	sess.mu.Lock()
	if req.SessionID != "" && req.SessionID != sess.ID {
		sess.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": errSessionExpired.Error()})
		return
	}
	if req.FinalScore != nil {
		sess.FinalScore = strings.TrimSpace(*req.FinalScore)
	}
	sess.touch(server.now())
	sub := sess.Bracket.CollectPicks(sess.FinalScore)
	sess.mu.Unlock()

	submitter := submit.Submitter{
		Transport: server.storeTransport(uid),
		Notifier:  &sess.Notice,
	}
	out := submitter.Send(c.Request.Context(), sub)

	status := http.StatusOK
	switch {
	case out.Err != nil:
		log.Printf("[bracket] submit for user %d: %v", uid, out.Err)
		middlewares.CaptureError(c, out.Err)
		status = http.StatusInternalServerError
	case !out.Success:
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"status": status, "response": out})
}

// ResetBracket godoc
// @Summary      Reset picks
// @Description  Delete the caller's saved picks, champion and final score guess.
// @Tags         bracket
// @Produce      json
// @Success      200  {object}  SimpleMessageResponse
// @Failure      403  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /bracket/reset [post]
func (server *Server) ResetBracket(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if server.locked() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Picks are locked"})
		return
	}

	err := server.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := (&models.UserPick{}).DeleteUserPicks(tx, uid); err != nil {
			return err
		}
		return (&models.User{}).ClearBracketExtras(tx, uid)
	})
	if err != nil {
		log.Printf("[bracket] reset for user %d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to reset picks"})
		return
	}

	server.sessions.drop(uid)
	invalidateScoreboardCache(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": gin.H{"message": "Picks reset"}})
}
