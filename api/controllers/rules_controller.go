package controllers

import (
	"net/http"

	"PickEm/api/scoring"

	"github.com/gin-gonic/gin"
)

// GetRules godoc
// @Summary      Rules
// @Description  Points per round for a correct pick (plus the picked team's seed) and the pick deadline.
// @Tags         rules
// @Produce      json
// @Success      200  {object}  RulesResponse
// @Router       /rules [get]
func (server *Server) GetRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": RulesResponse{
			RoundPoints: scoring.RoundPoints,
			SeedBonus:   true,
			LockTime:    server.lockTimeText(),
			Locked:      server.locked(),
		},
	})
}
