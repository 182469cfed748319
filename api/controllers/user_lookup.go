package controllers

import (
	"errors"
	"net/http"
	"strings"

	"PickEm/api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// resolveUserByIdentifier accepts a public id or a username.
func resolveUserByIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.User
	if uuid.Validate(trimmed) == nil {
		err := db.Preload("Winner").Where("public_id = ?", strings.ToLower(trimmed)).First(&user).Error
		if err == nil {
			return &user, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	username := strings.ToLower(trimmed)
	if err := db.Preload("Winner").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser godoc
// @Summary      Player profile
// @Description  Look up a player by public id or username. Email is omitted.
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Public id or username"
// @Success      200  {object}  UserResponseEnvelope
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (server *Server) GetUser(c *gin.Context) {
	user, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load user"})
		return
	}

	resp := userToResponse(user)
	resp.Email = ""
	if !server.locked() {
		// Guesses stay private until picks lock.
		resp.Champion, resp.FinalScore = "", nil
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": resp})
}
