package controllers

import (
	"errors"
	"net/http"

	"PickEm/api/models"
	"PickEm/api/utils/formaterror"
	"PickEm/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// CreateUser godoc
// @Summary      Register
// @Description  Create a player account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      CreateUserRequest  true  "Account details"
// @Success      201   {object}  UserResponseEnvelope
// @Failure      422   {object}  ErrorResponse
// @Router       /users [post]
func (server *Server) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{Username: req.Username, Email: req.Email, Password: req.Password}
	user.Prepare()
	errorMessages := user.Validate("")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errorMessages})
		return
	}

	userCreated, err := user.SaveUser(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": formattedError})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": userToResponse(userCreated),
	})
}

// GetCurrentUser godoc
// @Summary      Current user
// @Description  The caller's account with their champion and final score guesses.
// @Tags         users
// @Produce      json
// @Success      200  {object}  UserResponseEnvelope
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /me [get]
func (server *Server) GetCurrentUser(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := (&models.User{}).FindUserByID(server.DB, uid)
	if errors.Is(err, models.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(user),
	})
}
