package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"PickEm/api/auth"
	"PickEm/api/models"
	"PickEm/api/security"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errBadCredentials = errors.New("Incorrect email or password")

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Login payload"
// @Success      200          {object}  LoginResponseEnvelope
// @Failure      422          {object}  ErrorResponse
// @Router       /login [post]
func (server *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user := models.User{Email: req.Email, Password: req.Password}
	user.Prepare()
	errorMessages := user.Validate("login")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	userData, err := server.SignIn(user.Email, user.Password)
	if errors.Is(err, errBadCredentials) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  err.Error(),
		})
		return
	}
	if err != nil {
		log.Printf("[login] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userData,
	})
}

func (server *Server) SignIn(email, password string) (LoginResponse, error) {
	user := models.User{}

	normalizedEmail := strings.ToLower(email)
	err := server.DB.Model(models.User{}).Where("lower(email) = ?", normalizedEmail).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginResponse{}, errBadCredentials
	}
	if err != nil {
		return LoginResponse{}, err
	}

	err = security.VerifyPassword(user.Password, password)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return LoginResponse{}, errBadCredentials
	}
	if err != nil {
		return LoginResponse{}, err
	}

	token, err := auth.CreateToken(user.ID)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		Token:    token,
		ID:       user.PublicID,
		Email:    user.Email,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, nil
}
