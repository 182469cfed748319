package controllers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"PickEm/api/mailer"
	"PickEm/api/models"

	"github.com/gin-gonic/gin"
	"github.com/twinj/uuid"
	"gorm.io/gorm"
)

const resetSentMessage = "If that email is registered, a reset link is on its way"

func (server *Server) resetLink(token string) string {
	base := strings.TrimRight(server.Config.FrontendURL, "/")
	return base + "/reset-password?token=" + url.QueryEscape(token)
}

// ForgotPassword godoc
// @Summary      Request password reset
// @Description  Mail a single-use reset link to the account's address.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ForgotPasswordRequest  true  "Account email"
// @Success      200      {object}  SimpleMessageResponse
// @Failure      422      {object}  ErrorResponse
// @Failure      503      {object}  ErrorResponse
// @Router       /password/forgot [post]
func (server *Server) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{Email: req.Email}
	user.Prepare()
	if msgs := user.Validate("forgotpassword"); len(msgs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msgs})
		return
	}
	if server.Mailer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": mailer.ErrNotConfigured.Error()})
		return
	}

	var found models.User
	err := server.DB.Where("email = ?", user.Email).Take(&found).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": resetSentMessage})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to start password reset"})
		return
	}

	reset := models.ResetPassword{Email: found.Email, Token: uuid.NewV4().String()}
	reset.Prepare()
	if _, err := reset.SaveDetails(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to start password reset"})
		return
	}

	if err := server.Mailer.SendPasswordReset(c.Request.Context(), found.Email, found.Username, server.resetLink(reset.Token)); err != nil {
		log.Printf("[password] send reset mail to %s: %v", found.Email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to send reset mail"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": resetSentMessage})
}

// ResetPassword godoc
// @Summary      Reset password
// @Description  Set a new password with a mailed reset token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ResetPasswordRequest  true  "Token and new password"
// @Success      200      {object}  SimpleMessageResponse
// @Failure      422      {object}  ErrorResponse
// @Router       /password/reset [post]
func (server *Server) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errList := map[string]string{}
	if req.NewPassword == "" || req.RetypePassword == "" {
		errList["Empty_passwords"] = "Please ensure both fields are entered"
	} else if len(req.NewPassword) < 6 {
		errList["Invalid_Passwords"] = "Password should be at least 6 characters"
	} else if req.NewPassword != req.RetypePassword {
		errList["Password_unequal"] = "Passwords provided do not match"
	}
	if len(errList) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errList})
		return
	}

	reset, err := (&models.ResetPassword{}).FindByToken(server.DB, strings.TrimSpace(req.Token))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid link. Try requesting again"})
		return
	}
	if reset.Expired(server.now()) {
		_, _ = reset.DeleteDetails(server.DB)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Link expired. Try requesting again"})
		return
	}

	user := models.User{Email: reset.Email, Password: req.NewPassword}
	if err := user.UpdatePassword(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update password"})
		return
	}
	if _, err := reset.DeleteDetails(server.DB); err != nil {
		log.Printf("[password] clear reset tokens for %s: %v", reset.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": "Password updated, you can now log in"})
}
