package controllers

import (
	"PickEm/api/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initializeRoutes() {

	s.Router.GET("/", func(c *gin.Context) {
		c.Redirect(302, s.Config.FrontendURL)
	})
	s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))

	v1 := s.Router.Group("/api/v1")
	{
		// Users routes
		v1.POST("/login", middlewares.LoginRateLimitMiddleware(), s.Login)
		v1.POST("/password/forgot", middlewares.LoginRateLimitMiddleware(), s.ForgotPassword)
		v1.POST("/password/reset", middlewares.LoginRateLimitMiddleware(), s.ResetPassword)
		v1.POST("/users", s.CreateUser)
		v1.GET("/rules", s.GetRules)
		v1.GET("/teams", s.GetTeams)

		authed := v1.Group("", middlewares.TokenAuthMiddleware(s.DB))
		{
			authed.GET("/me", s.GetCurrentUser)
			authed.GET("/users/:id", s.GetUser)

			// Picking session
			authed.GET("/bracket", s.GetBracket)
			authed.POST("/bracket/select", s.SelectWinner)
			authed.POST("/bracket/submit", s.SubmitBracket)
			authed.POST("/bracket/reset", s.ResetBracket)
			authed.POST("/submit-picks", s.SubmitPicks)

			authed.GET("/games", s.GetGames)
			authed.GET("/live-scores", s.GetLiveScores)
			authed.GET("/scoreboard", s.GetScoreboard)
		}

		admin := v1.Group("/admin", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminOnlyMiddleware())
		{
			admin.GET("/games", s.GetAllGames)
			admin.POST("/games/:id/result", s.SetGameResult)
			admin.PUT("/teams/:id/logo", s.UpdateTeamLogo)
		}
	}
}
