package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NewGinEngine builds the router and registers all console routes.
func NewGinEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.SetHTMLTemplate(loadTemplates())

	// OAuth client endpoints; these run before session resolution since the
	// callback decides what the session becomes.
	r.GET("/login", s.browserSession(), s.handleLogin)
	r.GET("/auth/callback", s.browserSession(), s.handleOAuthCallback)
	r.GET("/logout", s.browserSession(), s.handleLogout)

	// Views: resolve the session state machine on every request.
	views := r.Group("/")
	views.Use(s.browserSession(), s.resolveSession())
	views.GET("/", s.handleDashboard)
	views.GET("/words", s.handleWords)
	views.POST("/words", s.handleSaveWord)
	views.GET("/users", s.handleUsers)
	views.GET("/leaderboard", s.handleLeaderboard)

	return r
}

// requestLogger emits one line per request with a correlation id.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := uuid.NewString()
		c.Set(ctxRequestID, rid)
		c.Next()
		s.log.Info("request",
			"id", rid,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
