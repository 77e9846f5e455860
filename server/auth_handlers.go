package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gosession "github.com/go-session/session/v3"

	"github.com/termle/admin-console/session"
)

// handleLogin starts the OAuth round trip: ask the backend for a provider
// URL, persist the returned state as this session's nonce, and send the
// browser away. The whole client suspends here; there is no in-page
// waiting state.
func (s *Server) handleLogin(c *gin.Context) {
	st := browserStore(c)
	authURL, err := s.sessions.BeginLogin(c.Request.Context(), st.SessionID())
	if err != nil {
		s.log.Error("login initiation failed", "error", err)
		c.HTML(http.StatusBadGateway, "denied.html", gin.H{"Reason": "could not start sign-in: " + err.Error()})
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// handleOAuthCallback is the fixed return address of the round trip.
// Redirecting to the root on success is what strips the code from the
// visible URL.
func (s *Server) handleOAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		// Provider denial or a hand-typed URL; nothing to exchange.
		c.Redirect(http.StatusFound, "/")
		return
	}

	st := browserStore(c)
	res := s.sessions.HandleCallback(c.Request.Context(), st.SessionID(), code)
	switch res.Outcome {
	case session.CallbackSignedIn:
		c.Redirect(http.StatusFound, "/")
	case session.CallbackIgnored:
		// Stale or replayed URL; proceed with ordinary startup.
		c.Redirect(http.StatusFound, "/")
	default:
		c.HTML(http.StatusForbidden, "denied.html", gin.H{"Reason": res.Reason})
	}
}

// handleLogout clears the credential and the browser session, then forces
// navigation back to the application root.
func (s *Server) handleLogout(c *gin.Context) {
	st := browserStore(c)
	s.sessions.Logout(c.Request.Context(), st.SessionID())
	if err := gosession.Destroy(c.Request.Context(), c.Writer, c.Request); err != nil {
		s.log.Error("browser session destroy failed", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}
