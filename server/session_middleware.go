package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gosession "github.com/go-session/session/v3"

	"github.com/termle/admin-console/session"
)

const (
	ctxRequestID    = "request_id"
	ctxSession      = "admin_session"
	ctxBrowserStore = "browser_store"

	flashKey = "flash"
)

// browserSession starts (or restores) the cookie-backed browser session and
// exposes its store. The session id keys the credential and nonce stores.
func (s *Server) browserSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := gosession.Start(c.Request.Context(), c.Writer, c.Request)
		if err != nil {
			s.log.Error("browser session start failed", "error", err)
			c.String(http.StatusInternalServerError, "session unavailable")
			c.Abort()
			return
		}
		c.Set(ctxBrowserStore, st)
		c.Next()
	}
}

// resolveSession runs the login state machine for the request and stores
// the outcome for the view handlers.
func (s *Server) resolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := browserStore(c)
		sess := s.sessions.Resolve(c.Request.Context(), st.SessionID())
		c.Set(ctxSession, sess)
		c.Next()
	}
}

func browserStore(c *gin.Context) gosession.Store {
	v, _ := c.Get(ctxBrowserStore)
	return v.(gosession.Store)
}

func currentSession(c *gin.Context) session.Session {
	v, ok := c.Get(ctxSession)
	if !ok {
		return session.Session{State: session.StateAnonymous}
	}
	return v.(session.Session)
}

// guard renders the login or denied page for non-authenticated sessions.
// It returns the session and whether the view handler should proceed.
func (s *Server) guard(c *gin.Context) (session.Session, bool) {
	sess := currentSession(c)
	switch sess.State {
	case session.StateAuthenticated:
		return sess, true
	case session.StateDenied:
		c.HTML(http.StatusForbidden, "denied.html", gin.H{"Reason": sess.Reason})
		return sess, false
	default:
		c.HTML(http.StatusOK, "login.html", nil)
		return sess, false
	}
}

// takeFlash pops the one-shot notice left by a redirecting handler.
func takeFlash(c *gin.Context) string {
	st := browserStore(c)
	v, ok := st.Get(flashKey)
	if !ok {
		return ""
	}
	st.Delete(flashKey)
	if err := st.Save(); err != nil {
		return ""
	}
	msg, _ := v.(string)
	return msg
}

func setFlash(c *gin.Context, msg string) error {
	st := browserStore(c)
	st.Set(flashKey, msg)
	return st.Save()
}
