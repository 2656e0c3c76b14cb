package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/store"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	if id, ok := c.Get(SessionCookieName); ok {
		return id.(string)
	}
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < store.MinSessionIDLength {
		sessionID = app.newSessionCookie(c)
		logInfo("Created new session: %s", sessionID)
	}
	c.Set(SessionCookieName, sessionID)
	return sessionID
}

// newSessionCookie issues a fresh session ID cookie and returns the ID.
func (app *App) newSessionCookie(c *gin.Context) string {
	sessionID := uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
	c.Set(SessionCookieName, sessionID)
	return sessionID
}
