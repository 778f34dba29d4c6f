package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	clientCookieName   = "mpg_id"
	clientCookieMaxAge = 30 * 24 * 60 * 60
)

// clientID returns the caller's anonymous identity from the mpg_id
// cookie, or "" when none was presented.
func clientID(c *gin.Context) string {
	id, err := c.Cookie(clientCookieName)
	if err != nil {
		return ""
	}
	return id
}

// ensureClientID returns the caller's identity, minting one and setting
// the cookie when absent. Called only on scoring endpoints, so clients
// that never score never receive a cookie.
func ensureClientID(c *gin.Context) string {
	if id := clientID(c); id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(clientCookieName, id, clientCookieMaxAge, "/", "", false, true)
	return id
}
