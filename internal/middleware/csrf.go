package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const csrfSessionKey = "_csrf_token"

// csrfTokenBytes is the anti-forgery token size (128 bits).
const csrfTokenBytes = 16

// CSRFToken returns the session's anti-forgery token, generating and storing
// a new one on first use. The token is stable for the session's lifetime.
func CSRFToken(c *gin.Context) string {
	session := sessions.Default(c)

	if token, ok := session.Get(csrfSessionKey).(string); ok && token != "" {
		return token
	}

	buf := make([]byte, csrfTokenBytes)
	rand.Read(buf)
	token := hex.EncodeToString(buf)

	session.Set(csrfSessionKey, token)
	session.Save()
	return token
}

// CSRFMiddleware rejects state-changing requests whose supplied token does
// not exactly match the one stored in the session. The token is read from
// the csrf_token form field or the X-CSRFToken header.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		session := sessions.Default(c)
		stored, _ := session.Get(csrfSessionKey).(string)

		supplied := c.PostForm("csrf_token")
		if supplied == "" {
			supplied = c.GetHeader("X-CSRFToken")
		}

		if stored == "" || supplied == "" || stored != supplied {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CSRF token missing or invalid"})
			c.Abort()
			return
		}

		c.Next()
	}
}
