package middleware

import (
	"net/http"

	"github.com/edupanel/examboard/internal/response"
	"github.com/edupanel/examboard/internal/session"
	"github.com/gin-gonic/gin"
)

// RequireSession rejects requests while the gateway holds no
// authenticated session. A 401 here tells the rendering layer to send
// the user back to the login screen.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAuthenticated() {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionRequired)
			return
		}
		c.Next()
	}
}
