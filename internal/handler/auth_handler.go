package handler

import (
	"errors"
	"net/http"

	"github.com/edupanel/examboard/internal/model"
	"github.com/edupanel/examboard/internal/response"
	"github.com/edupanel/examboard/internal/session"
	"github.com/edupanel/examboard/internal/upstream"
	"github.com/edupanel/examboard/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the gateway's session operations.
type AuthHandler struct {
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login godoc
// POST /api/v1/auth/login
// Forwards credentials to the upstream API and, on success, replaces the
// gateway session wholesale.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.sessions.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, upstream.ErrBadCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusBadGateway, response.ErrUpstreamUnavailable)
		return
	}

	response.Success(c, http.StatusOK, sessionBody(h.sessions))
}

// Logout godoc
// POST /api/v1/auth/logout
// Clears the session unconditionally; upstream notification is
// best-effort, so this always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the current session user and derived flags.
func (h *AuthHandler) Me(c *gin.Context) {
	if !h.sessions.IsAuthenticated() {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionRequired)
		return
	}
	response.Success(c, http.StatusOK, sessionBody(h.sessions))
}

// Refresh godoc
// POST /api/v1/auth/refresh
// Re-fetches the user record from the upstream. Refresh failures are
// swallowed by design, so the reply always carries the authoritative
// (possibly unchanged) record.
func (h *AuthHandler) Refresh(c *gin.Context) {
	h.sessions.Refresh(c.Request.Context())
	response.Success(c, http.StatusOK, sessionBody(h.sessions))
}

func sessionBody(sessions *session.Manager) gin.H {
	snap := sessions.Snapshot()
	return gin.H{
		"user":             snap.User,
		"is_authenticated": snap.User != nil,
		"is_admin":         snap.User.IsAdmin(),
		"is_moderator":     snap.User.IsModerator(),
	}
}
