package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/rs/zerolog"
)

const (
	SessionCookie = "session_token"
	LoginPath     = "/login"

	principalKey = "principal"
)

// PrincipalLoader resolves a session's user id to the account.
type PrincipalLoader interface {
	Principal(ctx context.Context, id uint) (*models.User, error)
}

// RequireAdmin lets the request through only for an active admin session.
// Everyone else is sent to the login page without learning anything about
// the requested resource.
func RequireAdmin(store SessionStore, users PrincipalLoader, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		userID, err := store.Lookup(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrNoSession) {
				log.Error().Err(err).Msg("Session lookup failed")
			}
			redirectToLogin(c)
			return
		}

		user, err := users.Principal(c.Request.Context(), userID)
		if err != nil || user.Role != models.RoleAdmin || user.Status != models.UserActive {
			redirectToLogin(c)
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// Principal returns the admin set by RequireAdmin.
func Principal(c *gin.Context) *models.User {
	if v, ok := c.Get(principalKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// SetSessionCookie stores token in an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, LoginPath)
	c.Abort()
}
