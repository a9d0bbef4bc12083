package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/auth"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/justsurfingit/jobboard-admin/internal/services"
	"github.com/rs/zerolog"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute
)

type AuthHandler struct {
	Auth       *services.AuthService
	Sessions   auth.SessionStore
	Providers  map[string]auth.Provider
	SessionTTL time.Duration
	Secure     bool
	Log        zerolog.Logger
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if !bind(c, h.Log, &req, auth.LoginPath) {
		return
	}

	user, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) && e.Kind == apperr.KindUnauthorized {
			c.JSON(http.StatusUnauthorized, gin.H{"error": e.Message})
			return
		}
		fail(c, h.Log, err, auth.LoginPath)
		return
	}
	h.startSession(c, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(auth.SessionCookie); err == nil && token != "" {
		if err := h.Sessions.Delete(c.Request.Context(), token); err != nil {
			h.Log.Warn().Err(err).Msg("Failed to delete session")
		}
	}
	auth.ClearSessionCookie(c, h.Secure)
	c.Redirect(http.StatusSeeOther, auth.LoginPath)
}

// ProviderLogin sends the browser to the provider's consent page.
func (h *AuthHandler) ProviderLogin(c *gin.Context) {
	p, ok := h.Providers[c.Param("provider")]
	if !ok {
		c.Redirect(http.StatusSeeOther, auth.LoginPath)
		return
	}

	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(stateTTL.Seconds()), "/auth", "", h.Secure, true)
	c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

func (h *AuthHandler) ProviderCallback(c *gin.Context) {
	name := c.Param("provider")
	p, ok := h.Providers[name]
	if !ok {
		c.Redirect(http.StatusSeeOther, auth.LoginPath)
		return
	}

	want, err := c.Cookie(stateCookie)
	c.SetCookie(stateCookie, "", -1, "/auth", "", h.Secure, true)
	got := c.Query("state")
	if err != nil || want == "" || subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
		h.Log.Warn().Str("provider", name).Msg("OAuth state mismatch")
		c.Redirect(http.StatusSeeOther, auth.LoginPath)
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusSeeOther, auth.LoginPath)
		return
	}

	identity, err := p.Identity(c.Request.Context(), code)
	if err != nil {
		h.Log.Error().Err(err).Str("provider", name).Msg("OAuth exchange failed")
		c.Redirect(http.StatusSeeOther, auth.LoginPath)
		return
	}

	user, err := h.Auth.Resolve(c.Request.Context(), identity)
	if err != nil {
		fail(c, h.Log, err, auth.LoginPath)
		return
	}
	h.startSession(c, user)
}

// startSession sets the cookie and sends admins to the dashboard. Other
// roles get a session but no access to this back office.
func (h *AuthHandler) startSession(c *gin.Context, user *models.User) {
	token, err := h.Sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, h.Log, err, auth.LoginPath)
		return
	}
	auth.SetSessionCookie(c, token, h.SessionTTL, h.Secure)

	if user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "this area is reserved for administrators"})
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

// LoginOptions is the landing page for redirects: it lists the enabled
// social logins next to the password form.
func (h *AuthHandler) LoginOptions(c *gin.Context) {
	providers := make([]string, 0, len(h.Providers))
	for name := range h.Providers {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	c.JSON(http.StatusOK, gin.H{"password": true, "providers": providers})
}
