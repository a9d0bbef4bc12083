package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers map[uint]*models.User

func (s stubUsers) Principal(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user", id)
}

func protectedEngine(store SessionStore, users PrincipalLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/jobs/:id", RequireAdmin(store, users, zerolog.Nop()), func(c *gin.Context) {
		c.String(http.StatusOK, "hello %s", Principal(c).Name)
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	store := NewMemorySessions()
	users := stubUsers{
		1: {ID: 1, Name: "root", Role: models.RoleAdmin, Status: models.UserActive},
		2: {ID: 2, Name: "emp", Role: models.RoleEmployer, Status: models.UserActive},
		3: {ID: 3, Name: "gone", Role: models.RoleAdmin, Status: models.UserSuspended},
	}
	ctx := context.Background()
	adminToken, err := store.Create(ctx, 1)
	require.NoError(t, err)
	employerToken, _ := store.Create(ctx, 2)
	suspendedToken, _ := store.Create(ctx, 3)
	orphanToken, _ := store.Create(ctx, 99)

	tests := []struct {
		name   string
		cookie string
		status int
	}{
		{name: "no cookie", status: http.StatusSeeOther},
		{name: "unknown token", cookie: "not-a-session", status: http.StatusSeeOther},
		{name: "employer", cookie: employerToken, status: http.StatusSeeOther},
		{name: "suspended admin", cookie: suspendedToken, status: http.StatusSeeOther},
		{name: "deleted user", cookie: orphanToken, status: http.StatusSeeOther},
		{name: "admin", cookie: adminToken, status: http.StatusOK},
	}

	r := protectedEngine(store, users)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/jobs/12", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusSeeOther {
				assert.Equal(t, LoginPath, w.Header().Get("Location"))
				assert.NotContains(t, w.Body.String(), "12")
			} else {
				assert.Equal(t, "hello root", w.Body.String())
			}
		})
	}
}

func TestMemorySessions_Delete(t *testing.T) {
	store := NewMemorySessions()
	ctx := context.Background()

	token, err := store.Create(ctx, 5)
	require.NoError(t, err)
	id, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), id)

	require.NoError(t, store.Delete(ctx, token))
	_, err = store.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}
