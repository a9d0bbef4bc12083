package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/justsurfingit/jobboard-admin/internal/config"
	"github.com/justsurfingit/jobboard-admin/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func facebookServer(t *testing.T, profileStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "fb-token", "token_type": "bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fb-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "id,name,email", r.URL.Query().Get("fields"))
		if profileStatus != http.StatusOK {
			w.WriteHeader(profileStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "10001", "name": "Lin Q", "email": "lin@example.com"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestFacebook(srv *httptest.Server) *FacebookProvider {
	p := NewFacebookProvider(&oauth2.Config{
		ClientID:     "app",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/auth/facebook/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: srv.URL + "/dialog", TokenURL: srv.URL + "/token"},
	}, zerolog.Nop())
	p.GraphURL = srv.URL
	return p
}

func TestFacebookProvider_Identity(t *testing.T) {
	p := newTestFacebook(facebookServer(t, http.StatusOK))

	id, err := p.Identity(context.Background(), "the-code")

	require.NoError(t, err)
	assert.Equal(t, ProviderFacebook, id.Provider)
	assert.Equal(t, "10001", id.ProviderUserID)
	assert.Equal(t, "lin@example.com", id.Email)
	assert.Equal(t, "Lin Q", id.Name)
}

func TestFacebookProvider_ProfileRejected(t *testing.T) {
	p := newTestFacebook(facebookServer(t, http.StatusForbidden))

	_, err := p.Identity(context.Background(), "the-code")

	assert.ErrorContains(t, err, "unexpected status 403")
}

func TestFacebookProvider_AuthCodeURL(t *testing.T) {
	p := newTestFacebook(facebookServer(t, http.StatusOK))

	u, err := url.Parse(p.AuthCodeURL("xyz"))

	require.NoError(t, err)
	assert.Equal(t, "xyz", u.Query().Get("state"))
	assert.Equal(t, "app", u.Query().Get("client_id"))
}

func TestProviders_OnlyConfigured(t *testing.T) {
	cfg := &config.Config{
		GoogleClientID:     "g",
		GoogleClientSecret: "gs",
		OAuthRedirectBase:  "https://admin.example.com",
	}

	got := Providers(cfg, zerolog.Nop())

	require.Contains(t, got, ProviderGoogle)
	assert.NotContains(t, got, ProviderFacebook)
	u, err := url.Parse(got[ProviderGoogle].AuthCodeURL("s"))
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com/auth/google/callback", u.Query().Get("redirect_uri"))
}

func TestDBSessions_LookupExpired(t *testing.T) {
	db, mock := testutil.MockDB(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store := &DBSessions{DB: db, TTL: time.Hour, now: func() time.Time { return now }}

	mock.ExpectQuery("SELECT \\* FROM `sessions` WHERE token = \\? AND expires_at > \\?").
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "expires_at"}))

	_, err := store.Lookup(context.Background(), "stale")

	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDBSessions_Create(t *testing.T) {
	db, mock := testutil.MockDB(t)
	store := NewDBSessions(db, time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sessions`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	token, err := store.Create(context.Background(), 4)

	require.NoError(t, err)
	assert.Len(t, token, 36)
}
