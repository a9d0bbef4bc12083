package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/justsurfingit/jobboard-admin/internal/config"
	"github.com/justsurfingit/jobboard-admin/internal/services"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"

	facebookGraphURL = "https://graph.facebook.com/v19.0"
)

// Provider is one OAuth social login.
type Provider interface {
	AuthCodeURL(state string) string
	// Identity exchanges the callback code and fetches who signed in.
	Identity(ctx context.Context, code string) (services.Identity, error)
}

// Providers returns the social logins that have credentials configured.
func Providers(cfg *config.Config, log zerolog.Logger) map[string]Provider {
	out := make(map[string]Provider)
	if cfg.GoogleEnabled() {
		out[ProviderGoogle] = &GoogleProvider{Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  callbackURL(cfg, ProviderGoogle),
			Scopes:       []string{"openid", googleoauth.UserinfoEmailScope, googleoauth.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		}}
	}
	if cfg.FacebookEnabled() {
		out[ProviderFacebook] = NewFacebookProvider(&oauth2.Config{
			ClientID:     cfg.FacebookClientID,
			ClientSecret: cfg.FacebookClientSecret,
			RedirectURL:  callbackURL(cfg, ProviderFacebook),
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		}, log)
	}
	return out
}

func callbackURL(cfg *config.Config, provider string) string {
	return cfg.OAuthRedirectBase + "/auth/" + provider + "/callback"
}

type GoogleProvider struct {
	Config *oauth2.Config
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.Config.AuthCodeURL(state)
}

func (p *GoogleProvider) Identity(ctx context.Context, code string) (services.Identity, error) {
	tok, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return services.Identity{}, fmt.Errorf("google code exchange: %w", err)
	}

	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(p.Config.TokenSource(ctx, tok)))
	if err != nil {
		return services.Identity{}, fmt.Errorf("google userinfo client: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return services.Identity{}, fmt.Errorf("google userinfo: %w", err)
	}

	return services.Identity{
		Provider:       ProviderGoogle,
		ProviderUserID: info.Id,
		Email:          info.Email,
		Name:           info.Name,
	}, nil
}

// FacebookProvider reads the profile from the Graph API. Requests go
// through a retrying client.
type FacebookProvider struct {
	Config   *oauth2.Config
	GraphURL string
	HTTP     *http.Client
}

func NewFacebookProvider(cfg *oauth2.Config, log zerolog.Logger) *FacebookProvider {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	rc.Logger = retryLogger{log: log.With().Str("component", "facebook").Logger()}

	return &FacebookProvider{Config: cfg, GraphURL: facebookGraphURL, HTTP: rc.StandardClient()}
}

func (p *FacebookProvider) AuthCodeURL(state string) string {
	return p.Config.AuthCodeURL(state)
}

func (p *FacebookProvider) Identity(ctx context.Context, code string) (services.Identity, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.HTTP)
	tok, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return services.Identity{}, fmt.Errorf("facebook code exchange: %w", err)
	}

	q := url.Values{"fields": {"id,name,email"}, "access_token": {tok.AccessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.GraphURL+"/me?"+q.Encode(), nil)
	if err != nil {
		return services.Identity{}, err
	}
	resp, err := p.HTTP.Do(req)
	if err != nil {
		return services.Identity{}, fmt.Errorf("facebook profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return services.Identity{}, fmt.Errorf("facebook profile: unexpected status %d", resp.StatusCode)
	}

	var me struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return services.Identity{}, fmt.Errorf("decode facebook profile: %w", err)
	}

	return services.Identity{
		Provider:       ProviderFacebook,
		ProviderUserID: me.ID,
		Email:          me.Email,
		Name:           me.Name,
	}, nil
}

// retryLogger adapts zerolog to retryablehttp.LeveledLogger.
type retryLogger struct {
	log zerolog.Logger
}

func (l retryLogger) Error(msg string, kv ...interface{}) { l.log.Error().Fields(kv).Msg(msg) }
func (l retryLogger) Warn(msg string, kv ...interface{})  { l.log.Warn().Fields(kv).Msg(msg) }
func (l retryLogger) Info(msg string, kv ...interface{})  { l.log.Debug().Fields(kv).Msg(msg) }
func (l retryLogger) Debug(msg string, kv ...interface{}) { l.log.Debug().Fields(kv).Msg(msg) }
