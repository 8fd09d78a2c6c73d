// internal/identity/google.go
package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"debo/internal/util"
)

const (
	defaultAuthEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenEndpoint    = "https://oauth2.googleapis.com/token"
	defaultUserInfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"
)

// Config holds OAuth client settings. Endpoint fields are overridable for
// tests; empty fields fall back to the Google endpoints.
type Config struct {
	ClientID         string
	ClientSecret     string
	RedirectURI      string
	AuthEndpoint     string
	TokenEndpoint    string
	UserInfoEndpoint string
}

// GoogleProvider implements Provider against Google's OAuth 2.0 endpoints.
type GoogleProvider struct {
	cfg    Config
	client *http.Client
}

// NewGoogleProvider creates a provider with a bounded-timeout HTTP client.
func NewGoogleProvider(cfg Config) *GoogleProvider {
	if cfg.AuthEndpoint == "" {
		cfg.AuthEndpoint = defaultAuthEndpoint
	}
	if cfg.TokenEndpoint == "" {
		cfg.TokenEndpoint = defaultTokenEndpoint
	}
	if cfg.UserInfoEndpoint == "" {
		cfg.UserInfoEndpoint = defaultUserInfoEndpoint
	}
	return &GoogleProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL returns the consent URL callers are redirected to on login.
func (p *GoogleProvider) AuthURL() string {
	v := url.Values{}
	v.Set("client_id", p.cfg.ClientID)
	v.Set("redirect_uri", p.cfg.RedirectURI)
	v.Set("response_type", "code")
	v.Set("scope", "email")
	return p.cfg.AuthEndpoint + "?" + v.Encode()
}

// ExchangeCode trades an authorization code for an access token.
func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)
	form.Set("redirect_uri", p.cfg.RedirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", util.E(util.KindUnavailable, "identity", "", "")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", util.E(util.KindUnavailable, "identity", "", "")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", util.E(util.KindUnavailable, "identity", "", "")
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.AccessToken == "" {
		return "", util.E(util.KindUnavailable, "identity", "", "")
	}
	return body.AccessToken, nil
}

// FetchEmail resolves an access token to the holder's email address.
func (p *GoogleProvider) FetchEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.UserInfoEndpoint, nil)
	if err != nil {
		return "", util.E(util.KindUnavailable, "identity", "", "")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", util.E(util.KindUnavailable, "identity", "", "")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", util.E(util.KindUnavailable, "identity", "", "")
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Email == "" {
		return "", util.E(util.KindUnavailable, "identity", "", "")
	}
	return body.Email, nil
}
