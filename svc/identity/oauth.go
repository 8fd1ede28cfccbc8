package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/dmitrymomot/finauth/svc/profile"
)

// OAuthAdapter hides one OAuth provider's protocol details.
type OAuthAdapter interface {
	ProviderID() string
	AuthURL(state string) string
	// ResolveProfile exchanges code and fetches the user profile. Exchange
	// failures return ErrInvalidCode; a missing email returns ErrNoPrimaryEmail.
	ResolveProfile(ctx context.Context, code string) (OAuthProfile, error)
}

// OAuthProfile is the provider's view of the user.
type OAuthProfile struct {
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
	AvatarURL      string
}

type googleAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
	apiURL     string
}

// NewGoogleAdapter creates the Google adapter.
func NewGoogleAdapter(cfg GoogleOAuthConfig) OAuthAdapter {
	return &googleAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

func (a *googleAdapter) ProviderID() string { return profile.ProviderGoogle }

func (a *googleAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

func (a *googleAdapter) ResolveProfile(ctx context.Context, code string) (OAuthProfile, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return OAuthProfile{}, ErrInvalidCode
	}

	var u struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := getJSON(ctx, a.httpClient, a.apiURL, tok.AccessToken, &u); err != nil {
		return OAuthProfile{}, fmt.Errorf("fetch google user: %w", err)
	}
	if u.Email == "" {
		return OAuthProfile{}, ErrNoPrimaryEmail
	}

	return OAuthProfile{
		ProviderUserID: u.ID,
		Email:          u.Email,
		EmailVerified:  u.VerifiedEmail,
		Name:           u.Name,
		AvatarURL:      u.Picture,
	}, nil
}

type githubAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
	apiURL     string
}

// NewGitHubAdapter creates the GitHub adapter.
func NewGitHubAdapter(cfg GitHubOAuthConfig) OAuthAdapter {
	return &githubAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://api.github.com",
	}
}

func (a *githubAdapter) ProviderID() string { return profile.ProviderGitHub }

func (a *githubAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state)
}

// ResolveProfile prefers the primary verified address, then any verified one.
func (a *githubAdapter) ResolveProfile(ctx context.Context, code string) (OAuthProfile, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return OAuthProfile{}, ErrInvalidCode
	}

	var u struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := getJSON(ctx, a.httpClient, a.apiURL+"/user", tok.AccessToken, &u); err != nil {
		return OAuthProfile{}, fmt.Errorf("fetch github user: %w", err)
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := getJSON(ctx, a.httpClient, a.apiURL+"/user/emails", tok.AccessToken, &emails); err != nil {
		return OAuthProfile{}, fmt.Errorf("fetch github emails: %w", err)
	}

	var email string
	for _, e := range emails {
		if e.Primary && e.Verified {
			email = e.Email
			break
		}
	}
	if email == "" {
		for _, e := range emails {
			if e.Verified {
				email = e.Email
				break
			}
		}
	}
	if email == "" {
		return OAuthProfile{}, ErrNoPrimaryEmail
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}
	return OAuthProfile{
		ProviderUserID: strconv.FormatInt(u.ID, 10),
		Email:          email,
		EmailVerified:  true,
		Name:           name,
		AvatarURL:      u.AvatarURL,
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, url, accessToken string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

var (
	_ OAuthAdapter = (*googleAdapter)(nil)
	_ OAuthAdapter = (*githubAdapter)(nil)
)
