package identity

import "time"

// Config holds provider policy. BaseURL is this API server; verification
// links land on its GET /auth/email/verify route. WebURL is the web client
// that hosts the password reset form.
type Config struct {
	TokenSecret       string        `env:"IDENTITY_TOKEN_SECRET,required"`
	BaseURL           string        `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	WebURL            string        `env:"APP_WEB_URL" envDefault:"http://localhost:3000"`
	ResetPath         string        `env:"APP_WEB_RESET_PATH" envDefault:"/reset-password"`
	MinPasswordLength int           `env:"IDENTITY_MIN_PASSWORD_LENGTH" envDefault:"6"`
	BcryptCost        int           `env:"IDENTITY_BCRYPT_COST" envDefault:"10"`
	VerifyEmailTTL    time.Duration `env:"IDENTITY_VERIFY_EMAIL_TTL" envDefault:"72h"`
	PasswordResetTTL  time.Duration `env:"IDENTITY_PASSWORD_RESET_TTL" envDefault:"1h"`
	StateTTL          time.Duration `env:"IDENTITY_OAUTH_STATE_TTL" envDefault:"10m"`
	VerifiedOnly      bool          `env:"IDENTITY_OAUTH_VERIFIED_ONLY" envDefault:"true"`
}

// GoogleOAuthConfig holds Google OAuth client settings.
type GoogleOAuthConfig struct {
	ClientID     string   `env:"GOOGLE_OAUTH_CLIENT_ID"`
	ClientSecret string   `env:"GOOGLE_OAUTH_CLIENT_SECRET"`
	RedirectURL  string   `env:"GOOGLE_OAUTH_REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`
	Scopes       []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"openid,email,profile"`
}

// Enabled reports whether client credentials are configured.
func (c GoogleOAuthConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// GitHubOAuthConfig holds GitHub OAuth client settings.
type GitHubOAuthConfig struct {
	ClientID     string   `env:"GITHUB_OAUTH_CLIENT_ID"`
	ClientSecret string   `env:"GITHUB_OAUTH_CLIENT_SECRET"`
	RedirectURL  string   `env:"GITHUB_OAUTH_REDIRECT_URL" envDefault:"http://localhost:8080/auth/github/callback"`
	Scopes       []string `env:"GITHUB_OAUTH_SCOPES" envSeparator:"," envDefault:"read:user,user:email"`
}

// Enabled reports whether client credentials are configured.
func (c GitHubOAuthConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
