package account_test

import (
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/finauth/handler"
	"github.com/dmitrymomot/finauth/modules/account"
	"github.com/dmitrymomot/finauth/pkg/email"
	"github.com/dmitrymomot/finauth/svc/auth"
	"github.com/dmitrymomot/finauth/svc/identity"
	"github.com/dmitrymomot/finauth/svc/profile"
)

var hrefRe = regexp.MustCompile(`href="([^"]+)"`)

// accountTable is an in-memory identity.AccountStorage for the flows below.
type accountTable struct {
	identity.AccountStorage
	mu  sync.Mutex
	acc *identity.Account
}

func (s *accountTable) GetAccountByID(_ context.Context, id uuid.UUID) (*identity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acc.ID != id {
		return nil, identity.ErrAccountNotFound
	}
	cp := *s.acc
	return &cp, nil
}

func (s *accountTable) GetAccountByEmail(_ context.Context, addr string) (*identity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acc.Email != addr {
		return nil, identity.ErrAccountNotFound
	}
	cp := *s.acc
	return &cp, nil
}

func (s *accountTable) SetEmailVerified(context.Context, uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acc.EmailVerified = true
	return nil
}

func (s *accountTable) SetPasswordHash(_ context.Context, _ uuid.UUID, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acc.PasswordHash = hash
	return nil
}

type outbox struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (o *outbox) SendEmail(_ context.Context, p email.SendEmailParams) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, p)
	return nil
}

// lastLink returns the action link of the most recent email.
func (o *outbox) lastLink(t *testing.T) *url.URL {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent)
	m := hrefRe.FindStringSubmatch(o.sent[len(o.sent)-1].BodyHTML)
	require.Len(t, m, 2)
	u, err := url.Parse(html.UnescapeString(m[1]))
	require.NoError(t, err)
	return u
}

func newLinkFixture(t *testing.T) (*identity.Provider, *accountTable, *outbox, http.Handler) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Antiga#2023"), bcrypt.MinCost)
	require.NoError(t, err)

	table := &accountTable{acc: &identity.Account{ID: uuid.New(), Email: "ana@example.com", PasswordHash: hash}}
	mail := &outbox{}
	idp := identity.NewProvider(identity.Config{
		TokenSecret:       "link-secret",
		BaseURL:           "http://api.test",
		WebURL:            "http://web.test",
		ResetPath:         "/reset-password",
		MinPasswordLength: 6,
		BcryptCost:        bcrypt.MinCost,
		VerifyEmailTTL:    time.Hour,
		PasswordResetTTL:  time.Hour,
	}, table, nil, mail)

	svc := auth.NewService(idp, profile.NewStore(profile.NewMemoryStore(time.Now)), auth.WithTranslator(translator))
	return idp, table, mail, account.New(svc, translator).Router()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env handler.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Nil(t, env.Error, w.Body.String())
	return env.Data.(map[string]any)
}

func TestEmailedLinks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("verification link is served by the API", func(t *testing.T) {
		t.Parallel()
		idp, table, mail, router := newLinkFixture(t)
		require.NoError(t, idp.SendEmailVerification(ctx, table.acc.ID.String()))

		link := mail.lastLink(t)
		assert.Equal(t, "api.test", link.Host)
		assert.Equal(t, "/auth/email/verify", link.Path)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, link.RequestURI(), nil))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "E-mail confirmado com sucesso!", decode(t, w)["message"])
		assert.True(t, table.acc.EmailVerified)
	})

	t.Run("reset link opens the web form which posts the code", func(t *testing.T) {
		t.Parallel()
		idp, table, mail, router := newLinkFixture(t)
		require.NoError(t, idp.SendPasswordReset(ctx, "ana@example.com"))

		link := mail.lastLink(t)
		assert.Equal(t, "web.test", link.Host)
		assert.Equal(t, "/reset-password", link.Path)
		code := link.Query().Get("code")
		require.NotEmpty(t, code)

		body, err := json.Marshal(map[string]string{
			"code": code, "password": "Segura#2024", "confirm_password": "Segura#2024",
		})
		require.NoError(t, err)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/password/confirm", strings.NewReader(string(body))))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NoError(t, bcrypt.CompareHashAndPassword(table.acc.PasswordHash, []byte("Segura#2024")))
	})

	t.Run("verification link with a bad code", func(t *testing.T) {
		t.Parallel()
		_, _, _, router := newLinkFixture(t)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/email/verify?code=abc", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
