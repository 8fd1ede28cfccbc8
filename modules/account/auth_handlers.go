package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/finauth/handler"
	"github.com/dmitrymomot/finauth/svc/auth"
)

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type confirmResetRequest struct {
	Code            string `json:"code"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type codeRequest struct {
	Code string `json:"code"`
}

// bindCodeQuery reads the code from the link in the verification email.
func bindCodeQuery(r *http.Request, v any) error {
	v.(*codeRequest).Code = r.URL.Query().Get("code")
	return nil
}

// signOutRequest carries the account to stamp. The stamp is an audit marker
// and does not revoke anything.
type signOutRequest struct {
	UserID string `json:"user_id"`
}

type callbackRequest struct {
	Code  string
	State string
	Error string
}

func bindCallback(r *http.Request, v any) error {
	req := v.(*callbackRequest)
	q := r.URL.Query()
	req.Code = q.Get("code")
	req.State = q.Get("state")
	req.Error = q.Get("error")
	return nil
}

func (m *Module) signup(r *http.Request, req signupRequest) handler.Response {
	return respond(m.auth.Signup(r.Context(),
		auth.Credentials{Email: req.Email, Password: req.Password, ConfirmPassword: req.ConfirmPassword},
		auth.SignupProfile{Name: req.Name, Email: req.Email},
	))
}

func (m *Module) login(r *http.Request, req loginRequest) handler.Response {
	return respond(m.auth.Login(r.Context(), auth.Credentials{Email: req.Email, Password: req.Password}))
}

func (m *Module) requestPasswordReset(r *http.Request, req emailRequest) handler.Response {
	return respond(m.auth.RequestPasswordReset(r.Context(), req.Email))
}

func (m *Module) confirmPasswordReset(r *http.Request, req confirmResetRequest) handler.Response {
	return respond(m.auth.ConfirmPasswordReset(r.Context(), req.Code,
		auth.Credentials{Password: req.Password, ConfirmPassword: req.ConfirmPassword}))
}

func (m *Module) verifyEmail(r *http.Request, req codeRequest) handler.Response {
	return respond(m.auth.ConfirmEmailVerification(r.Context(), req.Code))
}

func (m *Module) signOut(r *http.Request, req signOutRequest) handler.Response {
	return respond(m.auth.SignOut(r.Context(), req.UserID))
}

func (m *Module) federatedStart(r *http.Request, _ struct{}) handler.Response {
	res := m.auth.FederatedAuthURL(r.Context(), chi.URLParam(r, "provider"))
	if !res.Success {
		return respond(res)
	}
	return handler.Redirect(res.RedirectURL)
}

func (m *Module) federatedCallback(r *http.Request, req callbackRequest) handler.Response {
	return respond(m.auth.SignInWithProvider(r.Context(), auth.FederatedRequest{
		ProviderID: chi.URLParam(r, "provider"),
		Code:       req.Code,
		State:      req.State,
		Error:      req.Error,
	}))
}
