package account

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/finauth/handler"
	"github.com/dmitrymomot/finauth/pkg/sanitizer"
	"github.com/dmitrymomot/finauth/pkg/validator"
)

type passwordRequest struct {
	Password string `json:"password"`
}

type passwordStrength struct {
	Score   int    `json:"score"`
	Max     int    `json:"max"`
	Label   string `json:"label"`
	Blocked bool   `json:"blocked"`
	Message string `json:"message,omitempty"`
}

// validatePassword feeds a strength meter. It never fails with an error
// status; a blocked password is reported in the payload.
func (m *Module) validatePassword(r *http.Request, req passwordRequest) handler.Response {
	ctx := r.Context()
	s := validator.ScorePassword(req.Password)
	out := passwordStrength{
		Score:   s.Score,
		Max:     validator.MaxPasswordScore,
		Label:   m.tr.Tc(ctx, "password.strength."+strconv.Itoa(s.Score)),
		Blocked: s.Blocked(),
	}
	if s.Blocked() {
		out.Message = m.tr.Tc(ctx, "validation.password_too_short", "min_length", validator.MinPasswordLength)
	}
	return handler.JSON(out)
}

type nationalIDRequest struct {
	NationalID string `json:"national_id"`
}

type nationalIDResult struct {
	Masked  string `json:"masked"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func (m *Module) validateNationalID(r *http.Request, req nationalIDRequest) handler.Response {
	out := nationalIDResult{
		Masked: validator.MaskNationalID(req.NationalID),
		Valid:  validator.IsNationalID(req.NationalID),
	}
	if !out.Valid {
		out.Message = m.tr.Tc(r.Context(), "validation.national_id")
	}
	return handler.JSON(out)
}

type emailResult struct {
	Email   string `json:"email"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func (m *Module) validateEmail(r *http.Request, req emailRequest) handler.Response {
	addr := sanitizer.NormalizeEmail(req.Email)
	out := emailResult{Email: addr, Valid: validator.IsEmail(addr)}
	if !out.Valid {
		out.Message = m.tr.Tc(r.Context(), "validation.email")
	}
	return handler.JSON(out)
}
