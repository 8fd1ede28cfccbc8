package auth

// Best-effort steps that can fail without failing the operation.
const (
	StepUpdateDisplayName = "update_display_name"
	StepSendVerification  = "send_verification"
	StepProfileUpsert     = "profile_upsert"
	StepEmailUnverified   = "email_unverified"
)

// UserSummary is the caller-facing view of the signed-in user.
type UserSummary struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	PhotoURL      string `json:"photo_url,omitempty"`
	Provider      string `json:"provider"`
}

// Warning describes a degraded step of a successful operation.
type Warning struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// Result is the outcome of every Service operation.
type Result struct {
	Success     bool                `json:"success"`
	User        *UserSummary        `json:"user,omitempty"`
	Error       ErrorKind           `json:"error,omitempty"`
	Message     string              `json:"message,omitempty"`
	Cancelled   bool                `json:"cancelled,omitempty"`
	Fields      map[string][]string `json:"fields,omitempty"`
	Warnings    []Warning           `json:"warnings,omitempty"`
	RedirectURL string              `json:"redirect_url,omitempty"`
}

// HasWarning reports whether the result carries a warning for step.
func (r Result) HasWarning(step string) bool {
	for _, w := range r.Warnings {
		if w.Step == step {
			return true
		}
	}
	return false
}
