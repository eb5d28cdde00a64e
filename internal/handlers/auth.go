package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/SHAHRIARJAHIN/club-management/internal/identity"
	"github.com/SHAHRIARJAHIN/club-management/internal/invite"
	"github.com/SHAHRIARJAHIN/club-management/internal/metrics"
	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// User-facing messages for business-rule outcomes.
const (
	msgInvalidCredentials = "Invalid email or password. Please try again."
	msgEmailNotConfirmed  = "Please verify your email before signing in. Check your inbox."
	msgStudentIDTaken     = "This Student ID is already registered."
	msgEmailUnverified    = "This email is already registered. Please verify your email."
	msgEmailTaken         = "An account with this email already exists."
	msgEmailDomain        = "Please use an email address from an allowed domain."
	msgGenericFailure     = "Something went wrong. Please try again."
)

// handleSignInPage serves sign-in page data, echoing the error marker the
// gate redirects carry.
func (h *Handler) handleSignInPage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"error":     r.URL.Query().Get("error"),
		"returnUrl": safeReturnURL(r.URL.Query().Get("returnUrl")),
	})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, _, err := h.identity.SignIn(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		metrics.SignIns.WithLabelValues("invalid_credentials").Inc()
		respondError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	case errors.Is(err, models.ErrEmailNotConfirmed):
		// The just-issued session was already revoked; no cookie is set and
		// no redirect to the dashboard happens.
		metrics.SignIns.WithLabelValues("unconfirmed").Inc()
		respondError(w, http.StatusForbidden, msgEmailNotConfirmed)
		return
	case err != nil:
		metrics.SignIns.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("sign in")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}

	metrics.SignIns.WithLabelValues("success").Inc()
	h.setSessionCookie(w, session.Token, session.ExpiresAt)
	http.Redirect(w, r, safeReturnURL(r.URL.Query().Get("returnUrl")), http.StatusSeeOther)
}

// handleSignUpPage runs the invitation/domain gate before the sign-up view
// renders. An authenticated visitor is sent back to where they came from.
func (h *Handler) handleSignUpPage(w http.ResponseWriter, r *http.Request) {
	if session, _, err := h.identity.SessionProfile(r.Context(), sessionToken(r)); err == nil && session != nil {
		http.Redirect(w, r, safeReturnURL(r.URL.Query().Get("returnUrl")), http.StatusSeeOther)
		return
	}

	decision, err := h.gate.Check(r.Context(), r.URL.Query().Get("token"))
	switch {
	case errors.Is(err, models.ErrInvitationRequired):
		http.Redirect(w, r, "/auth/signin?error=invitation_required", http.StatusSeeOther)
		return
	case errors.Is(err, models.ErrInvitationInvalid):
		http.Redirect(w, r, "/auth/signin?error=invalid_invitation", http.StatusSeeOther)
		return
	case err != nil:
		log.Error().Err(err).Msg("signup gate")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"allowedDomains":  decision.AllowedDomains,
		"invitationToken": decision.InvitationToken,
	})
}

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FullName        string `json:"fullName"`
	StudentID       string `json:"studentId"`
	InvitationToken string `json:"invitationToken"`
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateSignUp(req); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	// The gate is re-checked server-side so a crafted POST cannot bypass an
	// invite-only policy the page load enforced.
	decision, err := h.gate.Check(r.Context(), req.InvitationToken)
	switch {
	case errors.Is(err, models.ErrInvitationRequired), errors.Is(err, models.ErrInvitationInvalid):
		metrics.SignUps.WithLabelValues("rejected").Inc()
		respondError(w, http.StatusForbidden, "A valid invitation is required to sign up.")
		return
	case err != nil:
		log.Error().Err(err).Msg("signup gate")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}
	if !invite.DomainAllowed(req.Email, decision.AllowedDomains) {
		metrics.SignUps.WithLabelValues("rejected").Inc()
		respondError(w, http.StatusForbidden, msgEmailDomain)
		return
	}

	profile, err := h.identity.SignUp(r.Context(), identity.SignUpParams{
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		StudentID: req.StudentID,
	})
	switch {
	case errors.Is(err, models.ErrStudentIDTaken):
		metrics.SignUps.WithLabelValues("duplicate_student_id").Inc()
		respondError(w, http.StatusConflict, msgStudentIDTaken)
		return
	case errors.Is(err, models.ErrEmailUnverified):
		metrics.SignUps.WithLabelValues("email_taken").Inc()
		respondError(w, http.StatusConflict, msgEmailUnverified)
		return
	case errors.Is(err, models.ErrEmailTaken):
		metrics.SignUps.WithLabelValues("email_taken").Inc()
		respondError(w, http.StatusConflict, msgEmailTaken)
		return
	case errors.Is(err, models.ErrStudentIDWrite):
		metrics.SignUps.WithLabelValues("error").Inc()
		respondError(w, http.StatusInternalServerError, "Your account was created but the Student ID could not be saved. Please contact an administrator.")
		return
	case err != nil:
		metrics.SignUps.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("sign up")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}

	if err := h.gate.Consume(r.Context(), decision.InvitationToken); err != nil {
		// The account exists; a stuck invitation is an operator concern.
		log.Error().Err(err).Msg("consume invitation")
	}

	metrics.SignUps.WithLabelValues("success").Inc()
	respondJSON(w, http.StatusCreated, map[string]any{
		"redirect": "/auth/verify-email?email=" + url.QueryEscape(profile.Email),
	})
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.SignOut(r.Context(), sessionToken(r)); err != nil {
		log.Error().Err(err).Msg("sign out")
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/auth/signin", http.StatusSeeOther)
}

// handleVerify consumes an email verification link.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	err := h.identity.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	switch {
	case errors.Is(err, models.ErrTokenInvalid):
		respondError(w, http.StatusBadRequest, "This verification link is invalid or has expired.")
		return
	case err != nil:
		log.Error().Err(err).Msg("verify email")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}
	http.Redirect(w, r, "/auth/signin?verified=1", http.StatusSeeOther)
}

func (h *Handler) handleVerifyEmailPage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"email": r.URL.Query().Get("email"),
	})
}

type resendRequest struct {
	Email string `json:"email"`
}

func (h *Handler) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := h.identity.ResendVerification(r.Context(), req.Email); err != nil {
		log.Error().Err(err).Msg("resend verification")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]any{
		"message": "If the address is registered and unverified, a new verification email is on its way.",
	})
}

func validateSignUp(req signUpRequest) string {
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return "Please enter a valid email."
	}
	if len(req.Password) < 8 {
		return "Password must be at least 8 characters."
	}
	if len(strings.TrimSpace(req.FullName)) < 2 {
		return "Full name is required."
	}
	if strings.TrimSpace(req.StudentID) == "" {
		return "Student ID is required."
	}
	return ""
}

// safeReturnURL keeps redirects on-site; anything else falls back to the
// dashboard.
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/dashboard"
	}
	return raw
}
