package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const sessionCookieName = "portal_session"

type contextKey string

var profileIDContextKey = contextKey("profile_id")

// requireSession is the session guard on protected pages. It runs before
// any other data fetch: without a valid session the response is a redirect
// to sign-in carrying the originally requested path, and no page body is
// produced. A missing session is a normal branch, never logged as an error.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		session, _, err := h.identity.SessionProfile(r.Context(), token)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "something went wrong")
			return
		}
		if session == nil {
			redirectToSignIn(w, r, r.URL.Path)
			return
		}
		ctx := context.WithValue(r.Context(), profileIDContextKey, session.ProfileID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// profileIDFromContext returns the authenticated profile id. Only valid on
// requests that passed the session guard.
func profileIDFromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(profileIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("profile id not found in context")
	}
	return id, nil
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func redirectToSignIn(w http.ResponseWriter, r *http.Request, returnURL string) {
	target := "/auth/signin?returnUrl=" + url.QueryEscape(returnURL)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
