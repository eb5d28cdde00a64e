// Package handlers wires the portal's HTTP surface: public auth routes and
// the session-guarded dashboard and profile pages.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SHAHRIARJAHIN/club-management/internal/identity"
	"github.com/SHAHRIARJAHIN/club-management/internal/invite"
	"github.com/SHAHRIARJAHIN/club-management/internal/profile"
	"github.com/SHAHRIARJAHIN/club-management/internal/repository"
)

// Options carries the handler dependencies.
type Options struct {
	Identity       *identity.Service
	Profiles       *profile.Service
	Gate           *invite.Gate
	Events         repository.EventRepository
	AllowedOrigins []string
	CookieDomain   string
	CookieSecure   bool
}

// Handler holds the portal's HTTP handlers.
type Handler struct {
	identity     *identity.Service
	profiles     *profile.Service
	gate         *invite.Gate
	events       repository.EventRepository
	cookieDomain string
	cookieSecure bool
}

// Router builds the chi router containing all portal routes.
func Router(opts Options) http.Handler {
	h := &Handler{
		identity:     opts.Identity,
		profiles:     opts.Profiles,
		gate:         opts.Gate,
		events:       opts.Events,
		cookieDomain: opts.CookieDomain,
		cookieSecure: opts.CookieSecure,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	allowed := opts.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	r.Use(httprate.Limit(100, time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Get("/signin", h.handleSignInPage)
		r.Post("/signin", h.handleSignIn)
		r.Get("/signup", h.handleSignUpPage)
		r.Post("/signup", h.handleSignUp)
		r.Post("/signout", h.handleSignOut)
		r.Get("/verify", h.handleVerify)
		r.Get("/verify-email", h.handleVerifyEmailPage)
		r.Post("/verify-email/resend", h.handleResendVerification)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)
		r.Get("/dashboard", h.handleDashboard)
		r.Get("/profile", h.handleProfilePage)
		r.Put("/profile", h.handleProfileUpdate)
		r.Post("/profile/avatar", h.handleAvatarUpload)
	})

	return r
}
