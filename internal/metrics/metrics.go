// Package metrics exposes Prometheus counters for portal outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignIns counts sign-in attempts by outcome
	// (success, invalid_credentials, unconfirmed, error).
	SignIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_signin_attempts_total",
		Help: "Sign-in attempts by outcome.",
	}, []string{"outcome"})

	// SignUps counts sign-up attempts by outcome
	// (success, duplicate_student_id, email_taken, rejected, error).
	SignUps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_signup_attempts_total",
		Help: "Sign-up attempts by outcome.",
	}, []string{"outcome"})

	// AvatarUploads counts avatar replacements by outcome
	// (success, invalid, conflict, error).
	AvatarUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_avatar_uploads_total",
		Help: "Avatar upload attempts by outcome.",
	}, []string{"outcome"})
)
