package models

import "errors"

// Business-rule errors raised by portal services. Handlers translate these
// to user-facing messages; anything not listed here surfaces as a generic
// failure.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailUnverified    = errors.New("email registered but unverified")
	ErrStudentIDTaken     = errors.New("student id already registered")
	ErrStudentIDWrite     = errors.New("student id could not be saved")
	ErrInvitationRequired = errors.New("invitation required")
	ErrInvitationInvalid  = errors.New("invitation invalid")
	ErrTokenInvalid       = errors.New("verification token invalid")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrImageTooLarge      = errors.New("image too large")
	ErrAvatarConflict     = errors.New("avatar changed concurrently")
)
