package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SHAHRIARJAHIN/club-management/internal/metrics"
	"github.com/SHAHRIARJAHIN/club-management/internal/models"
	"github.com/SHAHRIARJAHIN/club-management/internal/profile"
)

// profileView is the JSON shape of a member profile on page responses.
type profileView struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"fullName"`
	StudentID        *string    `json:"studentId"`
	Phone            *string    `json:"phone"`
	Department       *string    `json:"department"`
	Batch            *string    `json:"batch"`
	MembershipStatus string     `json:"membershipStatus"`
	MembershipTier   *string    `json:"membershipTier"`
	PhotoURL         *string    `json:"photoUrl"`
	ValidUntil       *time.Time `json:"validUntil"`
}

func newProfileView(p *models.Profile) profileView {
	return profileView{
		ID:               p.ID.String(),
		Email:            p.Email,
		FullName:         p.FullName,
		StudentID:        p.StudentID,
		Phone:            p.Phone,
		Department:       p.Department,
		Batch:            p.Batch,
		MembershipStatus: p.MembershipStatus,
		MembershipTier:   p.MembershipTier,
		PhotoURL:         p.PhotoURL,
		ValidUntil:       p.ValidUntil,
	}
}

type eventView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Time     string    `json:"time,omitempty"`
	Location string    `json:"location,omitempty"`
}

// handleDashboard returns the signed-in member's profile together with the
// next three upcoming events.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}

	member, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("load dashboard profile")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}

	upcoming, err := h.events.Upcoming(r.Context(), time.Now(), 3)
	if err != nil {
		// The dashboard still renders without the event strip.
		log.Warn().Err(err).Msg("load upcoming events")
		upcoming = nil
	}
	events := make([]eventView, 0, len(upcoming))
	for _, e := range upcoming {
		events = append(events, eventView{
			ID:       e.ID.String(),
			Name:     e.Name,
			Date:     e.Date,
			Time:     e.Time,
			Location: e.Location,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"profile": newProfileView(member),
		"events":  events,
	})
}

func (h *Handler) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}
	member, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("load profile")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}
	respondJSON(w, http.StatusOK, newProfileView(member))
}

type profileUpdateRequest struct {
	FullName   string `json:"fullName"`
	StudentID  string `json:"studentId"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Batch      string `json:"batch"`
}

func (h *Handler) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}

	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FullName == "" || req.StudentID == "" {
		respondError(w, http.StatusUnprocessableEntity, "full name and student id are required")
		return
	}

	updated, err := h.profiles.Update(r.Context(), id, profile.UpdateParams{
		FullName:   req.FullName,
		StudentID:  req.StudentID,
		Phone:      req.Phone,
		Department: req.Department,
		Batch:      req.Batch,
	})
	switch {
	case errors.Is(err, models.ErrStudentIDTaken):
		respondError(w, http.StatusConflict, msgStudentIDTaken)
		return
	case err != nil:
		log.Error().Err(err).Msg("update profile")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}

	respondJSON(w, http.StatusOK, newProfileView(updated))
}

// handleAvatarUpload replaces the member's avatar from a multipart form
// field named "avatar".
func (h *Handler) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}

	// One byte past the cap distinguishes "too large" from "exactly at cap"
	// without buffering an unbounded body.
	r.Body = http.MaxBytesReader(w, r.Body, profile.MaxAvatarBytes+1024)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, profile.MaxAvatarBytes+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	url, err := h.profiles.UpdateAvatar(r.Context(), id, data)
	switch {
	case errors.Is(err, models.ErrImageTooLarge):
		metrics.AvatarUploads.WithLabelValues("invalid").Inc()
		respondError(w, http.StatusRequestEntityTooLarge, "File size must be less than 2MB")
		return
	case errors.Is(err, models.ErrUnsupportedImage):
		metrics.AvatarUploads.WithLabelValues("invalid").Inc()
		respondError(w, http.StatusUnsupportedMediaType, "Only JPG, PNG, and WEBP images are allowed")
		return
	case errors.Is(err, models.ErrAvatarConflict):
		metrics.AvatarUploads.WithLabelValues("conflict").Inc()
		respondError(w, http.StatusConflict, "Your avatar was changed by another session. Reload and try again.")
		return
	case err != nil:
		metrics.AvatarUploads.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("upload avatar")
		respondError(w, http.StatusInternalServerError, msgGenericFailure)
		return
	}

	metrics.AvatarUploads.WithLabelValues("success").Inc()
	respondJSON(w, http.StatusOK, map[string]any{"photoUrl": url})
}
