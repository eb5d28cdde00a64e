// Package profile provides member profile reads, form updates, and the
// avatar replacement flow.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
	"github.com/SHAHRIARJAHIN/club-management/internal/repository"
)

// Service provides profile business logic.
type Service struct {
	profiles repository.ProfileRepository
	store    ObjectStore
	now      func() time.Time
}

// NewService wires a profile service.
func NewService(profiles repository.ProfileRepository, store ObjectStore) *Service {
	return &Service{profiles: profiles, store: store, now: time.Now}
}

// Get returns the profile for the given account id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if profile == nil {
		return nil, models.ErrProfileNotFound
	}
	return profile, nil
}

// UpdateParams is the editable field set of the profile form. Optional
// fields left blank are persisted as NULL, never as empty strings.
type UpdateParams struct {
	FullName   string
	StudentID  string
	Phone      string
	Department string
	Batch      string
}

// Update applies the profile form in a single write scoped by account id,
// stamping updated_at, and returns the profile merged with the submitted
// fields rather than re-fetched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Profile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(params.FullName)
	studentID := strings.TrimSpace(params.StudentID)

	holder, err := s.profiles.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("lookup student id: %w", err)
	}
	if holder != nil && holder.ID != id {
		return nil, models.ErrStudentIDTaken
	}

	phone := normalizeOptional(params.Phone)
	department := normalizeOptional(params.Department)
	batch := normalizeOptional(params.Batch)
	updatedAt := s.now().UTC()

	fields := map[string]any{
		"full_name":  fullName,
		"student_id": studentID,
		"phone":      phone,
		"department": department,
		"batch":      batch,
		"updated_at": updatedAt,
	}
	if err := s.profiles.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	profile.FullName = fullName
	profile.StudentID = &studentID
	profile.Phone = phone
	profile.Department = department
	profile.Batch = batch
	profile.UpdatedAt = updatedAt
	return profile, nil
}

// normalizeOptional maps whitespace-only form input to NULL.
func normalizeOptional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
