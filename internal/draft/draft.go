// Package draft holds the mutable state of an in-progress order and keeps
// its derived price consistent with every mutation.
package draft

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"video-order-service/internal/apperrors"
	"video-order-service/internal/models"
	"video-order-service/internal/pricing"

	"github.com/google/uuid"
)

// Store owns a single order draft for one customer session. One mutation
// completes before the next begins; there is no multi-writer scenario
// beyond concurrent HTTP handlers touching the same session.
type Store struct {
	mu     sync.Mutex
	d      models.OrderDraft
	frozen bool
}

// NewStore creates a draft with the wizard's default values.
func NewStore() *Store {
	return &Store{
		d: models.OrderDraft{
			DurationSeconds: models.DurationDefault,
			Style:           models.StyleRealistic,
			ReferenceImages: []models.ImageRef{},
			Price:           pricing.Compute(models.DurationDefault, 0),
		},
	}
}

// SetDescription updates the activity description.
func (s *Store) SetDescription(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperrors.ErrDraftFrozen
	}
	s.d.ActivityDescription = v
	return nil
}

// SetDuration updates the duration and re-derives the price. Values outside
// the 10..45 step-5 domain are rejected so pricing never sees them.
func (s *Store) SetDuration(seconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperrors.ErrDraftFrozen
	}
	if !models.ValidDuration(seconds) {
		return &apperrors.ValidationError{
			Field:   "duration_seconds",
			Message: fmt.Sprintf("duration must be %d-%d seconds in steps of %d", models.DurationMin, models.DurationMax, models.DurationStep),
		}
	}
	s.d.DurationSeconds = seconds
	s.recomputePrice()
	return nil
}

// SetStyle updates the visual style.
func (s *Store) SetStyle(v models.Style) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperrors.ErrDraftFrozen
	}
	if !v.Valid() {
		return &apperrors.ValidationError{
			Field:   "style",
			Message: "style must be one of realistic, cinematic, animated, stylized",
		}
	}
	s.d.Style = v
	return nil
}

// SetNotes updates the optional additional notes.
func (s *Store) SetNotes(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperrors.ErrDraftFrozen
	}
	s.d.AdditionalNotes = v
	return nil
}

// AddImages appends uploads to the reference image sequence, never
// replacing existing entries, and re-derives the price from the new count.
func (s *Store) AddImages(uploads []models.Upload) ([]models.ImageRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return nil, apperrors.ErrDraftFrozen
	}

	added := make([]models.ImageRef, 0, len(uploads))
	for _, u := range uploads {
		ref := models.ImageRef{
			ID:   uuid.New().String(),
			Name: u.Name,
			Size: u.Size,
		}
		s.d.ReferenceImages = append(s.d.ReferenceImages, ref)
		added = append(added, ref)
	}

	s.recomputePrice()
	return added, nil
}

// RemoveImage removes the reference image at index and re-derives the
// price. An index outside [0, len) leaves the sequence unchanged.
func (s *Store) RemoveImage(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperrors.ErrDraftFrozen
	}
	if index < 0 || index >= len(s.d.ReferenceImages) {
		return fmt.Errorf("remove image %d of %d: %w", index, len(s.d.ReferenceImages), apperrors.ErrOutOfRange)
	}

	s.d.ReferenceImages = append(s.d.ReferenceImages[:index], s.d.ReferenceImages[index+1:]...)
	s.recomputePrice()
	return nil
}

// Draft returns a read snapshot of the current draft.
func (s *Store) Draft() models.OrderDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.d
	snap.ReferenceImages = make([]models.ImageRef, len(s.d.ReferenceImages))
	copy(snap.ReferenceImages, s.d.ReferenceImages)
	return snap
}

// Price returns the current derived price.
func (s *Store) Price() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.Price
}

// IsStep1Valid reports whether the details step passes validation.
func (s *Store) IsStep1Valid() bool {
	return len(s.Step1Errors()) == 0
}

// Step1Errors returns the field errors blocking the details step.
// Additional notes are never required.
func (s *Store) Step1Errors() []apperrors.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []apperrors.ValidationError
	if utf8.RuneCountInString(s.d.ActivityDescription) < models.MinDescriptionLen {
		errs = append(errs, apperrors.ValidationError{
			Field:   "activity_description",
			Message: fmt.Sprintf("activity description must be at least %d characters", models.MinDescriptionLen),
		})
	}
	if !models.ValidDuration(s.d.DurationSeconds) {
		errs = append(errs, apperrors.ValidationError{
			Field:   "duration_seconds",
			Message: "duration is outside the allowed range",
		})
	}
	if !s.d.Style.Valid() {
		errs = append(errs, apperrors.ValidationError{
			Field:   "style",
			Message: "unknown video style",
		})
	}
	return errs
}

// Freeze makes the draft read-only. Used on submission; there is no thaw.
func (s *Store) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Frozen reports whether the draft has been frozen.
func (s *Store) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

func (s *Store) recomputePrice() {
	s.d.Price = pricing.Compute(s.d.DurationSeconds, len(s.d.ReferenceImages))
}
