package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
)

const (
	MatterDescriptionMinLen = 2
	MatterDescriptionMaxLen = 128
)

// DefaultReservedMatterWords are description tokens that are never accepted.
// The effective list is configurable; this is the fallback.
var DefaultReservedMatterWords = []string{"admin", "system", "null", "undefined"}

var (
	ErrMatterAlreadyArchived = fmt.Errorf("%w: matter is already archived", apperrors.ErrConflict)
	ErrMatterNotArchived     = fmt.Errorf("%w: matter is not archived", apperrors.ErrConflict)
	ErrMatterAlreadyDeleted  = fmt.Errorf("%w: matter is already deleted", apperrors.ErrConflict)
	ErrMatterNotDeleted      = fmt.Errorf("%w: matter is not deleted", apperrors.ErrConflict)
	// ErrMatterHasActiveDocuments blocks deletion while any owned document is
	// still active.
	ErrMatterHasActiveDocuments = fmt.Errorf("%w: matter has active documents", apperrors.ErrConflict)
)

// Matter is the top-level legal case/client folder. It owns its documents,
// its own activity records and both sides of its transfer history.
type Matter struct {
	MatterID    string `json:"matterID"`
	Description string `json:"description"`
	IsArchived  bool   `json:"isArchived"`
	DeletionMark

	Documents     []Document       `json:"documents,omitempty"`
	Activities    []ActivityRecord `json:"activities,omitempty"`
	TransfersFrom []TransferRecord `json:"transfersFrom,omitempty"`
	TransfersTo   []TransferRecord `json:"transfersTo,omitempty"`

	AuditFields
	// Version is the optimistic-concurrency token maintained by the repository.
	Version int64 `json:"version"`
}

// ValidateMatterDescription checks the local shape constraints: length bounds
// and reserved words. Global uniqueness is the repository collaborator's job.
func ValidateMatterDescription(description string, reservedWords []string) error {
	trimmed := strings.TrimSpace(description)
	n := utf8.RuneCountInString(trimmed)
	if n < MatterDescriptionMinLen || n > MatterDescriptionMaxLen {
		return fmt.Errorf("%w: matter description must be %d-%d characters", apperrors.ErrValidation, MatterDescriptionMinLen, MatterDescriptionMaxLen)
	}
	if len(reservedWords) == 0 {
		reservedWords = DefaultReservedMatterWords
	}
	for _, token := range strings.Fields(trimmed) {
		for _, reserved := range reservedWords {
			if strings.EqualFold(token, reserved) {
				return fmt.Errorf("%w: matter description contains reserved word %q", apperrors.ErrValidation, reserved)
			}
		}
	}
	return nil
}

// NewMatter creates an Active matter and records the CREATED activity. The
// emitted record is the last element of Activities.
func NewMatter(description, createdBy string, now time.Time, reservedWords []string) (*Matter, error) {
	if err := ValidateMatterDescription(description, reservedWords); err != nil {
		return nil, err
	}
	m := &Matter{
		MatterID:    uuid.NewString(),
		Description: strings.TrimSpace(description),
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
	m.appendActivity(ActivityCreated, createdBy, now)
	return m, nil
}

func (m *Matter) appendActivity(activityName, userID string, now time.Time) *ActivityRecord {
	rec := NewActivityRecord(KindMatter, m.MatterID, activityName, userID, now)
	m.Activities = append(m.Activities, rec)
	return &m.Activities[len(m.Activities)-1]
}

// HasActiveDocuments reports whether any owned document is not soft-deleted.
// The Documents collection must be loaded for the answer to be meaningful.
func (m *Matter) HasActiveDocuments() bool {
	for i := range m.Documents {
		if !m.Documents[i].IsDeleted {
			return true
		}
	}
	return false
}

// UpdateDescription re-validates the shape and applies the new description.
// No standard activity is recorded; callers may record a descriptive event.
func (m *Matter) UpdateDescription(description, userID string, now time.Time, reservedWords []string) error {
	if m.IsDeleted {
		return ErrMatterAlreadyDeleted
	}
	if err := ValidateMatterDescription(description, reservedWords); err != nil {
		return err
	}
	m.Description = strings.TrimSpace(description)
	m.touch(userID, now)
	return nil
}

// Archive marks the matter archived and records ARCHIVED.
func (m *Matter) Archive(userID string, now time.Time) (*ActivityRecord, error) {
	if m.IsDeleted {
		return nil, ErrMatterAlreadyDeleted
	}
	if m.IsArchived {
		return nil, ErrMatterAlreadyArchived
	}
	m.IsArchived = true
	m.touch(userID, now)
	return m.appendActivity(ActivityArchived, userID, now), nil
}

// Unarchive clears the archived flag and records UNARCHIVED.
func (m *Matter) Unarchive(userID string, now time.Time) (*ActivityRecord, error) {
	if m.IsDeleted {
		return nil, ErrMatterAlreadyDeleted
	}
	if !m.IsArchived {
		return nil, ErrMatterNotArchived
	}
	m.IsArchived = false
	m.touch(userID, now)
	return m.appendActivity(ActivityUnarchived, userID, now), nil
}

// Delete soft-deletes the matter and records DELETED. Deletion is refused
// while any owned document is still active; prior archival is not required.
func (m *Matter) Delete(userID string, now time.Time) (*ActivityRecord, error) {
	if m.IsDeleted {
		return nil, ErrMatterAlreadyDeleted
	}
	if m.HasActiveDocuments() {
		return nil, ErrMatterHasActiveDocuments
	}
	m.markDeleted(userID, now)
	m.touch(userID, now)
	return m.appendActivity(ActivityDeleted, userID, now), nil
}

// Restore clears the soft-delete triple and records RESTORED.
func (m *Matter) Restore(userID string, now time.Time) (*ActivityRecord, error) {
	if !m.IsDeleted {
		return nil, ErrMatterNotDeleted
	}
	m.clearDeleted()
	m.touch(userID, now)
	return m.appendActivity(ActivityRestored, userID, now), nil
}

// RecordView appends a VIEWED record without changing lifecycle state.
func (m *Matter) RecordView(userID string, now time.Time) (*ActivityRecord, error) {
	if m.IsDeleted {
		return nil, ErrMatterAlreadyDeleted
	}
	return m.appendActivity(ActivityViewed, userID, now), nil
}
