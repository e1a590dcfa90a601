package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
)

const (
	MinRevisionNumber = 1
	MaxRevisionNumber = 999999

	// MaxClockSkew is the tolerance for timestamps slightly ahead of the
	// validating clock.
	MaxClockSkew = time.Minute
)

// RevisionEpoch is the earliest acceptable revision timestamp (1980-01-01 UTC).
var RevisionEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	// ErrRevisionOutOfSequence rejects revision numbers that would leave gaps
	// or duplicates in a document's sequence.
	ErrRevisionOutOfSequence  = fmt.Errorf("%w: revision number out of sequence", apperrors.ErrSequencing)
	ErrRevisionAlreadyDeleted = fmt.Errorf("%w: revision is already deleted", apperrors.ErrConflict)
	ErrRevisionNotDeleted     = fmt.Errorf("%w: revision is not deleted", apperrors.ErrConflict)
)

// Revision is a single numbered version of a document's content. It is
// passive: all state transitions are simple soft-delete flips plus audit
// records, and its number is fixed at creation.
type Revision struct {
	RevisionID     string    `json:"revisionID"`
	DocumentID     string    `json:"documentID"`
	RevisionNumber int       `json:"revisionNumber"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	ModifiedAt     time.Time `json:"modifiedAt"`
	ModifiedBy     string    `json:"modifiedBy"`
	DeletionMark

	Activities []ActivityRecord `json:"activities,omitempty"`
}

// NewRevision validates number and date bounds and records CREATED. The
// caller attaches the result to its document via AddRevision, which enforces
// the sequencing rule.
func NewRevision(documentID string, revisionNumber int, createdBy string, now time.Time) (*Revision, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document ID is required", apperrors.ErrValidation)
	}
	if revisionNumber < MinRevisionNumber || revisionNumber > MaxRevisionNumber {
		return nil, fmt.Errorf("%w: revision number must be between %d and %d", apperrors.ErrValidation, MinRevisionNumber, MaxRevisionNumber)
	}
	if err := validateRevisionTime(now, now); err != nil {
		return nil, err
	}
	r := &Revision{
		RevisionID:     uuid.NewString(),
		DocumentID:     documentID,
		RevisionNumber: revisionNumber,
		CreatedAt:      now,
		CreatedBy:      createdBy,
		ModifiedAt:     now,
		ModifiedBy:     createdBy,
	}
	r.appendActivity(ActivityCreated, createdBy, now)
	return r, nil
}

// validateRevisionTime checks the window [RevisionEpoch, clock+skew].
func validateRevisionTime(ts, clockNow time.Time) error {
	if ts.Before(RevisionEpoch) {
		return fmt.Errorf("%w: revision timestamp predates %s", apperrors.ErrValidation, RevisionEpoch.Format(time.DateOnly))
	}
	if ts.After(clockNow.Add(MaxClockSkew)) {
		return fmt.Errorf("%w: revision timestamp is in the future", apperrors.ErrValidation)
	}
	return nil
}

func (r *Revision) appendActivity(activityName, userID string, now time.Time) *ActivityRecord {
	rec := NewActivityRecord(KindRevision, r.RevisionID, activityName, userID, now)
	r.Activities = append(r.Activities, rec)
	return &r.Activities[len(r.Activities)-1]
}

// Delete soft-deletes the revision independently of its document and records
// DELETED. The revision keeps its number in the sequence.
func (r *Revision) Delete(userID string, now time.Time) (*ActivityRecord, error) {
	if r.IsDeleted {
		return nil, ErrRevisionAlreadyDeleted
	}
	r.markDeleted(userID, now)
	return r.appendActivity(ActivityDeleted, userID, now), nil
}

// Restore clears the soft-delete triple and records RESTORED.
func (r *Revision) Restore(userID string, now time.Time) (*ActivityRecord, error) {
	if !r.IsDeleted {
		return nil, ErrRevisionNotDeleted
	}
	r.clearDeleted()
	return r.appendActivity(ActivityRestored, userID, now), nil
}

// Touch bumps ModifiedAt after a content rewrite and records SAVED.
func (r *Revision) Touch(userID string, now time.Time) (*ActivityRecord, error) {
	if r.IsDeleted {
		return nil, ErrRevisionAlreadyDeleted
	}
	if err := validateRevisionTime(now, now); err != nil {
		return nil, err
	}
	if now.Before(r.CreatedAt) {
		return nil, fmt.Errorf("%w: modification time precedes creation time", apperrors.ErrValidation)
	}
	r.ModifiedAt = now
	r.ModifiedBy = userID
	return r.appendActivity(ActivitySaved, userID, now), nil
}

// cloneFor duplicates the revision for a copied document: new identity, fresh
// timestamps and audit trail, preserved number and deletion mark.
func (r *Revision) cloneFor(documentID, userID string, now time.Time) Revision {
	clone := Revision{
		RevisionID:     uuid.NewString(),
		DocumentID:     documentID,
		RevisionNumber: r.RevisionNumber,
		CreatedAt:      now,
		CreatedBy:      userID,
		ModifiedAt:     now,
		ModifiedBy:     userID,
		DeletionMark:   r.DeletionMark,
	}
	clone.appendActivity(ActivityCreated, userID, now)
	return clone
}
