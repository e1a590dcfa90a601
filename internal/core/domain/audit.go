package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityRecord is the immutable fact "user U performed activity A on entity
// E at time T". Records are append-only: they are never mutated or removed,
// even when their subject is soft-deleted.
type ActivityRecord struct {
	RecordID    string     `json:"recordID"`
	SubjectKind EntityKind `json:"subjectKind"`
	SubjectID   string     `json:"subjectID"` // Matter, Document or Revision ID
	ActivityID  string     `json:"activityID"`
	UserID      string     `json:"userID"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewActivityRecord builds a record for a seeded activity name.
func NewActivityRecord(kind EntityKind, subjectID, activityName, userID string, at time.Time) ActivityRecord {
	return ActivityRecord{
		RecordID:    uuid.NewString(),
		SubjectKind: kind,
		SubjectID:   subjectID,
		ActivityID:  mustActivityID(kind, activityName),
		UserID:      userID,
		CreatedAt:   at,
	}
}

// Equal compares by the (subject, activity, user, timestamp) tuple, ignoring
// the record ID. Two records produced by replaying the same action compare
// equal, which supports duplicate detection.
func (r ActivityRecord) Equal(other ActivityRecord) bool {
	return r.SubjectID == other.SubjectID &&
		r.ActivityID == other.ActivityID &&
		r.UserID == other.UserID &&
		r.CreatedAt.Equal(other.CreatedAt)
}

// TransferDirection distinguishes the two halves of a transfer pair.
type TransferDirection string

const (
	TransferFrom TransferDirection = "FROM"
	TransferTo   TransferDirection = "TO"
)

// TransferRecord is one half of a cross-matter transfer audit pair. A logical
// transfer always yields exactly one FROM record on the source matter and one
// TO record on the destination matter, sharing user and timestamp.
type TransferRecord struct {
	RecordID   string            `json:"recordID"`
	DocumentID string            `json:"documentID"`
	MatterID   string            `json:"matterID"`
	ActivityID string            `json:"activityID"` // MOVED or COPIED
	Direction  TransferDirection `json:"direction"`
	UserID     string            `json:"userID"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// NewTransferPair builds both halves of a transfer with identical user and
// timestamp. activityName must be MOVED or COPIED.
func NewTransferPair(documentID, sourceMatterID, destMatterID, activityName, userID string, at time.Time) (from, to TransferRecord) {
	activityID := mustActivityID(KindTransfer, activityName)
	from = TransferRecord{
		RecordID:   uuid.NewString(),
		DocumentID: documentID,
		MatterID:   sourceMatterID,
		ActivityID: activityID,
		Direction:  TransferFrom,
		UserID:     userID,
		CreatedAt:  at,
	}
	to = TransferRecord{
		RecordID:   uuid.NewString(),
		DocumentID: documentID,
		MatterID:   destMatterID,
		ActivityID: activityID,
		Direction:  TransferTo,
		UserID:     userID,
		CreatedAt:  at,
	}
	return from, to
}
