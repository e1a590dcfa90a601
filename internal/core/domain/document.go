package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
)

const (
	DocumentFileNameMaxLen = 255
	// MinDocumentFileSize and MaxDocumentFileSize bound the recorded byte size.
	MinDocumentFileSize int64 = 1
	MaxDocumentFileSize int64 = 100 * 1024 * 1024
)

var (
	checksumPattern  = regexp.MustCompile(`^[a-f0-9]{64}$`)
	extensionPattern = regexp.MustCompile(`^[a-z0-9]{1,10}$`)
	mimeTypePattern  = regexp.MustCompile(`^[a-zA-Z0-9!#$&^_.+-]+/[a-zA-Z0-9!#$&^_.+-]+$`)
)

var (
	// ErrDocumentDeleted guards operations that require a live document.
	ErrDocumentDeleted        = fmt.Errorf("%w: document is deleted", apperrors.ErrConflict)
	ErrDocumentAlreadyDeleted = fmt.Errorf("%w: document is already deleted", apperrors.ErrConflict)
	ErrDocumentNotDeleted     = fmt.Errorf("%w: document is not deleted", apperrors.ErrConflict)
	// ErrDocumentCheckedOut blocks delete and transfer while a user holds the lock.
	ErrDocumentCheckedOut        = fmt.Errorf("%w: document is checked out", apperrors.ErrConflict)
	ErrDocumentAlreadyCheckedOut = fmt.Errorf("%w: document is already checked out", apperrors.ErrConflict)
	ErrDocumentNotCheckedOut     = fmt.Errorf("%w: document is not checked out", apperrors.ErrConflict)
	// ErrNotCheckoutHolder rejects check-in (or save while checked out) by
	// anyone but the holder.
	ErrNotCheckoutHolder = fmt.Errorf("%w: document is checked out by another user", apperrors.ErrUnauthorized)
)

// Document is a file record owned by exactly one matter at a time. The matter
// assignment changes only through a transfer, never by direct field update.
type Document struct {
	DocumentID    string `json:"documentID"`
	MatterID      string `json:"matterID"`
	FileName      string `json:"fileName"`
	Extension     string `json:"extension"` // normalized lowercase, no dot
	FileSizeBytes int64  `json:"fileSizeBytes"`
	MimeType      string `json:"mimeType"`
	Checksum      string `json:"checksum"` // SHA-256, 64 lowercase hex chars

	// The checked-out triple is set and cleared together, never partially.
	IsCheckedOut bool       `json:"isCheckedOut"`
	CheckedOutBy *string    `json:"checkedOutBy,omitempty"`
	CheckedOutAt *time.Time `json:"checkedOutAt,omitempty"`

	DeletionMark

	Revisions  []Revision       `json:"revisions,omitempty"`
	Activities []ActivityRecord `json:"activities,omitempty"`

	AuditFields
	Version int64 `json:"version"`
}

// NormalizeExtension lowercases an extension and strips a leading dot.
func NormalizeExtension(extension string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(extension)), ".")
}

// NewDocument validates all field constraints and creates the document in the
// given matter, recording the CREATED activity. The extension allow-list is
// the caller's collaborator; only the shape is checked here.
func NewDocument(fileName, extension string, fileSizeBytes int64, mimeType, checksum, matterID, createdBy string, now time.Time) (*Document, error) {
	fileName = strings.TrimSpace(fileName)
	if n := utf8.RuneCountInString(fileName); n < 1 || n > DocumentFileNameMaxLen {
		return nil, fmt.Errorf("%w: file name must be 1-%d characters", apperrors.ErrValidation, DocumentFileNameMaxLen)
	}
	if strings.ContainsAny(fileName, "/\\\x00") {
		return nil, fmt.Errorf("%w: file name must not contain path separators", apperrors.ErrValidation)
	}
	ext := NormalizeExtension(extension)
	if !extensionPattern.MatchString(ext) {
		return nil, fmt.Errorf("%w: invalid file extension %q", apperrors.ErrValidation, extension)
	}
	if fileSizeBytes < MinDocumentFileSize || fileSizeBytes > MaxDocumentFileSize {
		return nil, fmt.Errorf("%w: file size must be between %d and %d bytes", apperrors.ErrValidation, MinDocumentFileSize, MaxDocumentFileSize)
	}
	if !mimeTypePattern.MatchString(mimeType) {
		return nil, fmt.Errorf("%w: invalid mime type %q", apperrors.ErrValidation, mimeType)
	}
	if !checksumPattern.MatchString(checksum) {
		return nil, fmt.Errorf("%w: checksum must be 64 lowercase hex characters", apperrors.ErrValidation)
	}
	if matterID == "" {
		return nil, fmt.Errorf("%w: matter ID is required", apperrors.ErrValidation)
	}
	d := &Document{
		DocumentID:    uuid.NewString(),
		MatterID:      matterID,
		FileName:      fileName,
		Extension:     ext,
		FileSizeBytes: fileSizeBytes,
		MimeType:      mimeType,
		Checksum:      checksum,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
	d.appendActivity(ActivityCreated, createdBy, now)
	return d, nil
}

func (d *Document) appendActivity(activityName, userID string, now time.Time) *ActivityRecord {
	rec := NewActivityRecord(KindDocument, d.DocumentID, activityName, userID, now)
	d.Activities = append(d.Activities, rec)
	return &d.Activities[len(d.Activities)-1]
}

// CheckOut acquires the editing lock for userID and records CHECKED OUT.
func (d *Document) CheckOut(userID string, now time.Time) (*ActivityRecord, error) {
	if d.IsDeleted {
		return nil, ErrDocumentDeleted
	}
	if d.IsCheckedOut {
		return nil, fmt.Errorf("%w (held by user %s)", ErrDocumentAlreadyCheckedOut, *d.CheckedOutBy)
	}
	d.IsCheckedOut = true
	d.CheckedOutBy = &userID
	d.CheckedOutAt = &now
	d.touch(userID, now)
	return d.appendActivity(ActivityCheckedOut, userID, now), nil
}

// CheckIn releases the editing lock. Only the current holder may check in.
func (d *Document) CheckIn(userID string, now time.Time) (*ActivityRecord, error) {
	if d.IsDeleted {
		return nil, ErrDocumentDeleted
	}
	if !d.IsCheckedOut {
		return nil, ErrDocumentNotCheckedOut
	}
	if *d.CheckedOutBy != userID {
		return nil, fmt.Errorf("%w (held by user %s)", ErrNotCheckoutHolder, *d.CheckedOutBy)
	}
	d.IsCheckedOut = false
	d.CheckedOutBy = nil
	d.CheckedOutAt = nil
	d.touch(userID, now)
	return d.appendActivity(ActivityCheckedIn, userID, now), nil
}

// Delete soft-deletes the document and records DELETED. A checked-out
// document must be checked in first.
func (d *Document) Delete(userID string, now time.Time) (*ActivityRecord, error) {
	if d.IsDeleted {
		return nil, ErrDocumentAlreadyDeleted
	}
	if d.IsCheckedOut {
		return nil, fmt.Errorf("%w (held by user %s)", ErrDocumentCheckedOut, *d.CheckedOutBy)
	}
	d.markDeleted(userID, now)
	d.touch(userID, now)
	return d.appendActivity(ActivityDeleted, userID, now), nil
}

// Restore clears the soft-delete triple and records RESTORED.
func (d *Document) Restore(userID string, now time.Time) (*ActivityRecord, error) {
	if !d.IsDeleted {
		return nil, ErrDocumentNotDeleted
	}
	d.clearDeleted()
	d.touch(userID, now)
	return d.appendActivity(ActivityRestored, userID, now), nil
}

// RecordSave records a SAVED activity after a content rewrite. While the
// document is checked out only the holder may save.
func (d *Document) RecordSave(userID string, now time.Time) (*ActivityRecord, error) {
	if d.IsDeleted {
		return nil, ErrDocumentDeleted
	}
	if d.IsCheckedOut && *d.CheckedOutBy != userID {
		return nil, fmt.Errorf("%w (held by user %s)", ErrNotCheckoutHolder, *d.CheckedOutBy)
	}
	d.touch(userID, now)
	return d.appendActivity(ActivitySaved, userID, now), nil
}

// NextRevisionNumber computes max(existing numbers, 0) + 1. Soft-deleted
// revisions keep their slot in the sequence.
func (d *Document) NextRevisionNumber() int {
	next := 1
	for i := range d.Revisions {
		if d.Revisions[i].RevisionNumber >= next {
			next = d.Revisions[i].RevisionNumber + 1
		}
	}
	return next
}

// AddRevision attaches a revision to the document. The revision number must
// equal the computed next number; anything else is rejected so the per-document
// sequence stays contiguous with no duplicates.
func (d *Document) AddRevision(rev Revision, userID string, now time.Time) error {
	if d.IsDeleted {
		return ErrDocumentDeleted
	}
	if rev.DocumentID != d.DocumentID {
		return fmt.Errorf("%w: revision belongs to document %s", apperrors.ErrValidation, rev.DocumentID)
	}
	if next := d.NextRevisionNumber(); rev.RevisionNumber != next {
		return fmt.Errorf("%w: expected revision number %d, got %d", ErrRevisionOutOfSequence, next, rev.RevisionNumber)
	}
	d.Revisions = append(d.Revisions, rev)
	d.touch(userID, now)
	return nil
}

// RevisionByID finds an owned revision. The returned pointer addresses the
// document's own slice so mutations stay inside the aggregate.
func (d *Document) RevisionByID(revisionID string) (*Revision, error) {
	for i := range d.Revisions {
		if d.Revisions[i].RevisionID == revisionID {
			return &d.Revisions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: revision %s", apperrors.ErrNotFound, revisionID)
}

// TransferTo moves the document to another matter. Only the transfer
// coordinator may call this; MatterID is otherwise immutable after creation.
func (d *Document) TransferTo(destMatterID, userID string, now time.Time) error {
	if d.IsDeleted {
		return ErrDocumentDeleted
	}
	if d.IsCheckedOut {
		return fmt.Errorf("%w (held by user %s)", ErrDocumentCheckedOut, *d.CheckedOutBy)
	}
	d.MatterID = destMatterID
	d.touch(userID, now)
	return nil
}

// CloneForCopy duplicates the document into the destination matter under a
// new identity. Revision numbers and deletion marks are preserved; revision
// identities and audit trails start fresh at the copy.
func (d *Document) CloneForCopy(destMatterID, userID string, now time.Time) *Document {
	clone := &Document{
		DocumentID:    uuid.NewString(),
		MatterID:      destMatterID,
		FileName:      d.FileName,
		Extension:     d.Extension,
		FileSizeBytes: d.FileSizeBytes,
		MimeType:      d.MimeType,
		Checksum:      d.Checksum,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for i := range d.Revisions {
		clone.Revisions = append(clone.Revisions, d.Revisions[i].cloneFor(clone.DocumentID, userID, now))
	}
	clone.appendActivity(ActivityCreated, userID, now)
	return clone
}
