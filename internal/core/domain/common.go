package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

func (a *AuditFields) touch(userID string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
}

// DeletionMark is the shared soft-delete triple. The three fields are always
// set and cleared together; history referencing the entity survives deletion.
type DeletionMark struct {
	IsDeleted bool       `json:"isDeleted"`
	DeletedBy *string    `json:"deletedBy,omitempty"` // UserID reference
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (d *DeletionMark) markDeleted(userID string, now time.Time) {
	d.IsDeleted = true
	d.DeletedBy = &userID
	d.DeletedAt = &now
}

func (d *DeletionMark) clearDeleted() {
	d.IsDeleted = false
	d.DeletedBy = nil
	d.DeletedAt = nil
}
