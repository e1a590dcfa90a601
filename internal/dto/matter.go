package dto

import (
	"time"

	"github.com/lexfile/matter_docs_app/internal/core/domain"
)

// CreateMatterRequest carries the input for creating a matter.
type CreateMatterRequest struct {
	Description string `json:"description" validate:"required,min=2,max=128"`
}

// UpdateMatterDescriptionRequest carries a description change.
type UpdateMatterDescriptionRequest struct {
	Description string `json:"description" validate:"required,min=2,max=128"`
}

// ListMattersParams filters matter listings.
type ListMattersParams struct {
	IncludeArchived bool `json:"includeArchived"`
	IncludeDeleted  bool `json:"includeDeleted"`
}

// MatterResponse defines the data returned for a matter.
type MatterResponse struct {
	MatterID      string     `json:"matterID"`
	Description   string     `json:"description"`
	IsArchived    bool       `json:"isArchived"`
	IsDeleted     bool       `json:"isDeleted"`
	DeletedBy     *string    `json:"deletedBy,omitempty"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedBy     string     `json:"createdBy"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy string     `json:"lastUpdatedBy"`
}

// ActivityRecordResponse defines the data returned for one audit record.
type ActivityRecordResponse struct {
	RecordID     string    `json:"recordID"`
	SubjectKind  string    `json:"subjectKind"`
	SubjectID    string    `json:"subjectID"`
	ActivityID   string    `json:"activityID"`
	ActivityName string    `json:"activityName,omitempty"`
	UserID       string    `json:"userID"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TransferRecordResponse defines the data returned for one half of a transfer
// audit pair.
type TransferRecordResponse struct {
	RecordID     string    `json:"recordID"`
	DocumentID   string    `json:"documentID"`
	MatterID     string    `json:"matterID"`
	ActivityID   string    `json:"activityID"`
	ActivityName string    `json:"activityName,omitempty"`
	Direction    string    `json:"direction"`
	UserID       string    `json:"userID"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MatterActivityResponse combines a matter's own activity records with both
// sides of its transfer history.
type MatterActivityResponse struct {
	Activities    []ActivityRecordResponse `json:"activities"`
	TransfersFrom []TransferRecordResponse `json:"transfersFrom"`
	TransfersTo   []TransferRecordResponse `json:"transfersTo"`
}

// ToMatterResponse converts a domain.Matter to MatterResponse.
func ToMatterResponse(m *domain.Matter) MatterResponse {
	return MatterResponse{
		MatterID:      m.MatterID,
		Description:   m.Description,
		IsArchived:    m.IsArchived,
		IsDeleted:     m.IsDeleted,
		DeletedBy:     m.DeletedBy,
		DeletedAt:     m.DeletedAt,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToActivityRecordResponse converts a domain.ActivityRecord, resolving the
// activity name from the seeded catalog.
func ToActivityRecordResponse(r *domain.ActivityRecord) ActivityRecordResponse {
	resp := ActivityRecordResponse{
		RecordID:    r.RecordID,
		SubjectKind: string(r.SubjectKind),
		SubjectID:   r.SubjectID,
		ActivityID:  r.ActivityID,
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
	}
	if a, ok := domain.DefaultActivityCatalog().ActivityByID(r.ActivityID); ok {
		resp.ActivityName = a.Name
	}
	return resp
}

// ToActivityRecordResponses converts a slice of records.
func ToActivityRecordResponses(records []domain.ActivityRecord) []ActivityRecordResponse {
	responses := make([]ActivityRecordResponse, len(records))
	for i := range records {
		responses[i] = ToActivityRecordResponse(&records[i])
	}
	return responses
}

// ToTransferRecordResponse converts a domain.TransferRecord.
func ToTransferRecordResponse(r *domain.TransferRecord) TransferRecordResponse {
	resp := TransferRecordResponse{
		RecordID:   r.RecordID,
		DocumentID: r.DocumentID,
		MatterID:   r.MatterID,
		ActivityID: r.ActivityID,
		Direction:  string(r.Direction),
		UserID:     r.UserID,
		CreatedAt:  r.CreatedAt,
	}
	if a, ok := domain.DefaultActivityCatalog().ActivityByID(r.ActivityID); ok {
		resp.ActivityName = a.Name
	}
	return resp
}

// ToTransferRecordResponses converts a slice of transfer records.
func ToTransferRecordResponses(records []domain.TransferRecord) []TransferRecordResponse {
	responses := make([]TransferRecordResponse, len(records))
	for i := range records {
		responses[i] = ToTransferRecordResponse(&records[i])
	}
	return responses
}
