package dto

import (
	"time"

	"github.com/lexfile/matter_docs_app/internal/core/domain"
)

// CreateRevisionRequest carries the input for creating a revision. The number
// must equal the document's computed next revision number; the service rejects
// anything else so the sequence stays contiguous.
type CreateRevisionRequest struct {
	RevisionNumber int `json:"revisionNumber" validate:"required,min=1,max=999999"`
}

// RevisionResponse defines the data returned for a revision.
type RevisionResponse struct {
	RevisionID     string     `json:"revisionID"`
	DocumentID     string     `json:"documentID"`
	RevisionNumber int        `json:"revisionNumber"`
	IsDeleted      bool       `json:"isDeleted"`
	DeletedBy      *string    `json:"deletedBy,omitempty"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedBy      string     `json:"createdBy"`
	ModifiedAt     time.Time  `json:"modifiedAt"`
	ModifiedBy     string     `json:"modifiedBy"`
}

// ToRevisionResponse converts a domain.Revision to RevisionResponse.
func ToRevisionResponse(r *domain.Revision) RevisionResponse {
	return RevisionResponse{
		RevisionID:     r.RevisionID,
		DocumentID:     r.DocumentID,
		RevisionNumber: r.RevisionNumber,
		IsDeleted:      r.IsDeleted,
		DeletedBy:      r.DeletedBy,
		DeletedAt:      r.DeletedAt,
		CreatedAt:      r.CreatedAt,
		CreatedBy:      r.CreatedBy,
		ModifiedAt:     r.ModifiedAt,
		ModifiedBy:     r.ModifiedBy,
	}
}

// ToRevisionResponses converts a slice of domain.Revision.
func ToRevisionResponses(revisions []domain.Revision) []RevisionResponse {
	responses := make([]RevisionResponse, len(revisions))
	for i := range revisions {
		responses[i] = ToRevisionResponse(&revisions[i])
	}
	return responses
}
