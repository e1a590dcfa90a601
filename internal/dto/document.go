package dto

import (
	"time"

	"github.com/lexfile/matter_docs_app/internal/core/domain"
)

// CreateDocumentRequest carries the input for creating a document. The
// checksum is the SHA-256 of the stored content, computed by the upload
// pipeline before this layer is invoked.
type CreateDocumentRequest struct {
	MatterID      string `json:"matterID" validate:"required,uuid4"`
	FileName      string `json:"fileName" validate:"required,max=255"`
	Extension     string `json:"extension" validate:"required,max=11"`
	FileSizeBytes int64  `json:"fileSizeBytes" validate:"required,min=1,max=104857600"`
	MimeType      string `json:"mimeType" validate:"required"`
	Checksum      string `json:"checksum" validate:"required,len=64,hexadecimal,lowercase"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID    string     `json:"documentID"`
	MatterID      string     `json:"matterID"`
	FileName      string     `json:"fileName"`
	Extension     string     `json:"extension"`
	FileSizeBytes int64      `json:"fileSizeBytes"`
	MimeType      string     `json:"mimeType"`
	Checksum      string     `json:"checksum"`
	IsCheckedOut  bool       `json:"isCheckedOut"`
	CheckedOutBy  *string    `json:"checkedOutBy,omitempty"`
	CheckedOutAt  *time.Time `json:"checkedOutAt,omitempty"`
	IsDeleted     bool       `json:"isDeleted"`
	DeletedBy     *string    `json:"deletedBy,omitempty"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
	RevisionCount int        `json:"revisionCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedBy     string     `json:"createdBy"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy string     `json:"lastUpdatedBy"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:    d.DocumentID,
		MatterID:      d.MatterID,
		FileName:      d.FileName,
		Extension:     d.Extension,
		FileSizeBytes: d.FileSizeBytes,
		MimeType:      d.MimeType,
		Checksum:      d.Checksum,
		IsCheckedOut:  d.IsCheckedOut,
		CheckedOutBy:  d.CheckedOutBy,
		CheckedOutAt:  d.CheckedOutAt,
		IsDeleted:     d.IsDeleted,
		DeletedBy:     d.DeletedBy,
		DeletedAt:     d.DeletedAt,
		RevisionCount: len(d.Revisions),
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDocumentResponses converts a slice of domain.Document.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}
