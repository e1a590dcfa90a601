package services

import (
	"context"

	"github.com/lexfile/matter_docs_app/internal/core/domain"
	"github.com/lexfile/matter_docs_app/internal/dto"
)

// DocumentReaderSvc defines read operations on documents and revisions.
type DocumentReaderSvc interface {
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocumentsByMatter(ctx context.Context, matterID string, includeDeleted bool) ([]domain.Document, error)
	ListRevisions(ctx context.Context, documentID string, includeDeleted bool) ([]domain.Revision, error)
	ListDocumentActivity(ctx context.Context, documentID string) ([]domain.ActivityRecord, error)
}

// DocumentWriterSvc defines the document lifecycle transitions.
type DocumentWriterSvc interface {
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error)
	CheckOutDocument(ctx context.Context, documentID string, userID string) (*domain.Document, error)
	CheckInDocument(ctx context.Context, documentID string, userID string) (*domain.Document, error)
	DeleteDocument(ctx context.Context, documentID string, userID string) (*domain.Document, error)
	RestoreDocument(ctx context.Context, documentID string, userID string) (*domain.Document, error)

	// RecordDocumentSave records a SAVED activity after a content rewrite.
	RecordDocumentSave(ctx context.Context, documentID string, userID string) error
}

// RevisionSvc defines revision creation and soft-delete operations. Revisions
// are mutated only through their owning document aggregate.
type RevisionSvc interface {
	// CreateRevision validates sequencing against the document's existing
	// revisions and appends the new revision.
	CreateRevision(ctx context.Context, documentID string, req dto.CreateRevisionRequest, userID string) (*domain.Revision, error)
	DeleteRevision(ctx context.Context, documentID, revisionID string, userID string) error
	RestoreRevision(ctx context.Context, documentID, revisionID string, userID string) error
}

// DocumentSvcFacade combines all document service interfaces.
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
	RevisionSvc
}
