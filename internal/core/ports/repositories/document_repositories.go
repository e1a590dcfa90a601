package repositories

import (
	"context"

	"github.com/lexfile/matter_docs_app/internal/core/domain"
)

// DocumentReader defines read operations for document aggregates.
type DocumentReader interface {
	// FindDocumentByID retrieves a document with its revisions and activity
	// records.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocumentsByMatter retrieves the documents owned by a matter,
	// optionally including soft-deleted ones.
	ListDocumentsByMatter(ctx context.Context, matterID string, includeDeleted bool) ([]domain.Document, error)
}

// DocumentWriter defines write operations for document aggregates.
type DocumentWriter interface {
	// CreateDocument persists a new document and its initial records.
	CreateDocument(ctx context.Context, document domain.Document) error

	// SaveDocument persists aggregate state (including owned revisions) and
	// the newly emitted activity records atomically, with the same optimistic
	// version discipline as SaveMatter.
	SaveDocument(ctx context.Context, document domain.Document, newRecords []domain.ActivityRecord) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// DocumentRepositoryWithTx extends the facade with unit-of-work support.
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
