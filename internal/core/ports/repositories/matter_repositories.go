package repositories

import (
	"context"

	"github.com/lexfile/matter_docs_app/internal/core/domain"
)

// MatterReader defines read operations for matter aggregates.
type MatterReader interface {
	// FindMatterByID retrieves a matter with its activity and transfer
	// records. Owned documents are loaded separately through the document
	// repository.
	FindMatterByID(ctx context.Context, matterID string) (*domain.Matter, error)

	// ListMatters retrieves matters, optionally including archived and
	// soft-deleted ones.
	ListMatters(ctx context.Context, includeArchived, includeDeleted bool) ([]domain.Matter, error)

	// MatterDescriptionExists reports whether any non-deleted matter already
	// uses the description (case-insensitive).
	MatterDescriptionExists(ctx context.Context, description string) (bool, error)
}

// MatterWriter defines write operations for matter aggregates.
type MatterWriter interface {
	// CreateMatter persists a new matter and its initial records.
	CreateMatter(ctx context.Context, matter domain.Matter) error

	// SaveMatter persists aggregate state and the newly emitted activity
	// records atomically. The matter's Version must match the stored version;
	// on mismatch the save fails with apperrors.ErrVersionConflict and
	// nothing is written.
	SaveMatter(ctx context.Context, matter domain.Matter, newRecords []domain.ActivityRecord) error

	// AppendTransferRecords appends transfer audit records to a matter
	// without touching its lifecycle state.
	AppendTransferRecords(ctx context.Context, matterID string, records []domain.TransferRecord) error
}

// MatterRepositoryFacade combines all matter repository interfaces.
type MatterRepositoryFacade interface {
	MatterReader
	MatterWriter
}

// MatterRepositoryWithTx extends the facade with unit-of-work support.
type MatterRepositoryWithTx interface {
	MatterRepositoryFacade
	TransactionManager
}
