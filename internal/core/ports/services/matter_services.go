package services

import (
	"context"

	"github.com/lexfile/matter_docs_app/internal/core/domain"
	"github.com/lexfile/matter_docs_app/internal/dto"
)

// MatterReaderSvc defines read operations on matters.
type MatterReaderSvc interface {
	// GetMatterByID retrieves a matter with its audit history.
	GetMatterByID(ctx context.Context, matterID string) (*domain.Matter, error)

	// ListMatters retrieves matters filtered by the params flags.
	ListMatters(ctx context.Context, params dto.ListMattersParams) ([]domain.Matter, error)

	// ListMatterActivity returns the matter's own activity records plus both
	// sides of its transfer history, each in chronological order.
	ListMatterActivity(ctx context.Context, matterID string) (*dto.MatterActivityResponse, error)
}

// MatterWriterSvc defines the lifecycle transitions on matters. Every
// successful transition appends exactly one audit record; failures leave the
// aggregate untouched.
type MatterWriterSvc interface {
	CreateMatter(ctx context.Context, req dto.CreateMatterRequest, creatorUserID string) (*domain.Matter, error)
	UpdateMatterDescription(ctx context.Context, matterID string, req dto.UpdateMatterDescriptionRequest, userID string) (*domain.Matter, error)
	ArchiveMatter(ctx context.Context, matterID string, userID string) (*domain.Matter, error)
	UnarchiveMatter(ctx context.Context, matterID string, userID string) (*domain.Matter, error)
	DeleteMatter(ctx context.Context, matterID string, userID string) (*domain.Matter, error)
	RestoreMatter(ctx context.Context, matterID string, userID string) (*domain.Matter, error)

	// RecordMatterView appends a VIEWED record without changing state.
	RecordMatterView(ctx context.Context, matterID string, userID string) error
}

// MatterSvcFacade combines all matter service interfaces.
type MatterSvcFacade interface {
	MatterReaderSvc
	MatterWriterSvc
}
