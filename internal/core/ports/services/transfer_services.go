package services

import (
	"context"

	"github.com/lexfile/matter_docs_app/internal/core/domain"
	"github.com/lexfile/matter_docs_app/internal/dto"
)

// TransferSvcFacade moves or copies a document between two matters as one
// auditable operation. It is the only service allowed to touch two aggregates
// in a single call, and it always runs inside one unit of work: the paired
// FROM/TO records are written together or not at all.
type TransferSvcFacade interface {
	// MoveDocument reassigns the document to the destination matter and
	// appends a MOVED transfer pair.
	MoveDocument(ctx context.Context, req dto.TransferRequest, userID string) (*domain.Document, error)

	// CopyDocument clones the document (new identity, revisions duplicated)
	// into the destination matter and appends a COPIED transfer pair.
	CopyDocument(ctx context.Context, req dto.TransferRequest, userID string) (*domain.Document, error)
}
