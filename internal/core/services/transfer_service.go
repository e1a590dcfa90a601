package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
	"github.com/lexfile/matter_docs_app/internal/core/domain"
	portsrepo "github.com/lexfile/matter_docs_app/internal/core/ports/repositories"
	portssvc "github.com/lexfile/matter_docs_app/internal/core/ports/services"
	"github.com/lexfile/matter_docs_app/internal/dto"
	"github.com/lexfile/matter_docs_app/internal/platform/logging"
	"github.com/lexfile/matter_docs_app/internal/utils/validation"
)

var (
	// ErrSourceMismatch reports a transfer whose document does not belong to
	// the named source matter.
	ErrSourceMismatch = fmt.Errorf("%w: document does not belong to the source matter", apperrors.ErrConflict)
	// ErrDestinationInactive reports a transfer into a deleted matter.
	ErrDestinationInactive = fmt.Errorf("%w: destination matter is deleted", apperrors.ErrConflict)
)

// transferService moves or copies documents between matters. It is the only
// code path that mutates two aggregates in one operation, so every transfer
// runs inside a single unit of work: either both halves of the FROM/TO audit
// pair land or neither does.
type transferService struct {
	matterRepo   portsrepo.MatterRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
	txManager    portsrepo.TransactionManager
	clock        portssvc.Clock
}

// NewTransferService creates a new TransferService.
func NewTransferService(matterRepo portsrepo.MatterRepositoryFacade, documentRepo portsrepo.DocumentRepositoryFacade, txManager portsrepo.TransactionManager, clock portssvc.Clock) portssvc.TransferSvcFacade {
	if clock == nil {
		clock = systemClock{}
	}
	return &transferService{
		matterRepo:   matterRepo,
		documentRepo: documentRepo,
		txManager:    txManager,
		clock:        clock,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// loadForTransfer loads the three participants and checks the preconditions
// shared by move and copy.
func (s *transferService) loadForTransfer(ctx context.Context, req dto.TransferRequest) (*domain.Document, *domain.Matter, *domain.Matter, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, req.DocumentID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to find document %s: %w", req.DocumentID, err)
	}
	source, err := s.matterRepo.FindMatterByID(ctx, req.SourceMatterID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to find source matter %s: %w", req.SourceMatterID, err)
	}
	dest, err := s.matterRepo.FindMatterByID(ctx, req.DestMatterID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to find destination matter %s: %w", req.DestMatterID, err)
	}

	if doc.MatterID != source.MatterID {
		return nil, nil, nil, ErrSourceMismatch
	}
	if doc.IsDeleted {
		return nil, nil, nil, domain.ErrDocumentDeleted
	}
	if doc.IsCheckedOut {
		return nil, nil, nil, fmt.Errorf("%w (held by user %s)", domain.ErrDocumentCheckedOut, *doc.CheckedOutBy)
	}
	if dest.IsDeleted {
		return nil, nil, nil, ErrDestinationInactive
	}
	return doc, source, dest, nil
}

// MoveDocument reassigns the document to the destination matter and appends a
// MOVED transfer pair with identical user and timestamp on both matters.
func (s *transferService) MoveDocument(ctx context.Context, req dto.TransferRequest, userID string) (*domain.Document, error) {
	logger := logging.FromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var moved *domain.Document
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		doc, source, dest, err := s.loadForTransfer(ctx, req)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := doc.TransferTo(dest.MatterID, userID, now); err != nil {
			return err
		}
		from, to := domain.NewTransferPair(doc.DocumentID, source.MatterID, dest.MatterID, domain.ActivityMoved, userID, now)

		if err := s.documentRepo.SaveDocument(ctx, *doc, nil); err != nil {
			return fmt.Errorf("failed to save moved document: %w", err)
		}
		if err := s.matterRepo.AppendTransferRecords(ctx, source.MatterID, []domain.TransferRecord{from}); err != nil {
			return fmt.Errorf("failed to record transfer on source matter: %w", err)
		}
		if err := s.matterRepo.AppendTransferRecords(ctx, dest.MatterID, []domain.TransferRecord{to}); err != nil {
			return fmt.Errorf("failed to record transfer on destination matter: %w", err)
		}
		moved = doc
		return nil
	})
	if err != nil {
		logger.Warn("Document move failed", slog.String("document_id", req.DocumentID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Document moved",
		slog.String("document_id", req.DocumentID),
		slog.String("source_matter_id", req.SourceMatterID),
		slog.String("dest_matter_id", req.DestMatterID),
	)
	return moved, nil
}

// CopyDocument clones the document into the destination matter under a new
// identity and appends a COPIED transfer pair. The original is untouched.
func (s *transferService) CopyDocument(ctx context.Context, req dto.TransferRequest, userID string) (*domain.Document, error) {
	logger := logging.FromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var clone *domain.Document
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		doc, source, dest, err := s.loadForTransfer(ctx, req)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		clone = doc.CloneForCopy(dest.MatterID, userID, now)
		from, to := domain.NewTransferPair(doc.DocumentID, source.MatterID, dest.MatterID, domain.ActivityCopied, userID, now)

		if err := s.documentRepo.CreateDocument(ctx, *clone); err != nil {
			return fmt.Errorf("failed to save copied document: %w", err)
		}
		if err := s.matterRepo.AppendTransferRecords(ctx, source.MatterID, []domain.TransferRecord{from}); err != nil {
			return fmt.Errorf("failed to record transfer on source matter: %w", err)
		}
		if err := s.matterRepo.AppendTransferRecords(ctx, dest.MatterID, []domain.TransferRecord{to}); err != nil {
			return fmt.Errorf("failed to record transfer on destination matter: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Document copy failed", slog.String("document_id", req.DocumentID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Document copied",
		slog.String("document_id", req.DocumentID),
		slog.String("copy_document_id", clone.DocumentID),
		slog.String("source_matter_id", req.SourceMatterID),
		slog.String("dest_matter_id", req.DestMatterID),
	)
	return clone, nil
}
