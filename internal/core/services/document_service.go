package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
	"github.com/lexfile/matter_docs_app/internal/core/domain"
	portsrepo "github.com/lexfile/matter_docs_app/internal/core/ports/repositories"
	portssvc "github.com/lexfile/matter_docs_app/internal/core/ports/services"
	"github.com/lexfile/matter_docs_app/internal/dto"
	"github.com/lexfile/matter_docs_app/internal/platform/logging"
	"github.com/lexfile/matter_docs_app/internal/utils/validation"
)

var (
	// ErrExtensionNotAllowed reports an extension rejected by the allow-list
	// collaborator.
	ErrExtensionNotAllowed = fmt.Errorf("%w: file extension is not allowed", apperrors.ErrValidation)
	// ErrMatterUnavailable reports an attempt to create a document in a
	// deleted matter.
	ErrMatterUnavailable = fmt.Errorf("%w: matter is deleted", apperrors.ErrConflict)
)

// documentService provides document lifecycle and revision operations.
type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	matterRepo   portsrepo.MatterReader
	allowList    portssvc.FileTypeAllowList
	clock        portssvc.Clock
	maxFileSize  int64
}

// NewDocumentService creates a new DocumentService. maxFileSizeBytes may
// tighten the domain's hard cap; pass 0 to keep the default.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, matterRepo portsrepo.MatterReader, allowList portssvc.FileTypeAllowList, clock portssvc.Clock, maxFileSizeBytes int64) portssvc.DocumentSvcFacade {
	if clock == nil {
		clock = systemClock{}
	}
	if maxFileSizeBytes <= 0 || maxFileSizeBytes > domain.MaxDocumentFileSize {
		maxFileSizeBytes = domain.MaxDocumentFileSize
	}
	return &documentService{
		documentRepo: documentRepo,
		matterRepo:   matterRepo,
		allowList:    allowList,
		clock:        clock,
		maxFileSize:  maxFileSizeBytes,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument validates all field constraints, consults the extension
// allow-list and persists the new document with its CREATED record.
func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error) {
	logger := logging.FromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if s.allowList != nil && !s.allowList.IsExtensionAllowed(req.Extension) {
		return nil, fmt.Errorf("%w: %q", ErrExtensionNotAllowed, req.Extension)
	}
	if req.FileSizeBytes > s.maxFileSize {
		return nil, fmt.Errorf("%w: file size %d exceeds the configured cap of %d bytes", apperrors.ErrValidation, req.FileSizeBytes, s.maxFileSize)
	}

	matter, err := s.matterRepo.FindMatterByID(ctx, req.MatterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find matter %s: %w", req.MatterID, err)
	}
	if matter.IsDeleted {
		return nil, ErrMatterUnavailable
	}

	doc, err := domain.NewDocument(req.FileName, req.Extension, req.FileSizeBytes, req.MimeType, req.Checksum, req.MatterID, creatorUserID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.CreateDocument(ctx, *doc); err != nil {
		logger.Error("Failed to save new document", slog.String("error", err.Error()), slog.String("matter_id", req.MatterID))
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	logger.Info("Document created", slog.String("document_id", doc.DocumentID), slog.String("matter_id", doc.MatterID))
	return doc, nil
}

// GetDocumentByID retrieves a document with its revisions and audit history.
func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logging.FromCtx(ctx).Error("Failed to find document by ID", slog.String("error", err.Error()), slog.String("document_id", documentID))
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc, nil
}

// ListDocumentsByMatter retrieves the documents owned by a matter.
func (s *documentService) ListDocumentsByMatter(ctx context.Context, matterID string, includeDeleted bool) ([]domain.Document, error) {
	docs, err := s.documentRepo.ListDocumentsByMatter(ctx, matterID, includeDeleted)
	if err != nil {
		logging.FromCtx(ctx).Error("Failed to list documents", slog.String("error", err.Error()), slog.String("matter_id", matterID))
		return nil, fmt.Errorf("failed to list documents for matter %s: %w", matterID, err)
	}
	return docs, nil
}

// mutate loads the document, applies the transition and persists the
// aggregate together with the single record it emitted.
func (s *documentService) mutate(ctx context.Context, documentID string, transition func(*domain.Document) (*domain.ActivityRecord, error)) (*domain.Document, error) {
	doc, err := s.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	record, err := transition(doc)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.SaveDocument(ctx, *doc, []domain.ActivityRecord{*record}); err != nil {
		logging.FromCtx(ctx).Error("Failed to save document transition", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return doc, nil
}

// CheckOutDocument acquires the editing lock for userID.
func (s *documentService) CheckOutDocument(ctx context.Context, documentID string, userID string) (*domain.Document, error) {
	doc, err := s.mutate(ctx, documentID, func(d *domain.Document) (*domain.ActivityRecord, error) {
		return d.CheckOut(userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("Document checked out", slog.String("document_id", documentID), slog.String("user_id", userID))
	return doc, nil
}

// CheckInDocument releases the editing lock; only the holder may check in.
func (s *documentService) CheckInDocument(ctx context.Context, documentID string, userID string) (*domain.Document, error) {
	doc, err := s.mutate(ctx, documentID, func(d *domain.Document) (*domain.ActivityRecord, error) {
		return d.CheckIn(userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("Document checked in", slog.String("document_id", documentID), slog.String("user_id", userID))
	return doc, nil
}

// DeleteDocument soft-deletes the document.
func (s *documentService) DeleteDocument(ctx context.Context, documentID string, userID string) (*domain.Document, error) {
	doc, err := s.mutate(ctx, documentID, func(d *domain.Document) (*domain.ActivityRecord, error) {
		return d.Delete(userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("Document deleted", slog.String("document_id", documentID), slog.String("user_id", userID))
	return doc, nil
}

// RestoreDocument clears the soft-delete triple.
func (s *documentService) RestoreDocument(ctx context.Context, documentID string, userID string) (*domain.Document, error) {
	doc, err := s.mutate(ctx, documentID, func(d *domain.Document) (*domain.ActivityRecord, error) {
		return d.Restore(userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("Document restored", slog.String("document_id", documentID), slog.String("user_id", userID))
	return doc, nil
}

// RecordDocumentSave records a SAVED activity after a content rewrite.
func (s *documentService) RecordDocumentSave(ctx context.Context, documentID string, userID string) error {
	_, err := s.mutate(ctx, documentID, func(d *domain.Document) (*domain.ActivityRecord, error) {
		return d.RecordSave(userID, s.clock.Now())
	})
	return err
}

// CreateRevision builds the next revision and attaches it to the document.
// The supplied number must equal the computed next number.
func (s *documentService) CreateRevision(ctx context.Context, documentID string, req dto.CreateRevisionRequest, userID string) (*domain.Revision, error) {
	logger := logging.FromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	doc, err := s.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rev, err := domain.NewRevision(documentID, req.RevisionNumber, userID, now)
	if err != nil {
		return nil, err
	}
	if err := doc.AddRevision(*rev, userID, now); err != nil {
		return nil, err
	}

	if err := s.documentRepo.SaveDocument(ctx, *doc, rev.Activities); err != nil {
		logger.Error("Failed to save new revision", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to save revision: %w", err)
	}

	logger.Info("Revision created", slog.String("document_id", documentID), slog.Int("revision_number", rev.RevisionNumber))
	return rev, nil
}

// mutateRevision applies a transition to one owned revision and persists the
// document aggregate with the emitted record.
func (s *documentService) mutateRevision(ctx context.Context, documentID, revisionID string, transition func(*domain.Revision) (*domain.ActivityRecord, error)) error {
	doc, err := s.GetDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}

	rev, err := doc.RevisionByID(revisionID)
	if err != nil {
		return err
	}
	record, err := transition(rev)
	if err != nil {
		return err
	}

	if err := s.documentRepo.SaveDocument(ctx, *doc, []domain.ActivityRecord{*record}); err != nil {
		logging.FromCtx(ctx).Error("Failed to save revision transition", slog.String("error", err.Error()), slog.String("document_id", documentID), slog.String("revision_id", revisionID))
		return fmt.Errorf("failed to save revision: %w", err)
	}
	return nil
}

// DeleteRevision soft-deletes a revision independently of its document. The
// revision keeps its slot in the numbering sequence.
func (s *documentService) DeleteRevision(ctx context.Context, documentID, revisionID string, userID string) error {
	return s.mutateRevision(ctx, documentID, revisionID, func(r *domain.Revision) (*domain.ActivityRecord, error) {
		return r.Delete(userID, s.clock.Now())
	})
}

// RestoreRevision clears a revision's soft-delete triple.
func (s *documentService) RestoreRevision(ctx context.Context, documentID, revisionID string, userID string) error {
	return s.mutateRevision(ctx, documentID, revisionID, func(r *domain.Revision) (*domain.ActivityRecord, error) {
		return r.Restore(userID, s.clock.Now())
	})
}

// ListRevisions retrieves the document's revisions in number order.
func (s *documentService) ListRevisions(ctx context.Context, documentID string, includeDeleted bool) ([]domain.Revision, error) {
	doc, err := s.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	revisions := make([]domain.Revision, 0, len(doc.Revisions))
	for _, rev := range doc.Revisions {
		if !includeDeleted && rev.IsDeleted {
			continue
		}
		revisions = append(revisions, rev)
	}
	sort.Slice(revisions, func(i, j int) bool {
		return revisions[i].RevisionNumber < revisions[j].RevisionNumber
	})
	return revisions, nil
}

// ListDocumentActivity returns the document's activity records in
// chronological order.
func (s *documentService) ListDocumentActivity(ctx context.Context, documentID string) ([]domain.ActivityRecord, error) {
	doc, err := s.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ActivityRecord, len(doc.Activities))
	copy(records, doc.Activities)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}
