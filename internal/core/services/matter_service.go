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

// ErrDescriptionTaken reports a matter description already in use.
var ErrDescriptionTaken = fmt.Errorf("%w: matter description already in use", apperrors.ErrDuplicate)

// matterService provides matter lifecycle operations.
type matterService struct {
	matterRepo    portsrepo.MatterRepositoryFacade
	documentRepo  portsrepo.DocumentReader
	uniqueness    portssvc.UniquenessChecker
	clock         portssvc.Clock
	reservedWords []string
}

// NewMatterService creates a new MatterService.
func NewMatterService(matterRepo portsrepo.MatterRepositoryFacade, documentRepo portsrepo.DocumentReader, uniqueness portssvc.UniquenessChecker, clock portssvc.Clock, reservedWords []string) portssvc.MatterSvcFacade {
	if clock == nil {
		clock = systemClock{}
	}
	return &matterService{
		matterRepo:    matterRepo,
		documentRepo:  documentRepo,
		uniqueness:    uniqueness,
		clock:         clock,
		reservedWords: reservedWords,
	}
}

var _ portssvc.MatterSvcFacade = (*matterService)(nil)

// CreateMatter validates the description shape locally, consults the
// uniqueness collaborator, and persists a new Active matter with its CREATED
// record.
func (s *matterService) CreateMatter(ctx context.Context, req dto.CreateMatterRequest, creatorUserID string) (*domain.Matter, error) {
	logger := logging.FromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.checkDescriptionFree(ctx, req.Description); err != nil {
		return nil, err
	}

	matter, err := domain.NewMatter(req.Description, creatorUserID, s.clock.Now(), s.reservedWords)
	if err != nil {
		return nil, err
	}

	if err := s.matterRepo.CreateMatter(ctx, *matter); err != nil {
		logger.Error("Failed to save new matter", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save matter: %w", err)
	}

	logger.Info("Matter created", slog.String("matter_id", matter.MatterID))
	return matter, nil
}

func (s *matterService) checkDescriptionFree(ctx context.Context, description string) error {
	if s.uniqueness == nil {
		return nil
	}
	exists, err := s.uniqueness.MatterDescriptionExists(ctx, description)
	if err != nil {
		return fmt.Errorf("failed to check matter description uniqueness: %w", err)
	}
	if exists {
		return ErrDescriptionTaken
	}
	return nil
}

// GetMatterByID retrieves a matter with its audit history.
func (s *matterService) GetMatterByID(ctx context.Context, matterID string) (*domain.Matter, error) {
	matter, err := s.matterRepo.FindMatterByID(ctx, matterID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logging.FromCtx(ctx).Error("Failed to find matter by ID", slog.String("error", err.Error()), slog.String("matter_id", matterID))
		}
		return nil, fmt.Errorf("failed to find matter %s: %w", matterID, err)
	}
	return matter, nil
}

// ListMatters retrieves matters filtered by the params flags.
func (s *matterService) ListMatters(ctx context.Context, params dto.ListMattersParams) ([]domain.Matter, error) {
	matters, err := s.matterRepo.ListMatters(ctx, params.IncludeArchived, params.IncludeDeleted)
	if err != nil {
		logging.FromCtx(ctx).Error("Failed to list matters", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list matters: %w", err)
	}
	return matters, nil
}

// UpdateMatterDescription re-validates shape and uniqueness and applies the
// new description. No standard activity is recorded for this change.
func (s *matterService) UpdateMatterDescription(ctx context.Context, matterID string, req dto.UpdateMatterDescriptionRequest, userID string) (*domain.Matter, error) {
	logger := logging.FromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	matter, err := s.GetMatterByID(ctx, matterID)
	if err != nil {
		return nil, err
	}
	if req.Description != matter.Description {
		if err := s.checkDescriptionFree(ctx, req.Description); err != nil {
			return nil, err
		}
	}

	if err := matter.UpdateDescription(req.Description, userID, s.clock.Now(), s.reservedWords); err != nil {
		return nil, err
	}

	if err := s.matterRepo.SaveMatter(ctx, *matter, nil); err != nil {
		logger.Error("Failed to save matter description update", slog.String("error", err.Error()), slog.String("matter_id", matterID))
		return nil, fmt.Errorf("failed to save matter update: %w", err)
	}

	logger.Info("Matter description updated", slog.String("matter_id", matterID))
	return matter, nil
}

// mutate loads the matter, applies the transition and persists the aggregate
// together with the single record it emitted.
func (s *matterService) mutate(ctx context.Context, matterID string, transition func(*domain.Matter) (*domain.ActivityRecord, error)) (*domain.Matter, error) {
	matter, err := s.GetMatterByID(ctx, matterID)
	if err != nil {
		return nil, err
	}

	record, err := transition(matter)
	if err != nil {
		return nil, err
	}

	if err := s.matterRepo.SaveMatter(ctx, *matter, []domain.ActivityRecord{*record}); err != nil {
		logging.FromCtx(ctx).Error("Failed to save matter transition", slog.String("error", err.Error()), slog.String("matter_id", matterID))
		return nil, fmt.Errorf("failed to save matter: %w", err)
	}
	return matter, nil
}

// ArchiveMatter marks the matter archived and records ARCHIVED.
func (s *matterService) ArchiveMatter(ctx context.Context, matterID string, userID string) (*domain.Matter, error) {
	matter, err := s.mutate(ctx, matterID, func(m *domain.Matter) (*domain.ActivityRecord, error) {
		return m.Archive(userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("Matter archived", slog.String("matter_id", matterID), slog.String("user_id", userID))
	return matter, nil
}

// UnarchiveMatter clears the archived flag and records UNARCHIVED.
func (s *matterService) UnarchiveMatter(ctx context.Context, matterID string, userID string) (*domain.Matter, error) {
	matter, err := s.mutate(ctx, matterID, func(m *domain.Matter) (*domain.ActivityRecord, error) {
		return m.Unarchive(userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("Matter unarchived", slog.String("matter_id", matterID), slog.String("user_id", userID))
	return matter, nil
}

// DeleteMatter soft-deletes the matter. The matter's active documents are
// loaded first so the no-active-documents rule can be enforced.
func (s *matterService) DeleteMatter(ctx context.Context, matterID string, userID string) (*domain.Matter, error) {
	matter, err := s.mutate(ctx, matterID, func(m *domain.Matter) (*domain.ActivityRecord, error) {
		docs, err := s.documentRepo.ListDocumentsByMatter(ctx, matterID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to load documents for matter %s: %w", matterID, err)
		}
		m.Documents = docs
		return m.Delete(userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("Matter deleted", slog.String("matter_id", matterID), slog.String("user_id", userID))
	return matter, nil
}

// RestoreMatter clears the soft-delete triple and records RESTORED.
func (s *matterService) RestoreMatter(ctx context.Context, matterID string, userID string) (*domain.Matter, error) {
	matter, err := s.mutate(ctx, matterID, func(m *domain.Matter) (*domain.ActivityRecord, error) {
		return m.Restore(userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("Matter restored", slog.String("matter_id", matterID), slog.String("user_id", userID))
	return matter, nil
}

// RecordMatterView appends a VIEWED record without changing lifecycle state.
func (s *matterService) RecordMatterView(ctx context.Context, matterID string, userID string) error {
	_, err := s.mutate(ctx, matterID, func(m *domain.Matter) (*domain.ActivityRecord, error) {
		return m.RecordView(userID, s.clock.Now())
	})
	return err
}

// ListMatterActivity returns the matter's own activity records plus both
// sides of its transfer history, each in chronological order.
func (s *matterService) ListMatterActivity(ctx context.Context, matterID string) (*dto.MatterActivityResponse, error) {
	matter, err := s.GetMatterByID(ctx, matterID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MatterActivityResponse{
		Activities:    dto.ToActivityRecordResponses(matter.Activities),
		TransfersFrom: dto.ToTransferRecordResponses(matter.TransfersFrom),
		TransfersTo:   dto.ToTransferRecordResponses(matter.TransfersTo),
	}
	sort.SliceStable(resp.Activities, func(i, j int) bool {
		return resp.Activities[i].CreatedAt.Before(resp.Activities[j].CreatedAt)
	})
	sort.SliceStable(resp.TransfersFrom, func(i, j int) bool {
		return resp.TransfersFrom[i].CreatedAt.Before(resp.TransfersFrom[j].CreatedAt)
	})
	sort.SliceStable(resp.TransfersTo, func(i, j int) bool {
		return resp.TransfersTo[i].CreatedAt.Before(resp.TransfersTo[j].CreatedAt)
	})
	return resp, nil
}
