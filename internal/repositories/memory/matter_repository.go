package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
	"github.com/lexfile/matter_docs_app/internal/core/domain"
)

// FindMatterByID retrieves a matter with its activity and transfer records.
func (s *Store) FindMatterByID(ctx context.Context, matterID string) (*domain.Matter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matters[matterID]
	if !ok {
		return nil, fmt.Errorf("%w: matter %s", apperrors.ErrNotFound, matterID)
	}
	return cloneMatter(m), nil
}

// ListMatters retrieves matters, optionally including archived and deleted ones.
func (s *Store) ListMatters(ctx context.Context, includeArchived, includeDeleted bool) ([]domain.Matter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matters := make([]domain.Matter, 0, len(s.matters))
	for _, m := range s.matters {
		if m.IsArchived && !includeArchived {
			continue
		}
		if m.IsDeleted && !includeDeleted {
			continue
		}
		matters = append(matters, *cloneMatter(m))
	}
	return matters, nil
}

// MatterDescriptionExists reports whether any non-deleted matter already uses
// the description, case-insensitively.
func (s *Store) MatterDescriptionExists(ctx context.Context, description string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(description))
	for _, m := range s.matters {
		if !m.IsDeleted && strings.ToLower(m.Description) == needle {
			return true, nil
		}
	}
	return false, nil
}

// CreateMatter persists a new matter and its initial records.
func (s *Store) CreateMatter(ctx context.Context, matter domain.Matter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matters[matter.MatterID]; ok {
		return fmt.Errorf("%w: matter %s", apperrors.ErrDuplicate, matter.MatterID)
	}
	s.matters[matter.MatterID] = cloneMatter(&matter)
	return nil
}

// SaveMatter persists aggregate state under the optimistic version
// discipline. The aggregate embeds its newly emitted records, so newRecords
// needs no separate handling here; a SQL implementation would insert them.
func (s *Store) SaveMatter(ctx context.Context, matter domain.Matter, newRecords []domain.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.matters[matter.MatterID]
	if !ok {
		return fmt.Errorf("%w: matter %s", apperrors.ErrNotFound, matter.MatterID)
	}
	if stored.Version != matter.Version {
		return fmt.Errorf("%w: matter %s", apperrors.ErrVersionConflict, matter.MatterID)
	}
	matter.Version++
	s.matters[matter.MatterID] = cloneMatter(&matter)
	return nil
}

// AppendTransferRecords appends transfer audit records to a matter without
// touching its lifecycle state or version.
func (s *Store) AppendTransferRecords(ctx context.Context, matterID string, records []domain.TransferRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matters[matterID]
	if !ok {
		return fmt.Errorf("%w: matter %s", apperrors.ErrNotFound, matterID)
	}
	for _, rec := range records {
		switch rec.Direction {
		case domain.TransferFrom:
			m.TransfersFrom = append(m.TransfersFrom, rec)
		case domain.TransferTo:
			m.TransfersTo = append(m.TransfersTo, rec)
		default:
			return fmt.Errorf("%w: unknown transfer direction %q", apperrors.ErrValidation, rec.Direction)
		}
	}
	return nil
}
