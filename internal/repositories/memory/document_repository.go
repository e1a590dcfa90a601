package memory

import (
	"context"
	"fmt"

	"github.com/lexfile/matter_docs_app/internal/apperrors"
	"github.com/lexfile/matter_docs_app/internal/core/domain"
)

// FindDocumentByID retrieves a document with its revisions and records.
func (s *Store) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
	}
	return cloneDocument(d), nil
}

// ListDocumentsByMatter retrieves the documents owned by a matter.
func (s *Store) ListDocumentsByMatter(ctx context.Context, matterID string, includeDeleted bool) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0)
	for _, d := range s.documents {
		if d.MatterID != matterID {
			continue
		}
		if d.IsDeleted && !includeDeleted {
			continue
		}
		docs = append(docs, *cloneDocument(d))
	}
	return docs, nil
}

// CreateDocument persists a new document and its initial records.
func (s *Store) CreateDocument(ctx context.Context, document domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[document.DocumentID]; ok {
		return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, document.DocumentID)
	}
	s.documents[document.DocumentID] = cloneDocument(&document)
	return nil
}

// SaveDocument persists aggregate state under the optimistic version
// discipline. Exactly one of two racing load-mutate-save cycles succeeds; the
// loser re-loads and re-validates against the fresh state.
func (s *Store) SaveDocument(ctx context.Context, document domain.Document, newRecords []domain.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.documents[document.DocumentID]
	if !ok {
		return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, document.DocumentID)
	}
	if stored.Version != document.Version {
		return fmt.Errorf("%w: document %s", apperrors.ErrVersionConflict, document.DocumentID)
	}
	document.Version++
	s.documents[document.DocumentID] = cloneDocument(&document)
	return nil
}
