// Package memory provides an in-memory implementation of the repository
// ports: thread-safe maps with optimistic version checks and a
// snapshot-rollback unit of work. It backs tests and default wiring; durable
// persistence is a separate collaborator concern.
package memory

import (
	"context"
	"sync"

	"github.com/lexfile/matter_docs_app/internal/core/domain"
	portsrepo "github.com/lexfile/matter_docs_app/internal/core/ports/repositories"
)

// Store holds both aggregate maps so one unit of work can snapshot and roll
// back everything together.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	matters   map[string]*domain.Matter
	documents map[string]*domain.Document
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		matters:   make(map[string]*domain.Matter),
		documents: make(map[string]*domain.Document),
	}
}

var (
	_ portsrepo.MatterRepositoryWithTx   = (*Store)(nil)
	_ portsrepo.DocumentRepositoryWithTx = (*Store)(nil)
)

// WithinTx runs fn as an atomic unit: on error every write made inside fn is
// rolled back to the snapshot taken at entry. Concurrent units serialize on
// txMu; individual reads and writes stay guarded by mu so calls made inside
// fn do not deadlock.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	matterSnap := make(map[string]*domain.Matter, len(s.matters))
	for id, m := range s.matters {
		matterSnap[id] = cloneMatter(m)
	}
	documentSnap := make(map[string]*domain.Document, len(s.documents))
	for id, d := range s.documents {
		documentSnap[id] = cloneDocument(d)
	}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.matters = matterSnap
		s.documents = documentSnap
		s.mu.Unlock()
		return err
	}
	return nil
}

func cloneMatter(m *domain.Matter) *domain.Matter {
	clone := *m
	clone.Documents = nil // documents are stored and loaded separately
	clone.Activities = append([]domain.ActivityRecord(nil), m.Activities...)
	clone.TransfersFrom = append([]domain.TransferRecord(nil), m.TransfersFrom...)
	clone.TransfersTo = append([]domain.TransferRecord(nil), m.TransfersTo...)
	return &clone
}

func cloneDocument(d *domain.Document) *domain.Document {
	clone := *d
	clone.Activities = append([]domain.ActivityRecord(nil), d.Activities...)
	clone.Revisions = make([]domain.Revision, len(d.Revisions))
	for i := range d.Revisions {
		rev := d.Revisions[i]
		rev.Activities = append([]domain.ActivityRecord(nil), d.Revisions[i].Activities...)
		clone.Revisions[i] = rev
	}
	return &clone
}
