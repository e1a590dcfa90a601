package services

import (
	"github.com/lexfile/matter_docs_app/internal/core/domain"
	portssvc "github.com/lexfile/matter_docs_app/internal/core/ports/services"
)

// activityService exposes the seeded activity vocabulary. All answers come
// from the immutable startup catalog; no collaborator is involved.
type activityService struct {
	catalog *domain.ActivityCatalog
}

// NewActivityService creates a new ActivityService over the shared catalog.
func NewActivityService() portssvc.ActivitySvcFacade {
	return &activityService{catalog: domain.DefaultActivityCatalog()}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

func (s *activityService) ListActivities(kind domain.EntityKind) []domain.Activity {
	return s.catalog.Activities(kind)
}

func (s *activityService) IsActivityAllowed(kind domain.EntityKind, name string) bool {
	return s.catalog.IsAllowed(kind, name)
}

func (s *activityService) ResolveActivity(kind domain.EntityKind, name string) (string, error) {
	return s.catalog.Resolve(kind, name)
}
