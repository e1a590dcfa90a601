package services

import "github.com/lexfile/matter_docs_app/internal/core/domain"

// ActivitySvcFacade exposes the seeded activity vocabulary. The catalog is
// static data; these calls never touch a collaborator.
type ActivitySvcFacade interface {
	ListActivities(kind domain.EntityKind) []domain.Activity
	IsActivityAllowed(kind domain.EntityKind, name string) bool
	ResolveActivity(kind domain.EntityKind, name string) (string, error)
}
