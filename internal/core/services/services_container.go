package services

import (
	portsrepo "github.com/lexfile/matter_docs_app/internal/core/ports/repositories"
	portssvc "github.com/lexfile/matter_docs_app/internal/core/ports/services"
	"github.com/lexfile/matter_docs_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. Nil collaborators fall back to sensible defaults
// (system clock, no uniqueness check, no allow-list restriction).
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab portssvc.CollaboratorProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Matter = NewMatterService(
		repos.MatterRepo,
		repos.DocumentRepo,
		collab.Uniqueness,
		collab.Clock,
		cfg.ReservedMatterWords,
	)
	container.Document = NewDocumentService(
		repos.DocumentRepo,
		repos.MatterRepo,
		collab.AllowList,
		collab.Clock,
		cfg.MaxFileSizeBytes,
	)
	container.Transfer = NewTransferService(
		repos.MatterRepo,
		repos.DocumentRepo,
		repos.TxManager,
		collab.Clock,
	)
	container.Activity = NewActivityService()

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MatterSvcFacade   = (*matterService)(nil)
	_ portssvc.DocumentSvcFacade = (*documentService)(nil)
	_ portssvc.TransferSvcFacade = (*transferService)(nil)
)
