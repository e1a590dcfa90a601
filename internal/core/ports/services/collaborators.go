package services

import (
	"context"
	"time"
)

// Clock supplies UTC "now" for all timestamping. Injectable so tests are
// deterministic.
type Clock interface {
	Now() time.Time
}

// UniquenessChecker answers global uniqueness questions the aggregates cannot
// answer locally. Consulted before matter create/update-description.
type UniquenessChecker interface {
	MatterDescriptionExists(ctx context.Context, description string) (bool, error)
}

// FileTypeAllowList decides which file extensions may be stored. Consulted
// during document creation; extensions are normalized lowercase without dot.
type FileTypeAllowList interface {
	IsExtensionAllowed(extension string) bool
}

// CollaboratorProvider bundles the external collaborators for the service
// container constructor.
type CollaboratorProvider struct {
	Clock      Clock
	Uniqueness UniquenessChecker
	AllowList  FileTypeAllowList
}
