package filetypes

import (
	"github.com/lexfile/matter_docs_app/internal/core/domain"
	"github.com/lexfile/matter_docs_app/internal/platform/config"
)

// AllowList is the config-driven file type allow-list collaborator.
type AllowList struct {
	allowed map[string]struct{}
}

// NewAllowList builds the allow-list from configuration. Entries are
// normalized the same way document extensions are.
func NewAllowList(cfg *config.Config) *AllowList {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[domain.NormalizeExtension(ext)] = struct{}{}
	}
	return &AllowList{allowed: allowed}
}

// IsExtensionAllowed reports whether the extension may be stored.
func (a *AllowList) IsExtensionAllowed(extension string) bool {
	_, ok := a.allowed[domain.NormalizeExtension(extension)]
	return ok
}
