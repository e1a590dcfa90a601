package services

import (
	"time"

	portssvc "github.com/lexfile/matter_docs_app/internal/core/ports/services"
)

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns the wall clock, truncated to UTC.
func NewSystemClock() portssvc.Clock {
	return systemClock{}
}
