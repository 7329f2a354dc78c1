// Package service provides business logic implementations for the propdeck
// application.
package service

import (
	"time"

	"github.com/luminapower/propdeck/internal/config"
	"github.com/luminapower/propdeck/internal/logger"
)

// ServiceParams holds the common dependencies injected into services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Now overrides the clock, nil means time.Now. Tests fix it so the date
	// placeholder renders deterministically.
	Now func() time.Time
}
