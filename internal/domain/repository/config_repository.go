package repository

import (
	"github.com/filip867/Karl-Filip/internal/domain/entity"
	"github.com/filip867/Karl-Filip/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration and the
// reference data a report is built against.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadConfig(filePath string) (*types.Config, error)
	BuildReference(cfg *types.Config) (entity.Reference, error)
}
