package ports

import (
	"github.com/spf13/pflag"
	"go.trai.ch/kiln/internal/core/domain"
)

// ConfigLoader loads the project manifest and the layered runtime settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadProject reads the manifest found in dir.
	LoadProject(dir string) (*domain.Project, error)
	// LoadSettings layers defaults, the settings file in dir, the environment and flags.
	// flags may be nil.
	LoadSettings(dir string, flags *pflag.FlagSet) (*domain.Settings, error)
}
