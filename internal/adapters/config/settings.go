package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes every settings environment variable, e.g. KILN_JOBS=4.
const EnvPrefix = "KILN_"

// DefaultSettings returns the lowest-precedence settings layer.
func DefaultSettings() map[string]any {
	return map[string]any{
		"jobs":      runtime.NumCPU(),
		"platform":  "",
		"backend":   domain.BackendJSON,
		"verbosity": "info",
		"force":     false,
	}
}

// LoadSettings layers defaults < kiln.toml in dir < KILN_* environment < flags.
// flags may be nil.
func (l *FileConfigLoader) LoadSettings(dir string, flags *pflag.FlagSet) (*domain.Settings, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(DefaultSettings()), nil); err != nil {
		return nil, zerr.Wrap(err, "failed to load default settings")
	}

	path := filepath.Join(dir, l.SettingsFilename)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to load settings file"), "path", path)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat settings file"), "path", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, zerr.Wrap(err, "failed to load settings from environment")
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, zerr.Wrap(err, "failed to load settings from flags")
		}
	}

	var settings domain.Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal settings")
	}

	if settings.Jobs < 1 {
		settings.Jobs = 1
	}
	switch settings.Backend {
	case domain.BackendJSON, domain.BackendSQLite:
	default:
		return nil, zerr.With(zerr.New("unknown state backend"), "backend", settings.Backend)
	}

	return &settings, nil
}

// mapProvider adapts a map to a koanf provider.
type mapProvider map[string]any

func (p mapProvider) Read() (map[string]any, error) {
	return p, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("not implemented")
}
