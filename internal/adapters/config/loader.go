// Package config loads the kiln.yaml project manifest and the layered runtime settings.
package config

import (
	"cmp"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestFile is the project manifest looked up in the working directory.
	ManifestFile = "kiln.yaml"
	// SettingsFile is the optional runtime settings file.
	SettingsFile = "kiln.toml"
	// DefaultDataDir is used when the manifest does not name a data directory.
	DefaultDataDir = ".kiln"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader over kiln.yaml and kiln.toml.
type FileConfigLoader struct {
	Filename         string
	SettingsFilename string
	logger           ports.Logger
}

// NewLoader creates a FileConfigLoader using the default file names.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{
		Filename:         ManifestFile,
		SettingsFilename: SettingsFile,
		logger:           logger,
	}
}

// LoadProject reads the manifest in dir.
func (l *FileConfigLoader) LoadProject(dir string) (*domain.Project, error) {
	project, err := Load(filepath.Join(dir, l.Filename))
	if err != nil {
		return nil, err
	}

	for _, r := range project.Resources {
		if _, ok := project.Compilers[r.ID.Type.String()]; !ok && l.logger != nil {
			l.logger.Warn("no compiler bound to type " + r.ID.Type.String() + " of " + r.ID.String())
		}
	}
	return project, nil
}

// Load reads a manifest file and returns the project it describes.
// Relative mount roots and the data directory resolve against the manifest's directory.
func Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project root")
	}

	return manifest.toProject(root)
}

func (m *Manifest) toProject(root string) (*domain.Project, error) {
	if len(m.Mounts) == 0 {
		return nil, domain.ErrNoMounts
	}

	project := &domain.Project{
		Root:      root,
		DataDir:   resolve(root, cmp.Or(m.Data, DefaultDataDir)),
		Platforms: canonicalizeStrings(m.Platforms),
		Compilers: make(map[string]domain.CompilerBinding, len(m.Compilers)),
		Tools:     make(map[string]domain.Tool, len(m.Tools)),
	}
	if len(project.Platforms) == 0 {
		project.Platforms = []string{runtime.GOOS}
	}

	for _, mount := range m.Mounts {
		if mount.Root == "" {
			return nil, zerr.With(zerr.New("mount without root"), "prefix", mount.Prefix)
		}
		project.Mounts = append(project.Mounts, domain.Mount{
			Prefix: strings.Trim(mount.Prefix, "/"),
			Root:   resolve(root, mount.Root),
		})
	}

	for name, tool := range m.Tools {
		if len(tool.Candidates) == 0 {
			return nil, zerr.With(zerr.New("tool without candidates"), "tool", name)
		}
		project.Tools[name] = domain.Tool{Candidates: tool.Candidates, Args: tool.Args}
	}

	for typ, c := range m.Compilers {
		kind := cmp.Or(c.Kind, domain.CompilerKindRaw)
		switch kind {
		case domain.CompilerKindRaw, domain.CompilerKindPackage:
		case domain.CompilerKindTool:
			if _, ok := project.Tools[c.Tool]; !ok {
				return nil, zerr.With(zerr.With(zerr.New("compiler references unknown tool"), "type", typ), "tool", c.Tool)
			}
		default:
			return nil, zerr.With(zerr.With(zerr.New("unknown compiler kind"), "type", typ), "kind", kind)
		}
		project.Compilers[typ] = domain.CompilerBinding{Kind: kind, Tool: c.Tool, Version: c.Version}
	}

	seen := make(map[domain.ResourceID]bool, len(m.Resources))
	for _, r := range m.Resources {
		id, err := domain.ParseResourceID(r.ID)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, zerr.With(zerr.New("resource listed twice"), "resource", r.ID)
		}
		seen[id] = true

		spec := domain.ResourceSpec{ID: id}
		for _, req := range canonicalizeStrings(r.Requires) {
			reqID, err := domain.ParseResourceID(req)
			if err != nil {
				return nil, zerr.With(err, "required_by", r.ID)
			}
			spec.Requires = append(spec.Requires, reqID)
		}
		project.Resources = append(project.Resources, spec)
	}

	return project, nil
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
