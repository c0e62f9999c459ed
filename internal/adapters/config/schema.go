package config

// Manifest represents the structure of the kiln.yaml project file.
type Manifest struct {
	Version   string                 `yaml:"version"`
	Data      string                 `yaml:"data"`
	Platforms []string               `yaml:"platforms"`
	Mounts    []MountDTO             `yaml:"mounts"`
	Compilers map[string]CompilerDTO `yaml:"compilers"`
	Tools     map[string]ToolDTO     `yaml:"tools"`
	Resources []ResourceDTO          `yaml:"resources"`
}

// MountDTO is a source mount. An empty prefix claims every logical path.
type MountDTO struct {
	Prefix string `yaml:"prefix"`
	Root   string `yaml:"root"`
}

// CompilerDTO binds a resource type to a compiler.
type CompilerDTO struct {
	Kind    string `yaml:"kind"`
	Tool    string `yaml:"tool"`
	Version uint32 `yaml:"version"`
}

// ToolDTO describes an external executable.
type ToolDTO struct {
	Candidates []string `yaml:"candidates"`
	Args       []string `yaml:"args"`
}

// ResourceDTO lists a resource and its declared requirements.
type ResourceDTO struct {
	ID       string   `yaml:"id"`
	Requires []string `yaml:"requires"`
}
