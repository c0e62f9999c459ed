package domain

import "strings"

// Compiler kinds available to a project.
const (
	CompilerKindRaw     = "raw"
	CompilerKindPackage = "package"
	CompilerKindTool    = "tool"
)

// Project is a resource project as described by its manifest.
type Project struct {
	// Root is the directory holding the manifest; relative paths resolve against it.
	Root string
	// DataDir is the absolute directory for compiled objects, build state and temp files.
	DataDir   string
	Platforms []string
	// Mounts are searched in order; the first matching prefix wins.
	Mounts    []Mount
	Compilers map[string]CompilerBinding
	Tools     map[string]Tool
	Resources []ResourceSpec
}

// Mount maps a logical path prefix onto an absolute source root.
type Mount struct {
	Prefix string
	Root   string
}

// Match reports whether logical falls under the mount, returning the path relative to Root.
// An empty prefix matches every path.
func (m Mount) Match(logical string) (string, bool) {
	if m.Prefix == "" {
		return logical, true
	}
	rest, ok := strings.CutPrefix(logical, m.Prefix+"/")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// CompilerBinding binds a resource type to a compiler.
type CompilerBinding struct {
	Kind    string
	Tool    string
	Version uint32
}

// Tool describes an external executable used by tool compilers.
type Tool struct {
	// Candidates are tried in order; the first executable one is used.
	Candidates []string
	// Args may contain {input}, {output} and {platform} placeholders.
	Args []string
}

// ResourceSpec is a resource listed in the manifest.
type ResourceSpec struct {
	ID       ResourceID
	Requires []ResourceID
}

// Targets returns the ids of every listed resource.
func (p *Project) Targets() []ResourceID {
	ids := make([]ResourceID, len(p.Resources))
	for i, r := range p.Resources {
		ids[i] = r.ID
	}
	return ids
}

// Declared returns the declared requirements of id.
func (p *Project) Declared(id ResourceID) []ResourceID {
	for _, r := range p.Resources {
		if r.ID == id {
			return r.Requires
		}
	}
	return nil
}
