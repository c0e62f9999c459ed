package ports

import "go.trai.ch/kiln/internal/core/domain"

// Workspace bundles the adapters bound to one project.
type Workspace struct {
	Project *domain.Project
	Sources SourceFS
	Data    DataFS
	State   BuildStateStore
	Objects ObjectStore
}

// Close releases the workspace's build state store.
func (w *Workspace) Close() error {
	if w.State == nil {
		return nil
	}
	return w.State.Close()
}

// WorkspaceOpener binds adapters to a loaded project.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type WorkspaceOpener interface {
	// Open prepares the data directory and opens the build state backend ("json" or "sqlite").
	Open(project *domain.Project, backend string) (*Workspace, error)
}
