// Package workspace binds the file system and state adapters to a loaded project.
package workspace

import (
	"path/filepath"

	"go.trai.ch/kiln/internal/adapters/cas"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/adapters/sqlstate"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// StateDatabase is the SQLite state file below the data directory.
const StateDatabase = "state.db"

var _ ports.WorkspaceOpener = (*Opener)(nil)

// Opener implements ports.WorkspaceOpener.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open prepares the data directory, the sandboxed source tree and the build state backend.
func (o *Opener) Open(project *domain.Project, backend string) (*ports.Workspace, error) {
	data, err := fs.NewDataDir(project.DataDir)
	if err != nil {
		return nil, err
	}
	sources, err := fs.NewSourceTree(project.Mounts)
	if err != nil {
		return nil, err
	}

	ws := &ports.Workspace{
		Project: project,
		Sources: sources,
		Data:    data,
	}

	switch backend {
	case domain.BackendJSON, "":
		store, objects, err := cas.Open(data)
		if err != nil {
			return nil, err
		}
		ws.State, ws.Objects = store, objects
	case domain.BackendSQLite:
		store, err := sqlstate.Open(filepath.Join(data.Root(), StateDatabase))
		if err != nil {
			return nil, err
		}
		ws.State, ws.Objects = store, cas.NewObjectStore(data, cas.ObjectsDir)
	default:
		return nil, zerr.With(zerr.New("unknown state backend"), "backend", backend)
	}

	return ws, nil
}
