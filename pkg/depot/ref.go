package depot

import (
	"fmt"

	"github.com/mesh-intelligence/warehouse/internal/store"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Ref identifies a project by name or by identity. The zero Ref is not
// valid; build one with ByName or ByID.
type Ref struct {
	name string
	id   int32
	byID bool
}

// ByName refers to the project with the given name.
func ByName(name string) Ref { return Ref{name: name} }

// ByID refers to the project with the given identity.
func ByID(id int32) Ref { return Ref{id: id, byID: true} }

// resolve returns the referenced project from the index.
func (r Ref) resolve(projects *store.Index) (*types.Project, error) {
	id := r.id
	if !r.byID {
		id = types.ProjectIdentity(r.name)
	}
	rec, ok := projects.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: project %s", types.ErrMissingEntity, r)
	}
	return rec.(*types.Project), nil
}

// projectName resolves the referenced project's name. A by-name Ref
// passes through unchecked; insertion validates existence later.
func (r Ref) projectName(projects *store.Index) (string, error) {
	if !r.byID {
		return r.name, nil
	}
	proj, err := r.resolve(projects)
	if err != nil {
		return "", err
	}
	return proj.Name(), nil
}

// String renders the reference for messages.
func (r Ref) String() string {
	if r.byID {
		return fmt.Sprintf("%d", r.id)
	}
	return fmt.Sprintf("%q", r.name)
}
