package types

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/warehouse/pkg/identity"
)

// Project field names.
const (
	FieldProjectDescription = "project_description"
	FieldModels             = "models"
)

// Project groups models. Its name is the only static field, so the name is
// globally unique and fully determines the project's identity. The member
// list holds the identities of the models currently assigned to the
// project, in insertion order; the Project owns that list exclusively.
type Project struct {
	projectName string
	description string
	models      []int32
	creator     string
	id          int32
	dirty       bool
}

var projectFields = fieldTable[*Project]{
	FieldProjectName: {static: true, get: func(p *Project) any { return p.projectName }},
	FieldProjectDescription: {
		get: func(p *Project) any { return p.description },
		set: func(p *Project, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: project_description wants string, got %T", ErrInvalidValue, v)
			}
			p.description = s
			return nil
		},
	},
	FieldModels: {
		// Defensive copies both ways: callers never share the member list.
		get: func(p *Project) any { return slices.Clone(p.models) },
		set: func(p *Project, v any) error {
			ids, ok := v.([]int32)
			if !ok {
				return fmt.Errorf("%w: models wants []int32, got %T", ErrInvalidValue, v)
			}
			p.models = slices.Clone(ids)
			return nil
		},
	},
	FieldCreator: {
		get: func(p *Project) any { return p.creator },
		set: func(p *Project, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: creator wants string, got %T", ErrInvalidValue, v)
			}
			p.creator = s
			return nil
		},
	},
}

// NewProject builds a Project with the given name and description, stamping
// the calling OS user as creator.
func NewProject(name, description string) *Project {
	return &Project{
		projectName: name,
		description: description,
		creator:     currentUser(),
		id:          identity.Hash(name),
	}
}

// RestoreProject rebuilds a Project from persisted state. Used by the store
// codec.
func RestoreProject(name, description string, models []int32, creator string) *Project {
	return &Project{
		projectName: name,
		description: description,
		models:      slices.Clone(models),
		creator:     creator,
		id:          identity.Hash(name),
	}
}

// ProjectIdentity returns the identity a project with the given name would
// have. The name is the project's true key.
func ProjectIdentity(name string) int32 { return identity.Hash(name) }

// ID returns the identity derived from the project name.
func (p *Project) ID() int32 { return p.id }

// Kind returns KindProject.
func (p *Project) Kind() string { return KindProject }

// Name returns the project name.
func (p *Project) Name() string { return p.projectName }

// Description returns the project description.
func (p *Project) Description() string { return p.description }

// Creator returns the creator field.
func (p *Project) Creator() string { return p.creator }

// Models returns a copy of the member identity list in insertion order.
func (p *Project) Models() []int32 { return slices.Clone(p.models) }

// HasModel reports whether id is in the member list.
func (p *Project) HasModel(id int32) bool { return slices.Contains(p.models, id) }

// AddModel appends id to the member list, preserving insertion order.
// Returns ErrDuplicateMember if id is already present.
func (p *Project) AddModel(id int32) error {
	if slices.Contains(p.models, id) {
		return fmt.Errorf("%w: model %d in project %q", ErrDuplicateMember, id, p.projectName)
	}
	p.models = append(p.models, id)
	p.dirty = true
	return nil
}

// RemoveModel removes id from the member list.
// Returns ErrMissingMember if id is absent.
func (p *Project) RemoveModel(id int32) error {
	i := slices.Index(p.models, id)
	if i < 0 {
		return fmt.Errorf("%w: model %d in project %q", ErrMissingMember, id, p.projectName)
	}
	p.models = slices.Delete(p.models, i, i+1)
	p.dirty = true
	return nil
}

// Get returns the named field's value.
func (p *Project) Get(key string) (any, error) {
	if v, ok := getField(projectFields, p, key); ok {
		return v, nil
	}
	return nil, unknownField(key)
}

// Set assigns the named dynamic field.
func (p *Project) Set(key string, value any) error {
	found, err := setField(projectFields, p, key, value)
	if !found {
		return unknownField(key)
	}
	if err == nil {
		p.dirty = true
	}
	return err
}

// Has reports whether the Project declares key.
func (p *Project) Has(key string) bool {
	_, ok := projectFields[key]
	return ok
}

// Dirty reports unpersisted mutations.
func (p *Project) Dirty() bool { return p.dirty }

// ClearDirty resets the dirty flag.
func (p *Project) ClearDirty() { p.dirty = false }

// Equal reports identity equality.
func (p *Project) Equal(o *Project) bool { return o != nil && p.id == o.id }

// Less orders projects by identity.
func (p *Project) Less(o *Project) bool { return o != nil && p.id < o.id }

// String renders the project's display form.
func (p *Project) String() string {
	return fmt.Sprintf("project_name=%s, project_description=%s, creator=%s, models=%v",
		p.projectName, p.description, p.creator, p.models)
}

var _ Record = (*Project)(nil)
