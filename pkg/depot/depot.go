// Package depot is the transactional CRUD facade over the model and
// project indexes. Every mutating operation runs against the store's
// current state and finalizes with a single commit, or aborts on any
// failure, restoring both indexes. The triggering error is logged and
// returned to the caller as a typed error: state unchanged plus a sentinel
// error is the normal failure signal.
package depot

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mesh-intelligence/warehouse/internal/store"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Depot coordinates the "models" and "projects" indexes. It is the sole
// mutator of both; mutating calls are serialized, one at a time.
type Depot struct {
	mu  sync.Mutex
	st  *store.Store
	log types.Log
}

// Open loads the store configuration at path and builds a connected Depot.
func Open(path string, log types.Log) (*Depot, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, log)
}

// New builds a Depot over the configured store engine, opening the store
// and ensuring both root indexes exist. Existing indexes are never
// overwritten.
func New(cfg types.Config, log types.Log) (*Depot, error) {
	if log == nil {
		log = types.NopLog{}
	}
	st, err := store.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewWithStore(st, log)
}

// NewWithStore builds a Depot over an existing store, opening it if
// needed. Used by tests to inject engines.
func NewWithStore(st *store.Store, log types.Log) (*Depot, error) {
	if log == nil {
		log = types.NopLog{}
	}
	if !st.IsConnected() {
		if err := st.Open(); err != nil {
			return nil, err
		}
	}
	st.EnsureIndex(store.TreeModels)
	st.EnsureIndex(store.TreeProjects)
	return &Depot{st: st, log: log}, nil
}

// Reconnect re-acquires store access after a dropped connection. A no-op
// when already connected; otherwise the store is reopened and both root
// indexes are re-validated, creating empty ones only if missing.
func (d *Depot) Reconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.st.IsConnected() {
		return nil
	}
	if err := d.st.Open(); err != nil {
		return err
	}
	d.st.EnsureIndex(store.TreeModels)
	d.st.EnsureIndex(store.TreeProjects)
	return nil
}

// Close releases the store connection. Errors propagate unconditionally.
func (d *Depot) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.st.Close()
}

// IsConnected reports whether the underlying store is open.
func (d *Depot) IsConnected() bool { return d.st.IsConnected() }

// models and projects fetch the root indexes. Both exist from construction
// onward.
func (d *Depot) models() *store.Index   { return d.st.EnsureIndex(store.TreeModels) }
func (d *Depot) projects() *store.Index { return d.st.EnsureIndex(store.TreeProjects) }

// tx runs a mutating body under the commit-or-abort protocol: on success
// the transaction commits and the event is logged; on any failure every
// index mutation made by the body is rolled back, the failure is logged,
// and the error is returned.
func (d *Depot) tx(op string, body func() error) error {
	if !d.st.IsConnected() {
		d.log.Errorf("%s: %v", op, types.ErrStoreUnavailable)
		return types.ErrStoreUnavailable
	}
	if err := body(); err != nil {
		if aerr := d.st.Abort(); aerr != nil {
			d.log.Errorf("%s: abort: %v", op, aerr)
		}
		d.log.Errorf("%s: %v", op, err)
		return err
	}
	if err := d.st.Commit(); err != nil {
		if aerr := d.st.Abort(); aerr != nil {
			d.log.Errorf("%s: abort: %v", op, aerr)
		}
		d.log.Errorf("%s: commit: %v", op, err)
		return err
	}
	return nil
}

// AddModel inserts m into the model index and appends its identity to the
// owning project's member list, atomically with respect to both indexes.
// Fails with ErrMissingEntity when the owning project does not exist and
// ErrDuplicateEntity when the identity is already taken.
func (d *Depot) AddModel(m *types.Model) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx("add model", func() error { return d.addModel(m) })
}

func (d *Depot) addModel(m *types.Model) error {
	proj, err := d.projectByName(m.ProjectName())
	if err != nil {
		return err
	}
	if d.models().Has(m.ID()) {
		return fmt.Errorf("%w: model %d", types.ErrDuplicateEntity, m.ID())
	}
	if err := d.models().Insert(m.ID(), m); err != nil {
		return err
	}
	if err := d.projects().Touch(proj.ID()); err != nil {
		return err
	}
	if err := proj.AddModel(m.ID()); err != nil {
		return err
	}
	d.log.Infof("add model %d to project %q", m.ID(), m.ProjectName())
	return nil
}

// RemoveModel deletes the model with the given identity and pulls it from
// its project's member list. Fails with ErrMissingEntity when absent.
func (d *Depot) RemoveModel(id int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx("remove model", func() error { return d.removeModel(id) })
}

func (d *Depot) removeModel(id int32) error {
	rec, ok := d.models().Get(id)
	if !ok {
		return fmt.Errorf("%w: model %d", types.ErrMissingEntity, id)
	}
	m := rec.(*types.Model)
	proj, err := d.projectByName(m.ProjectName())
	if err != nil {
		return err
	}
	if err := d.models().Delete(id); err != nil {
		return err
	}
	if err := d.projects().Touch(proj.ID()); err != nil {
		return err
	}
	if err := proj.RemoveModel(id); err != nil {
		return err
	}
	d.log.Infof("remove model %d from project %q", id, proj.Name())
	return nil
}

// AddProject inserts p into the project index. Fails with
// ErrDuplicateEntity when a project with the same name already exists.
func (d *Depot) AddProject(p *types.Project) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx("add project", func() error {
		if d.projects().Has(p.ID()) {
			return fmt.Errorf("%w: project %q", types.ErrDuplicateEntity, p.Name())
		}
		if err := d.projects().Insert(p.ID(), p); err != nil {
			return err
		}
		d.log.Infof("add project %q (%d)", p.Name(), p.ID())
		return nil
	})
}

// RemoveProject deletes the project with the given identity. Its member
// models, processed in stored member order, are re-homed into moveTo when
// given (see MoveModel) and removed outright otherwise. Fails with
// ErrMissingEntity when the project is absent.
func (d *Depot) RemoveProject(id int32, moveTo *Ref) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx("remove project", func() error {
		rec, ok := d.projects().Get(id)
		if !ok {
			return fmt.Errorf("%w: project %d", types.ErrMissingEntity, id)
		}
		proj := rec.(*types.Project)
		for _, mid := range proj.Models() {
			var err error
			if moveTo != nil {
				err = d.moveModel(mid, *moveTo)
			} else {
				err = d.tx("remove model", func() error { return d.removeModel(mid) })
			}
			if err != nil {
				return err
			}
		}
		if err := d.projects().Delete(id); err != nil {
			return err
		}
		d.log.Infof("remove project %q (%d)", proj.Name(), id)
		return nil
	})
}

// MoveModel re-homes the model with the given identity into the target
// project. The model's project name and timestamp are static, so the move
// constructs a new Model with the same payload and meta, a fresh
// timestamp, and hence a NEW identity, adds it, then removes the old one.
//
// The two steps are separate transactions by design: if the add commits
// and the remove fails, both models remain until the caller retries the
// removal. This window is a known consistency gap, not silently repaired.
func (d *Depot) MoveModel(id int32, target Ref) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.moveModel(id, target)
}

func (d *Depot) moveModel(id int32, target Ref) error {
	rec, ok := d.models().Get(id)
	if !ok {
		return fmt.Errorf("%w: model %d", types.ErrMissingEntity, id)
	}
	old := rec.(*types.Model)
	targetName, err := target.projectName(d.projects())
	if err != nil {
		return err
	}
	moved := types.NewModel(old.Payload(), targetName, old.Meta().Clone())
	if err := d.tx("add model", func() error { return d.addModel(moved) }); err != nil {
		return err
	}
	return d.tx("remove model", func() error { return d.removeModel(id) })
}

// UpdateField assigns a dynamic field of the entity with the given
// identity, resolving against the model index first, then the project
// index. Fails with ErrMissingEntity when the identity is in neither, and
// with ErrImmutableField for static fields.
func (d *Depot) UpdateField(id int32, attr string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx("update field", func() error {
		for _, ix := range []*store.Index{d.models(), d.projects()} {
			rec, ok := ix.Get(id)
			if !ok {
				continue
			}
			if err := ix.Touch(id); err != nil {
				return err
			}
			if err := rec.Set(attr, value); err != nil {
				return err
			}
			d.log.Infof("update %s %d: %s", rec.Kind(), id, attr)
			return nil
		}
		return fmt.Errorf("%w: %d in models or projects", types.ErrMissingEntity, id)
	})
}

// ProjectNames returns all project names in lexicographic order.
func (d *Depot) ProjectNames() []string {
	names := make([]string, 0, d.projects().Len())
	for _, rec := range d.projects().Records() {
		names = append(names, rec.(*types.Project).Name())
	}
	sort.Strings(names)
	return names
}

// Project returns the project identified by ref.
func (d *Depot) Project(ref Ref) (*types.Project, error) {
	return ref.resolve(d.projects())
}

// Model returns the model with the given identity.
func (d *Depot) Model(id int32) (*types.Model, error) {
	rec, ok := d.models().Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: model %d", types.ErrMissingEntity, id)
	}
	return rec.(*types.Model), nil
}

// projectByName resolves a project by name. One error kind covers both a
// missing project and a malformed reference.
func (d *Depot) projectByName(name string) (*types.Project, error) {
	rec, ok := d.projects().Get(types.ProjectIdentity(name))
	if !ok {
		return nil, fmt.Errorf("%w: project %q", types.ErrMissingEntity, name)
	}
	return rec.(*types.Project), nil
}
