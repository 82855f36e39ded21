package types

import (
	"fmt"
	"os/user"
	"time"

	"github.com/mesh-intelligence/warehouse/pkg/identity"
)

// Model field names.
const (
	FieldModelObject = "model_object"
	FieldProjectName = "project_name"
	FieldTimestamp   = "timestamp"
	FieldMetaData    = "meta_data"
	FieldCreator     = "creator"
)

// Model is a versioned, immutable-by-convention record of one stored model
// payload. Static fields (payload, project name, creation timestamp) define
// its identity; the embedded meta and the creator are dynamic. Field lookups
// that miss on the Model fall through to the embedded ModelMeta, one level
// only.
type Model struct {
	payload     identity.Blob
	projectName string
	timestamp   time.Time
	meta        *ModelMeta
	creator     string
	id          int32
	dirty       bool
}

// modelFields is the declarative field schema of Model. Static fields carry
// no setter; Set rejects them before resolution.
var modelFields = fieldTable[*Model]{
	FieldModelObject: {static: true, get: func(m *Model) any { return m.payload }},
	FieldProjectName: {static: true, get: func(m *Model) any { return m.projectName }},
	FieldTimestamp:   {static: true, get: func(m *Model) any { return m.timestamp }},
	FieldMetaData: {
		get: func(m *Model) any { return m.meta },
		set: func(m *Model, v any) error {
			meta, ok := v.(*ModelMeta)
			if !ok {
				return fmt.Errorf("%w: meta_data wants *ModelMeta, got %T", ErrInvalidValue, v)
			}
			m.meta = meta
			return nil
		},
	},
	FieldCreator: {
		get: func(m *Model) any { return m.creator },
		set: func(m *Model, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: creator wants string, got %T", ErrInvalidValue, v)
			}
			m.creator = s
			return nil
		},
	},
}

// NewModel builds a Model under the named project, stamping the current
// time and the calling OS user as creator. The meta's model_library field
// is filled from the payload label. A nil meta yields an empty one.
func NewModel(payload identity.Blob, projectName string, meta *ModelMeta) *Model {
	return NewModelAt(payload, projectName, meta, time.Now())
}

// NewModelAt is NewModel with an explicit creation timestamp. The timestamp
// is a static, identity-defining field, so replaying a construction with
// the same payload, project and timestamp reproduces the same identity.
func NewModelAt(payload identity.Blob, projectName string, meta *ModelMeta, ts time.Time) *Model {
	if meta == nil {
		meta = emptyMeta()
	}
	library := payload.Label
	if library == "" {
		library = "unknown"
	}
	meta.values[MetaModelLibrary] = library
	m := &Model{
		payload:     payload,
		projectName: projectName,
		timestamp:   ts,
		meta:        meta,
		creator:     currentUser(),
	}
	m.id = modelIdentity(payload, projectName, ts)
	return m
}

// RestoreModel rebuilds a Model from persisted state without re-stamping
// timestamp, creator or meta. Used by the store codec.
func RestoreModel(payload identity.Blob, projectName string, ts time.Time, creator string, meta *ModelMeta) *Model {
	if meta == nil {
		meta = emptyMeta()
	}
	return &Model{
		payload:     payload,
		projectName: projectName,
		timestamp:   ts,
		meta:        meta,
		creator:     creator,
		id:          modelIdentity(payload, projectName, ts),
	}
}

// modelIdentity hashes the static fields in sorted field-name order:
// model_object, project_name, timestamp.
func modelIdentity(payload identity.Blob, projectName string, ts time.Time) int32 {
	return identity.Hash(payload, projectName, ts)
}

// ID returns the identity derived from the static fields. It never changes
// after construction.
func (m *Model) ID() int32 { return m.id }

// Kind returns KindModel.
func (m *Model) Kind() string { return KindModel }

// Payload returns the stored payload blob.
func (m *Model) Payload() identity.Blob { return m.payload }

// ProjectName returns the owning project's name.
func (m *Model) ProjectName() string { return m.projectName }

// Timestamp returns the creation timestamp.
func (m *Model) Timestamp() time.Time { return m.timestamp }

// Meta returns the embedded meta record (live reference; the Model owns it).
func (m *Model) Meta() *ModelMeta { return m.meta }

// Creator returns the creator field.
func (m *Model) Creator() string { return m.creator }

// Get resolves key against the Model, then against the embedded meta.
func (m *Model) Get(key string) (any, error) {
	if v, ok := getField(modelFields, m, key); ok {
		return v, nil
	}
	if m.meta.Has(key) {
		return m.meta.Get(key)
	}
	return nil, unknownField(key)
}

// Set resolves key against the Model, then against the embedded meta, and
// assigns the field. Static fields fail with ErrImmutableField.
func (m *Model) Set(key string, value any) error {
	found, err := setField(modelFields, m, key, value)
	if found {
		if err == nil {
			m.dirty = true
		}
		return err
	}
	if m.meta.Has(key) {
		if err := m.meta.Set(key, value); err != nil {
			return err
		}
		m.dirty = true
		return nil
	}
	return unknownField(key)
}

// Has reports whether the Model or its meta declares key.
func (m *Model) Has(key string) bool {
	if _, ok := modelFields[key]; ok {
		return true
	}
	return m.meta.Has(key)
}

// Dirty reports unpersisted mutations on the Model or its meta.
func (m *Model) Dirty() bool { return m.dirty || m.meta.Dirty() }

// ClearDirty resets the dirty flags.
func (m *Model) ClearDirty() {
	m.dirty = false
	m.meta.ClearDirty()
}

// Equal reports identity equality; dynamic field differences are ignored.
func (m *Model) Equal(o *Model) bool { return o != nil && m.id == o.id }

// Less orders models by identity.
func (m *Model) Less(o *Model) bool { return o != nil && m.id < o.id }

// String renders the model's display form.
func (m *Model) String() string {
	return fmt.Sprintf("model_id=%d, project_name=%s, creator=%s, timestamp=%s, meta_data=[%s]",
		m.id, m.projectName, m.creator, m.timestamp.Format(identity.TimeLayout), m.meta)
}

// currentUser names the calling OS user, "Unknown" when unavailable.
func currentUser() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "Unknown"
	}
	return u.Username
}

var _ Record = (*Model)(nil)
