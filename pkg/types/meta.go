package types

import (
	"fmt"
	"sort"
	"strings"
)

// ModelMeta field names. The schema is fixed; every ModelMeta declares all
// of these and nothing else. All meta fields are dynamic.
const (
	MetaModelType        = "model_type"
	MetaLearningType     = "learning_type"
	MetaModelLibrary     = "model_library"
	MetaDataset          = "dataset"
	MetaObjectiveFunc    = "objective_func"
	MetaTrainingAccuracy = "training_accuracy"
	MetaTestAccuracy     = "test_accuracy"
	MetaComment          = "comment"
)

// metaFieldNames is the declared field set of ModelMeta.
var metaFieldNames = []string{
	MetaModelType,
	MetaLearningType,
	MetaModelLibrary,
	MetaDataset,
	MetaObjectiveFunc,
	MetaTrainingAccuracy,
	MetaTestAccuracy,
	MetaComment,
}

// ModelMeta is the free-form descriptive bag embedded in a Model: model
// type, learning type, inferred library, dataset, objective, accuracies,
// comment. It has no identity of its own and is always owned by exactly
// one Model. Unset fields read as nil.
type ModelMeta struct {
	values map[string]any
	dirty  bool
}

// NewModelMeta builds a ModelMeta from the given values. Unknown keys are
// rejected with ErrFieldNotFound; a nil map yields an all-unset meta.
func NewModelMeta(values map[string]any) (*ModelMeta, error) {
	m := emptyMeta()
	for k, v := range values {
		if _, ok := m.values[k]; !ok {
			return nil, unknownField(k)
		}
		m.values[k] = v
	}
	return m, nil
}

func emptyMeta() *ModelMeta {
	m := &ModelMeta{values: make(map[string]any, len(metaFieldNames))}
	for _, name := range metaFieldNames {
		m.values[name] = nil
	}
	return m
}

// ID returns 0: a ModelMeta has no identity of its own.
func (m *ModelMeta) ID() int32 { return 0 }

// Kind returns KindMeta.
func (m *ModelMeta) Kind() string { return KindMeta }

// Get returns the named meta field (nil when unset).
func (m *ModelMeta) Get(key string) (any, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, unknownField(key)
	}
	return v, nil
}

// Set assigns the named meta field. All meta fields are dynamic.
func (m *ModelMeta) Set(key string, value any) error {
	if _, ok := m.values[key]; !ok {
		return unknownField(key)
	}
	m.values[key] = value
	m.dirty = true
	return nil
}

// Has reports whether key is a declared meta field.
func (m *ModelMeta) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Dirty reports unpersisted mutations.
func (m *ModelMeta) Dirty() bool { return m.dirty }

// ClearDirty resets the dirty flag.
func (m *ModelMeta) ClearDirty() { m.dirty = false }

// Fields returns a copy of all meta fields, including unset ones.
func (m *ModelMeta) Fields() map[string]any {
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy.
func (m *ModelMeta) Clone() *ModelMeta {
	return &ModelMeta{values: m.Fields()}
}

// String renders all fields sorted by name as "k=v" pairs.
func (m *ModelMeta) String() string {
	names := make([]string, 0, len(m.values))
	for k := range m.values {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%v", k, m.values[k])
	}
	return strings.Join(parts, ", ")
}

var _ Record = (*ModelMeta)(nil)
