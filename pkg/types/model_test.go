package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/warehouse/pkg/identity"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	meta, err := NewModelMeta(map[string]any{
		MetaLearningType: "supervised",
		MetaTestAccuracy: 0.95,
	})
	require.NoError(t, err)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC)
	return NewModelAt(identity.Blob{Label: "pickle", Data: []byte("abcde")}, "proj", meta, ts)
}

func TestModelIdentityIsDeterministic(t *testing.T) {
	m1 := testModel(t)
	m2 := testModel(t)

	// Same payload, project and timestamp reproduce the same identity.
	assert.Equal(t, m1.ID(), m2.ID())
	assert.True(t, m1.Equal(m2))

	// Golden value for the static tuple (5-byte blob, "proj", timestamp).
	assert.Equal(t, int32(-1396400081), m1.ID())
}

func TestModelIdentityVariesWithStaticFields(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC)
	payload := identity.Blob{Label: "pickle", Data: []byte("abcde")}

	base := NewModelAt(payload, "proj", nil, ts)
	otherProject := NewModelAt(payload, "other", nil, ts)
	otherTime := NewModelAt(payload, "proj", nil, ts.Add(time.Microsecond))

	assert.NotEqual(t, base.ID(), otherProject.ID())
	assert.NotEqual(t, base.ID(), otherTime.ID())
}

func TestModelGetResolvesOwnFieldsThenMeta(t *testing.T) {
	m := testModel(t)

	tests := []struct {
		name  string
		field string
		want  any
	}{
		{name: "static project name", field: FieldProjectName, want: "proj"},
		{name: "dynamic creator", field: FieldCreator, want: m.Creator()},
		{name: "delegated learning type", field: MetaLearningType, want: "supervised"},
		{name: "delegated accuracy", field: MetaTestAccuracy, want: 0.95},
		{name: "library stamped from payload label", field: MetaModelLibrary, want: "pickle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Get(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := m.Get("no_such_field")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestModelSetRejectsStaticFields(t *testing.T) {
	m := testModel(t)

	for _, field := range []string{FieldModelObject, FieldProjectName, FieldTimestamp} {
		err := m.Set(field, "anything")
		assert.ErrorIs(t, err, ErrImmutableField, field)
	}
	assert.False(t, m.Dirty(), "rejected sets must not mark dirty")
	assert.Equal(t, "proj", m.ProjectName())
}

func TestModelSetDynamicFields(t *testing.T) {
	m := testModel(t)
	id := m.ID()

	require.NoError(t, m.Set(FieldCreator, "alice"))
	assert.Equal(t, "alice", m.Creator())
	assert.True(t, m.Dirty())

	// Delegated set reaches the embedded meta.
	require.NoError(t, m.Set(MetaComment, "second run"))
	got, err := m.Meta().Get(MetaComment)
	require.NoError(t, err)
	assert.Equal(t, "second run", got)

	// Dynamic mutation never moves the identity.
	assert.Equal(t, id, m.ID())

	m.ClearDirty()
	assert.False(t, m.Dirty())
}

func TestModelSetTypeChecks(t *testing.T) {
	m := testModel(t)
	assert.ErrorIs(t, m.Set(FieldCreator, 42), ErrInvalidValue)
	assert.ErrorIs(t, m.Set(FieldMetaData, "not a meta"), ErrInvalidValue)
}

func TestModelUnknownLibraryDefault(t *testing.T) {
	m := NewModel(identity.Blob{Data: []byte("x")}, "proj", nil)
	got, err := m.Get(MetaModelLibrary)
	require.NoError(t, err)
	assert.Equal(t, "unknown", got)
}

func TestModelHas(t *testing.T) {
	m := testModel(t)
	assert.True(t, m.Has(FieldTimestamp))
	assert.True(t, m.Has(MetaDataset), "meta fields visible through the model")
	assert.False(t, m.Has("no_such_field"))
}

func TestRestoreModelKeepsPersistedState(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC)
	payload := identity.Blob{Label: "pickle", Data: []byte("abcde")}
	meta, err := NewModelMeta(map[string]any{MetaDataset: "mnist"})
	require.NoError(t, err)

	m := RestoreModel(payload, "proj", ts, "alice", meta)
	assert.Equal(t, "alice", m.Creator())
	assert.Equal(t, ts, m.Timestamp())
	assert.False(t, m.Dirty())

	fresh := NewModelAt(payload, "proj", nil, ts)
	assert.Equal(t, fresh.ID(), m.ID(), "restore must reproduce the identity")
}

func TestModelString(t *testing.T) {
	m := testModel(t)
	s := m.String()
	assert.Contains(t, s, "model_id=-1396400081")
	assert.Contains(t, s, "project_name=proj")
	assert.Contains(t, s, "timestamp=2024-01-02T03:04:05.123456")
	assert.Contains(t, s, "learning_type=supervised")
}
