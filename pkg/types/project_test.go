package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectIdentityFromName(t *testing.T) {
	p := NewProject("alpha", "first")
	assert.Equal(t, int32(1446138024), p.ID())
	assert.Equal(t, p.ID(), ProjectIdentity("alpha"))

	// Same name, same identity, regardless of dynamic fields.
	q := NewProject("alpha", "different description")
	assert.True(t, p.Equal(q))
	assert.NotEqual(t, p.ID(), NewProject("beta", "first").ID())
}

func TestProjectMembership(t *testing.T) {
	p := NewProject("alpha", "")

	require.NoError(t, p.AddModel(30))
	require.NoError(t, p.AddModel(10))
	require.NoError(t, p.AddModel(20))

	// Insertion order, not sorted order.
	assert.Equal(t, []int32{30, 10, 20}, p.Models())
	assert.True(t, p.HasModel(10))
	assert.False(t, p.HasModel(99))

	assert.ErrorIs(t, p.AddModel(10), ErrDuplicateMember)
	assert.Equal(t, []int32{30, 10, 20}, p.Models(), "failed add must not change the list")

	require.NoError(t, p.RemoveModel(10))
	assert.Equal(t, []int32{30, 20}, p.Models())
	assert.ErrorIs(t, p.RemoveModel(10), ErrMissingMember)
}

func TestProjectModelsIsACopy(t *testing.T) {
	p := NewProject("alpha", "")
	require.NoError(t, p.AddModel(1))

	got := p.Models()
	got[0] = 999
	assert.Equal(t, []int32{1}, p.Models())

	// The same holds for generic field access.
	v, err := p.Get(FieldModels)
	require.NoError(t, err)
	v.([]int32)[0] = 888
	assert.Equal(t, []int32{1}, p.Models())

	// And for assignment: later caller-side mutation must not leak in.
	src := []int32{5, 6}
	require.NoError(t, p.Set(FieldModels, src))
	src[0] = 777
	assert.Equal(t, []int32{5, 6}, p.Models())
}

func TestProjectFieldAccess(t *testing.T) {
	p := NewProject("alpha", "first project")

	got, err := p.Get(FieldProjectName)
	require.NoError(t, err)
	assert.Equal(t, "alpha", got)

	got, err = p.Get(FieldProjectDescription)
	require.NoError(t, err)
	assert.Equal(t, "first project", got)

	assert.ErrorIs(t, p.Set(FieldProjectName, "renamed"), ErrImmutableField)
	assert.Equal(t, "alpha", p.Name())

	require.NoError(t, p.Set(FieldProjectDescription, "updated"))
	assert.Equal(t, "updated", p.Description())
	assert.True(t, p.Dirty())

	assert.ErrorIs(t, p.Set(FieldProjectDescription, 7), ErrInvalidValue)

	_, err = p.Get("no_such_field")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestProjectDirtyTracking(t *testing.T) {
	p := NewProject("alpha", "")
	assert.False(t, p.Dirty())

	require.NoError(t, p.AddModel(1))
	assert.True(t, p.Dirty())

	p.ClearDirty()
	assert.False(t, p.Dirty())

	require.NoError(t, p.RemoveModel(1))
	assert.True(t, p.Dirty())
}

func TestRestoreProject(t *testing.T) {
	models := []int32{3, 1, 2}
	p := RestoreProject("alpha", "desc", models, "alice")

	assert.Equal(t, ProjectIdentity("alpha"), p.ID())
	assert.Equal(t, "alice", p.Creator())
	assert.Equal(t, []int32{3, 1, 2}, p.Models())
	assert.False(t, p.Dirty())

	// Restore clones the member slice.
	models[0] = 999
	assert.Equal(t, []int32{3, 1, 2}, p.Models())
}
