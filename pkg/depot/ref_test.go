package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

func TestRefResolution(t *testing.T) {
	d, _ := newTestDepot(t)
	p := addProject(t, d, "alpha")

	byName, err := d.Project(ByName("alpha"))
	require.NoError(t, err)
	byID, err := d.Project(ByID(p.ID()))
	require.NoError(t, err)
	assert.True(t, byName.Equal(byID))

	_, err = d.Project(ByName("ghost"))
	assert.ErrorIs(t, err, types.ErrMissingEntity)
	_, err = d.Project(ByID(12345))
	assert.ErrorIs(t, err, types.ErrMissingEntity)
}

func TestRefString(t *testing.T) {
	assert.Equal(t, `"alpha"`, ByName("alpha").String())
	assert.Equal(t, "42", ByID(42).String())
}
