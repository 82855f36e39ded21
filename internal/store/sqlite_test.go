package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

func TestSQLiteEngineRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.db")

	engine := newSQLiteEngine(path)
	require.NoError(t, engine.Open())

	ops := []WriteOp{
		{Row: Row{Tree: TreeModels, ID: 2, Kind: types.KindModel, Data: []byte(`{"a":1}`)}},
		{Row: Row{Tree: TreeModels, ID: 1, Kind: types.KindModel, Data: []byte(`{"b":2}`)}},
		{Row: Row{Tree: TreeProjects, ID: 3, Kind: types.KindProject, Data: []byte(`{"c":3}`)}},
	}
	require.NoError(t, engine.Apply(ops))
	require.NoError(t, engine.Close())

	// Reopen reuses the file; rows come back ordered by tree then id.
	reopened := newSQLiteEngine(path)
	require.NoError(t, reopened.Open())
	defer reopened.Close()

	rows, err := reopened.Load()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int32(1), rows[0].ID)
	assert.Equal(t, int32(2), rows[1].ID)
	assert.Equal(t, TreeProjects, rows[2].Tree)
	assert.Equal(t, []byte(`{"b":2}`), rows[0].Data)
}

func TestSQLiteEngineUpsertAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.db")

	engine := newSQLiteEngine(path)
	require.NoError(t, engine.Open())
	defer engine.Close()

	require.NoError(t, engine.Apply([]WriteOp{
		{Row: Row{Tree: TreeModels, ID: 1, Kind: types.KindModel, Data: []byte(`{"v":1}`)}},
	}))
	require.NoError(t, engine.Apply([]WriteOp{
		{Row: Row{Tree: TreeModels, ID: 1, Kind: types.KindModel, Data: []byte(`{"v":2}`)}},
		{Row: Row{Tree: TreeModels, ID: 2, Kind: types.KindModel, Data: []byte(`{"v":3}`)}},
	}))
	require.NoError(t, engine.Apply([]WriteOp{
		{Row: Row{Tree: TreeModels, ID: 2}, Delete: true},
	}))

	rows, err := engine.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []byte(`{"v":2}`), rows[0].Data)
}

func TestSQLiteStoreEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "warehouse.db")

	s, err := New(types.Config{Engine: types.EngineSQLite, Path: path}, nil)
	require.NoError(t, err)

	ix := s.EnsureIndex(TreeModels)
	m := storeModel(t, "proj", "payload")
	require.NoError(t, ix.Insert(m.ID(), m))
	require.NoError(t, s.Commit())
	require.NoError(t, s.Close())

	s2, err := New(types.Config{Engine: types.EngineSQLite, Path: path}, nil)
	require.NoError(t, err)
	defer s2.Close()

	ix2, err := s2.Index(TreeModels)
	require.NoError(t, err)
	rec, ok := ix2.Get(m.ID())
	require.True(t, ok)
	assert.Equal(t, m.ID(), rec.ID(), "decoded record reproduces its identity")
}
