package depot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

func writeDescriptor(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDirectFile(t *testing.T) {
	cfg, err := LoadConfig("/data/warehouse.db")
	require.NoError(t, err)
	assert.Equal(t, types.EngineSQLite, cfg.Engine)
	assert.Equal(t, "/data/warehouse.db", cfg.Path)
}

func TestLoadConfigDescriptor(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		wantErr    error
		check      func(t *testing.T, cfg types.Config, dir string)
	}{
		{
			name:       "memory engine",
			descriptor: "engine: memory\n",
			check: func(t *testing.T, cfg types.Config, dir string) {
				assert.Equal(t, types.EngineMemory, cfg.Engine)
			},
		},
		{
			name:       "postgres engine",
			descriptor: "engine: postgres\ndsn: postgres://localhost/warehouse\n",
			check: func(t *testing.T, cfg types.Config, dir string) {
				assert.Equal(t, types.EnginePostgres, cfg.Engine)
				assert.Equal(t, "postgres://localhost/warehouse", cfg.DSN)
			},
		},
		{
			name:       "relative sqlite path resolves against descriptor dir",
			descriptor: "engine: sqlite\npath: warehouse.db\n",
			check: func(t *testing.T, cfg types.Config, dir string) {
				assert.Equal(t, filepath.Join(dir, "warehouse.db"), cfg.Path)
			},
		},
		{
			name:       "absolute sqlite path kept",
			descriptor: "engine: sqlite\npath: /data/warehouse.db\n",
			check: func(t *testing.T, cfg types.Config, dir string) {
				assert.Equal(t, "/data/warehouse.db", cfg.Path)
			},
		},
		{
			name:       "unknown engine rejected",
			descriptor: "engine: redis\n",
			wantErr:    types.ErrEngineUnknown,
		},
		{
			name:       "missing engine rejected",
			descriptor: "path: warehouse.db\n",
			wantErr:    types.ErrEngineEmpty,
		},
		{
			name:       "sqlite without path rejected",
			descriptor: "engine: sqlite\n",
			wantErr:    types.ErrPathEmpty,
		},
		{
			name:       "malformed yaml rejected",
			descriptor: "engine: [unclosed\n",
			wantErr:    types.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDescriptor(t, "store.yaml", tt.descriptor)
			cfg, err := LoadConfig(path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, types.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg, filepath.Dir(path))
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "store.yaml"))
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}
