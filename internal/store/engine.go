package store

import (
	"fmt"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Row is one persisted record slot.
type Row struct {
	Tree string
	ID   int32
	Kind string
	Data []byte
}

// WriteOp is one commit operation: an upsert of Row, or a delete of the
// (Tree, ID) slot when Delete is set.
type WriteOp struct {
	Row
	Delete bool
}

// Engine is a backing persistence engine. Apply must be atomic: either all
// ops land or none do.
type Engine interface {
	Name() string
	Open() error
	Load() ([]Row, error)
	Apply(ops []WriteOp) error
	Close() error
}

// NewEngine builds the engine selected by a validated Config.
func NewEngine(cfg types.Config) (Engine, error) {
	switch cfg.Engine {
	case types.EngineMemory:
		return NewMemoryEngine(), nil
	case types.EngineSQLite:
		return newSQLiteEngine(cfg.Path), nil
	case types.EnginePostgres:
		return newPostgresEngine(cfg.DSN), nil
	}
	return nil, fmt.Errorf("%w: %q", types.ErrEngineUnknown, cfg.Engine)
}
