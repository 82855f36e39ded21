package store

import (
	"errors"
	"sort"
)

// MemoryEngine keeps rows in process memory. Used for tests and ephemeral
// runs; it also carries a fault-injection hook so transaction failure paths
// can be exercised deterministically.
type MemoryEngine struct {
	open    bool
	rows    map[slotKey]Row
	applies int

	// failAt makes the Nth Apply call (1-based) fail; 0 disables.
	failAt int
}

// NewMemoryEngine builds an empty in-memory engine.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{rows: make(map[slotKey]Row)}
}

// FailApplyAt arranges for the nth subsequent Apply (1-based, counted from
// now) to fail. Test hook.
func (e *MemoryEngine) FailApplyAt(n int) {
	e.failAt = e.applies + n
}

// Name returns "memory".
func (e *MemoryEngine) Name() string { return "memory" }

// Open marks the engine connected.
func (e *MemoryEngine) Open() error {
	e.open = true
	return nil
}

// Load returns all rows sorted by tree then id.
func (e *MemoryEngine) Load() ([]Row, error) {
	if !e.open {
		return nil, errors.New("memory engine not open")
	}
	rows := make([]Row, 0, len(e.rows))
	for _, row := range e.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Tree != rows[j].Tree {
			return rows[i].Tree < rows[j].Tree
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

// Apply lands all ops, or none when fault injection trips.
func (e *MemoryEngine) Apply(ops []WriteOp) error {
	if !e.open {
		return errors.New("memory engine not open")
	}
	e.applies++
	if e.failAt > 0 && e.applies == e.failAt {
		return errors.New("injected apply failure")
	}
	for _, op := range ops {
		key := slotKey{tree: op.Tree, id: op.ID}
		if op.Delete {
			delete(e.rows, key)
			continue
		}
		e.rows[key] = op.Row
	}
	return nil
}

// Close marks the engine disconnected; rows survive for a reopen.
func (e *MemoryEngine) Close() error {
	e.open = false
	return nil
}

var _ Engine = (*MemoryEngine)(nil)
