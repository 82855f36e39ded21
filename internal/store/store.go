// Package store provides the transactional, tree-indexed object store
// behind the depot: two ordered int32-keyed indexes ("models", "projects")
// with commit-or-abort semantics over a pluggable backing engine (memory,
// sqlite, postgres).
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Root index names.
const (
	TreeModels   = "models"
	TreeProjects = "projects"
)

// ErrIndexNotFound reports a root index name the store does not hold.
var ErrIndexNotFound = errors.New("index not found")

// journalEntry is one undo record: the serialized state a (tree, id) slot
// held before a mutation, nil kind/data meaning the slot was empty.
type journalEntry struct {
	index   *Index
	id      int32
	present bool
	kind    string
	data    []byte
}

type slotKey struct {
	tree string
	id   int32
}

// Store owns the root indexes and the transaction journal. All mutations
// between two commits form one transaction; Abort rolls every one of them
// back. A single caller at a time: the depot serializes access.
type Store struct {
	mu        sync.Mutex
	engine    Engine
	log       types.Log
	connected bool
	indexes   map[string]*Index
	journal   []journalEntry
	pending   map[slotKey]struct{}
}

// New builds a Store for the configured engine and opens it. The config is
// validated before the engine is touched.
func New(cfg types.Config, log types.Log) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	s := NewWithEngine(engine, log)
	if err := s.Open(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithEngine builds an unopened Store over the given engine. A nil log
// discards events.
func NewWithEngine(engine Engine, log types.Log) *Store {
	if log == nil {
		log = types.NopLog{}
	}
	return &Store{
		engine:  engine,
		log:     log,
		indexes: make(map[string]*Index),
		pending: make(map[slotKey]struct{}),
	}
}

// Open connects the engine and loads all persisted records into the root
// indexes. Calling Open while connected is a no-op; the loaded state is
// left untouched. Connection failures propagate, never silenced.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected {
		return nil
	}
	if err := s.engine.Open(); err != nil {
		s.log.Errorf("store open (%s): %v", s.engine.Name(), err)
		return err
	}
	rows, err := s.engine.Load()
	if err != nil {
		s.log.Errorf("store load (%s): %v", s.engine.Name(), err)
		_ = s.engine.Close()
		return err
	}
	// A reopen reloads from the engine as the source of truth: index
	// contents and any stale transaction state from before the disconnect
	// are discarded first. Index pointers handed out earlier stay valid.
	for _, ix := range s.indexes {
		ix.keys = nil
		ix.recs = make(map[int32]types.Record)
	}
	s.journal = nil
	s.pending = make(map[slotKey]struct{})
	for _, row := range rows {
		rec, err := decodeRecord(row.Kind, row.Data)
		if err != nil {
			_ = s.engine.Close()
			return fmt.Errorf("load %s/%d: %w", row.Tree, row.ID, err)
		}
		ix := s.ensureIndexLocked(row.Tree)
		ix.keys = append(ix.keys, row.ID)
		ix.recs[row.ID] = rec
	}
	// Engines return rows in key order per tree; normalize anyway.
	for _, ix := range s.indexes {
		sortKeys(ix)
	}
	s.connected = true
	s.log.Infof("store connected (%s)", s.engine.Name())
	return nil
}

// Close disconnects the engine. Idempotent. Errors propagate.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return nil
	}
	if err := s.engine.Close(); err != nil {
		s.log.Errorf("store close (%s): %v", s.engine.Name(), err)
		return err
	}
	s.connected = false
	s.log.Infof("store closed (%s)", s.engine.Name())
	return nil
}

// IsConnected reports whether the store is open.
func (s *Store) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Index returns the named root index.
func (s *Store) Index(name string) (*Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ix, ok := s.indexes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrIndexNotFound, name)
	}
	return ix, nil
}

// EnsureIndex returns the named root index, creating an empty one if
// missing. An existing index is never overwritten.
func (s *Store) EnsureIndex(name string) *Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureIndexLocked(name)
}

func (s *Store) ensureIndexLocked(name string) *Index {
	if ix, ok := s.indexes[name]; ok {
		return ix
	}
	ix := newIndex(s, name)
	s.indexes[name] = ix
	return ix
}

// Commit flushes every slot mutated since the last commit to the engine in
// one atomic batch, then discards the undo journal. On engine failure the
// journal is kept so the caller can Abort.
func (s *Store) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return types.ErrStoreUnavailable
	}
	ops := make([]WriteOp, 0, len(s.pending))
	for slot := range s.pending {
		ix := s.indexes[slot.tree]
		rec, ok := ix.recs[slot.id]
		if !ok {
			ops = append(ops, WriteOp{Row: Row{Tree: slot.tree, ID: slot.id}, Delete: true})
			continue
		}
		kind, data, err := encodeRecord(rec)
		if err != nil {
			return err
		}
		ops = append(ops, WriteOp{Row: Row{Tree: slot.tree, ID: slot.id, Kind: kind, Data: data}})
	}
	if err := s.engine.Apply(ops); err != nil {
		s.log.Errorf("commit failed (%d ops): %v", len(ops), err)
		return err
	}
	for slot := range s.pending {
		if rec, ok := s.indexes[slot.tree].recs[slot.id]; ok {
			rec.ClearDirty()
		}
	}
	tx := txID()
	s.journal = nil
	s.pending = make(map[slotKey]struct{})
	s.log.Infof("commit %s (%d ops)", tx, len(ops))
	return nil
}

// Abort rolls back every mutation since the last commit by replaying the
// undo journal in reverse, then discards it.
func (s *Store) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.journal) - 1; i >= 0; i-- {
		e := s.journal[i]
		if !e.present {
			e.index.restore(e.id, nil)
			continue
		}
		rec, err := decodeRecord(e.kind, e.data)
		if err != nil {
			return fmt.Errorf("abort %s/%d: %w", e.index.name, e.id, err)
		}
		e.index.restore(e.id, rec)
	}
	n := len(s.journal)
	tx := txID()
	s.journal = nil
	s.pending = make(map[slotKey]struct{})
	s.log.Infof("abort %s (%d slots rolled back)", tx, n)
	return nil
}

// InTransaction reports whether uncommitted mutations exist.
func (s *Store) InTransaction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.journal) > 0
}

// journalState captures the current serialized state of (ix, id) as an
// undo entry and marks the slot pending persistence. Called by Index ahead
// of every mutation; encode failures cannot occur for records that were
// accepted by Insert.
func (s *Store) journalState(ix *Index, id int32) {
	entry := journalEntry{index: ix, id: id}
	if rec, ok := ix.recs[id]; ok {
		kind, data, err := encodeRecord(rec)
		if err == nil {
			entry.present = true
			entry.kind = kind
			entry.data = data
		}
	}
	s.journal = append(s.journal, entry)
	s.pending[slotKey{tree: ix.name, id: id}] = struct{}{}
}

func sortKeys(ix *Index) {
	if len(ix.keys) < 2 {
		return
	}
	// Load appends in engine order; a single sort restores the invariant.
	slices.Sort(ix.keys)
}

func txID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
