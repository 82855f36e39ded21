package store

import (
	"fmt"
	"iter"
	"slices"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Index is an ordered, unique-key mapping from int32 identity to Record.
// Mutations are journaled in the owning Store's current transaction so an
// abort restores the index byte-for-byte.
type Index struct {
	name  string
	keys  []int32
	recs  map[int32]types.Record
	store *Store
}

func newIndex(store *Store, name string) *Index {
	return &Index{
		name:  name,
		recs:  make(map[int32]types.Record),
		store: store,
	}
}

// Name returns the index name ("models" or "projects").
func (ix *Index) Name() string { return ix.name }

// Len returns the number of records.
func (ix *Index) Len() int { return len(ix.keys) }

// Has reports whether id is present.
func (ix *Index) Has(id int32) bool {
	_, ok := ix.recs[id]
	return ok
}

// Get returns the record stored under id.
func (ix *Index) Get(id int32) (types.Record, bool) {
	rec, ok := ix.recs[id]
	return rec, ok
}

// Insert stores rec under id. Returns ErrDuplicateEntity if id is taken.
func (ix *Index) Insert(id int32, rec types.Record) error {
	if _, ok := ix.recs[id]; ok {
		return fmt.Errorf("%w: %s %d", types.ErrDuplicateEntity, ix.name, id)
	}
	ix.store.journalState(ix, id)
	i, _ := slices.BinarySearch(ix.keys, id)
	ix.keys = slices.Insert(ix.keys, i, id)
	ix.recs[id] = rec
	return nil
}

// Delete removes the record under id. Returns ErrMissingEntity if absent.
func (ix *Index) Delete(id int32) error {
	if _, ok := ix.recs[id]; !ok {
		return fmt.Errorf("%w: %s %d", types.ErrMissingEntity, ix.name, id)
	}
	ix.store.journalState(ix, id)
	i, _ := slices.BinarySearch(ix.keys, id)
	ix.keys = slices.Delete(ix.keys, i, i+1)
	delete(ix.recs, id)
	return nil
}

// Touch journals the record under id ahead of an in-place mutation and
// marks it for persistence at the next commit. Callers touch first, then
// mutate through Record.Set.
func (ix *Index) Touch(id int32) error {
	if _, ok := ix.recs[id]; !ok {
		return fmt.Errorf("%w: %s %d", types.ErrMissingEntity, ix.name, id)
	}
	ix.store.journalState(ix, id)
	return nil
}

// Keys returns the identities in ascending key order.
func (ix *Index) Keys() []int32 { return slices.Clone(ix.keys) }

// All iterates the index lazily in ascending key order.
func (ix *Index) All() iter.Seq2[int32, types.Record] {
	return func(yield func(int32, types.Record) bool) {
		for _, id := range ix.keys {
			if !yield(id, ix.recs[id]) {
				return
			}
		}
	}
}

// Records returns an eager snapshot of all records in key order.
func (ix *Index) Records() []types.Record {
	out := make([]types.Record, 0, len(ix.keys))
	for _, id := range ix.keys {
		out = append(out, ix.recs[id])
	}
	return out
}

// restore forces id to the given record (nil removes it). Used only by
// transaction rollback.
func (ix *Index) restore(id int32, rec types.Record) {
	_, present := ix.recs[id]
	i, _ := slices.BinarySearch(ix.keys, id)
	switch {
	case rec == nil && present:
		ix.keys = slices.Delete(ix.keys, i, i+1)
		delete(ix.recs, id)
	case rec != nil && !present:
		ix.keys = slices.Insert(ix.keys, i, id)
		ix.recs[id] = rec
	case rec != nil && present:
		ix.recs[id] = rec
	}
}
