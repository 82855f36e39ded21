package types

import "fmt"

// Record kind names, used as codec tags and in log events.
const (
	KindModel   = "model"
	KindMeta    = "meta"
	KindProject = "project"
)

// Record is the generic field-access capability shared by all warehouse
// entities. Field names are partitioned static (identity-defining, fixed at
// construction) and dynamic (mutable). Get resolves a field against the
// record itself, then against exactly one embedded sub-record; Set follows
// the same resolution and rejects static fields.
type Record interface {
	// ID returns the deterministic identity derived from the record's
	// static fields. Stable for the lifetime of the record.
	ID() int32

	// Kind returns the record kind name (KindModel, KindMeta, KindProject).
	Kind() string

	// Get returns the named field's value. Mutable containers are copied
	// before return. Returns ErrFieldNotFound for unknown names.
	Get(key string) (any, error)

	// Set assigns the named dynamic field and marks the record dirty.
	// Returns ErrImmutableField for static fields and ErrFieldNotFound
	// for unknown names.
	Set(key string, value any) error

	// Has reports whether the record (or its embedded sub-record)
	// declares the named field.
	Has(key string) bool

	// Dirty reports whether the record has unpersisted dynamic mutations.
	Dirty() bool

	// ClearDirty resets the dirty flag; called by the store after a
	// successful commit or load.
	ClearDirty()

	fmt.Stringer
}

// fieldSpec describes one declared field of a record kind: whether it is
// static, how to read it, and how to write it. Static fields carry no
// setter; Set refuses them before ever looking one up.
type fieldSpec[T any] struct {
	static bool
	get    func(T) any
	set    func(T, any) error
}

// fieldTable is the declarative field schema of a record kind.
type fieldTable[T any] map[string]fieldSpec[T]

// getField resolves key in tbl and reads it from r.
func getField[T any](tbl fieldTable[T], r T, key string) (any, bool) {
	spec, ok := tbl[key]
	if !ok {
		return nil, false
	}
	return spec.get(r), true
}

// setField resolves key in tbl and writes v to r. The first return reports
// whether the table declares key at all.
func setField[T any](tbl fieldTable[T], r T, key string, v any) (bool, error) {
	spec, ok := tbl[key]
	if !ok {
		return false, nil
	}
	if spec.static {
		return true, fmt.Errorf("%w: %q", ErrImmutableField, key)
	}
	return true, spec.set(r, v)
}

func unknownField(key string) error {
	return fmt.Errorf("%w: %q", ErrFieldNotFound, key)
}
