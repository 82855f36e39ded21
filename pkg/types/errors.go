package types

import (
	"errors"
	"fmt"
)

// Field access errors.
var (
	ErrFieldNotFound  = errors.New("no such field")
	ErrImmutableField = errors.New("immutable field")
	ErrInvalidValue   = errors.New("invalid field value")
)

// Index and membership errors.
var (
	ErrDuplicateEntity = errors.New("entity already exists")
	ErrMissingEntity   = errors.New("entity does not exist")
	ErrDuplicateMember = errors.New("model already in project")
	ErrMissingMember   = errors.New("model not in project")
)

// Store lifecycle errors.
var (
	ErrStoreUnavailable = errors.New("store is not connected")
	ErrInvalidConfig    = errors.New("invalid store configuration")
)

// Config validation errors. Each one unwraps to ErrInvalidConfig so callers
// can match the whole family with a single errors.Is.
var (
	ErrEngineEmpty   = fmt.Errorf("%w: engine must not be empty", ErrInvalidConfig)
	ErrEngineUnknown = fmt.Errorf("%w: unknown engine", ErrInvalidConfig)
	ErrPathEmpty     = fmt.Errorf("%w: path must not be empty", ErrInvalidConfig)
	ErrDSNEmpty      = fmt.Errorf("%w: dsn must not be empty", ErrInvalidConfig)
)
