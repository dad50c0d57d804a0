package scene

import "errors"

var (
	// ErrDanglingReference is returned when a line or plane would reference a
	// point that does not exist.
	ErrDanglingReference = errors.New("dangling point reference")
	// ErrNotFound is returned for operations on an unknown id.
	ErrNotFound = errors.New("entity not found")
	// ErrKindMismatch is returned when a patch sets fields the entity's kind does not have.
	ErrKindMismatch = errors.New("field not applicable to entity kind")
	// ErrDuplicateID is reported when two entities share an id.
	ErrDuplicateID = errors.New("duplicate entity id")
	// ErrMalformedProject is returned for a project that cannot become a scene,
	// either because it does not parse or because it breaks referential integrity.
	ErrMalformedProject = errors.New("malformed project")
	// ErrInvalidValue is reported for non-finite or out of range fields.
	ErrInvalidValue = errors.New("invalid value")
)
