package migrate

import "errors"

var (
	// ErrUnknownEntity indicates the requested entity has no registered migrator.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrMappingNotFound indicates a legacy foreign key could not be resolved
	// to a target UUID. The referenced parent row has not been migrated.
	ErrMappingNotFound = errors.New("legacy id mapping not found")

	// ErrUnknownStatusCode indicates a legacy integer status code has no
	// mapping to a target enum value.
	ErrUnknownStatusCode = errors.New("unknown legacy status code")
)
