package converter

import "fmt"

// UnrecognizedStyleError reports a style id that is absent from the
// configured kind table.
type UnrecognizedStyleError struct {
	Style string
}

func (e *UnrecognizedStyleError) Error() string {
	return fmt.Sprintf("unrecognized inline style %q", e.Style)
}

// UnrecognizedEntityError reports an entity type that is absent from the
// configured kind table.
type UnrecognizedEntityError struct {
	Entity string
}

func (e *UnrecognizedEntityError) Error() string {
	return fmt.Sprintf("unrecognized entity type %q", e.Entity)
}

// MalformedEntityDataError reports entity data missing a field its renderer
// requires.
type MalformedEntityDataError struct {
	Entity string
	Field  string
}

func (e *MalformedEntityDataError) Error() string {
	return fmt.Sprintf("entity %q data is missing required field %q", e.Entity, e.Field)
}

// MissingEntityError reports an entity range whose key has no entry in the
// entity map.
type MissingEntityError struct {
	Key int
}

func (e *MissingEntityError) Error() string {
	return fmt.Sprintf("entity range references missing entity key %d", e.Key)
}
