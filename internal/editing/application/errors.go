package application

import "errors"

var (
	// ErrNoDocument is returned when no document is open.
	ErrNoDocument = errors.New("editing: no open document")
	// ErrNoRepository is returned when open/save is requested without a store.
	ErrNoRepository = errors.New("editing: no repository configured")
	// ErrCurveLocked is returned when editing the points of a locked curve.
	ErrCurveLocked = errors.New("editing: curve is locked")
	// ErrEmptyEdit is returned when a point edit changes nothing.
	ErrEmptyEdit = errors.New("editing: empty edit")
	// ErrInvalidEdit is returned when an edit would break a point invariant.
	ErrInvalidEdit = errors.New("editing: invalid edit")
	// ErrUnknownField is returned for an unknown field name.
	ErrUnknownField = errors.New("editing: unknown field")
	// ErrPointNotFound is returned when a point index is outside its curve.
	ErrPointNotFound = errors.New("editing: point not found")
	// ErrEmptySelection is returned when a selection edit has nothing selected.
	ErrEmptySelection = errors.New("editing: empty selection")
)
