package commands

import (
	"errors"
	"fmt"
)

var (
	// ErrNilCommand is returned when a nil command is pushed.
	ErrNilCommand = errors.New("commands: nil command")
	// ErrNilTarget is returned when a command has no entity to act on.
	ErrNilTarget = errors.New("commands: nil target")
	// ErrIndexOutOfRange is returned when a command addresses a missing element.
	ErrIndexOutOfRange = errors.New("commands: index out of range")
	// ErrNotExecuted is returned when undo is called on a command that never ran.
	ErrNotExecuted = errors.New("commands: undo before execute")
)

// IndexError reports an index that fell outside its collection. On undo it
// means the target shrank while the command was on the stack.
type IndexError struct {
	Op     string
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("commands: %s: index %d out of range [0,%d)", e.Op, e.Index, e.Length)
}

// Unwrap lets errors.Is match ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }
