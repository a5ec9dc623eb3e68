package commands

import "fmt"

// Batch runs several commands as one undo step.
type Batch struct {
	description string
	commands    []Command
}

// NewBatch groups cmds under one description.
func NewBatch(description string, cmds ...Command) *Batch {
	return &Batch{description: description, commands: cmds}
}

// Description is shown in undo/redo menus.
func (b *Batch) Description() string { return b.description }

// Len is the number of grouped commands.
func (b *Batch) Len() int { return len(b.commands) }

// Execute runs every command in order. On failure the already executed
// prefix is undone in reverse so no partial edit remains.
func (b *Batch) Execute() error {
	for i, cmd := range b.commands {
		if cmd == nil {
			return b.rollback(i, ErrNilCommand)
		}
		if err := cmd.Execute(); err != nil {
			return b.rollback(i, fmt.Errorf("%s: %w", cmd.Description(), err))
		}
	}
	return nil
}

// Undo reverts every command in reverse order.
func (b *Batch) Undo() error {
	for i := len(b.commands) - 1; i >= 0; i-- {
		if err := b.commands[i].Undo(); err != nil {
			return fmt.Errorf("%s: %w", b.commands[i].Description(), err)
		}
	}
	return nil
}

func (b *Batch) rollback(failed int, cause error) error {
	for i := failed - 1; i >= 0; i-- {
		if err := b.commands[i].Undo(); err != nil {
			return fmt.Errorf("%w (rollback failed: %v)", cause, err)
		}
	}
	return cause
}
