package commands

// PropertyCommand sets a single value through getter/setter closures.
// The previous value is read when Execute runs.
type PropertyCommand[T any] struct {
	description string
	get         func() T
	set         func(T)
	value       T
	before      T
	executed    bool
}

// NewPropertyCommand builds a field edit.
func NewPropertyCommand[T any](description string, get func() T, set func(T), value T) *PropertyCommand[T] {
	return &PropertyCommand[T]{description: description, get: get, set: set, value: value}
}

// Description is shown in undo/redo menus.
func (c *PropertyCommand[T]) Description() string { return c.description }

// Execute captures the old value and writes the new one.
func (c *PropertyCommand[T]) Execute() error {
	if c.get == nil || c.set == nil {
		return ErrNilTarget
	}
	c.before = c.get()
	c.set(c.value)
	c.executed = true
	return nil
}

// Undo writes back the captured value.
func (c *PropertyCommand[T]) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	c.set(c.before)
	return nil
}
