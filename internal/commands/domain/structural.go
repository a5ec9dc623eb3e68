package commands

// InsertCommand inserts an item into a slice owned elsewhere, e.g. the
// curves of a voltage configuration.
type InsertCommand[T any] struct {
	description string
	items       *[]T
	index       int
	item        T
	inserted    int
	executed    bool
}

// NewInsertCommand inserts item at index; index < 0 or past the end appends.
func NewInsertCommand[T any](description string, items *[]T, index int, item T) *InsertCommand[T] {
	return &InsertCommand[T]{description: description, items: items, index: index, item: item}
}

// Description is shown in undo/redo menus.
func (c *InsertCommand[T]) Description() string { return c.description }

// Execute inserts the item.
func (c *InsertCommand[T]) Execute() error {
	if c.items == nil {
		return ErrNilTarget
	}
	at := c.index
	if at < 0 || at > len(*c.items) {
		at = len(*c.items)
	}
	*c.items = insertAt(*c.items, at, c.item)
	c.inserted = at
	c.executed = true
	return nil
}

// Undo removes the inserted item.
func (c *InsertCommand[T]) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	if c.inserted >= len(*c.items) {
		return &IndexError{Op: "undo insert", Index: c.inserted, Length: len(*c.items)}
	}
	*c.items = removeAt(*c.items, c.inserted)
	return nil
}

// Index is where the item was inserted by the last Execute.
func (c *InsertCommand[T]) Index() int { return c.inserted }

// RemoveCommand removes the item at index and puts it back on undo.
type RemoveCommand[T any] struct {
	description string
	items       *[]T
	index       int
	removed     T
	executed    bool
}

// NewRemoveCommand removes (*items)[index].
func NewRemoveCommand[T any](description string, items *[]T, index int) *RemoveCommand[T] {
	return &RemoveCommand[T]{description: description, items: items, index: index}
}

// Description is shown in undo/redo menus.
func (c *RemoveCommand[T]) Description() string { return c.description }

// Execute captures and removes the item.
func (c *RemoveCommand[T]) Execute() error {
	if c.items == nil {
		return ErrNilTarget
	}
	if c.index < 0 || c.index >= len(*c.items) {
		return &IndexError{Op: "remove", Index: c.index, Length: len(*c.items)}
	}
	c.removed = (*c.items)[c.index]
	*c.items = removeAt(*c.items, c.index)
	c.executed = true
	return nil
}

// Undo reinserts the removed item at its old index.
func (c *RemoveCommand[T]) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	if c.index > len(*c.items) {
		return &IndexError{Op: "undo remove", Index: c.index, Length: len(*c.items)}
	}
	*c.items = insertAt(*c.items, c.index, c.removed)
	return nil
}

// Removed is the item taken out by the last Execute.
func (c *RemoveCommand[T]) Removed() T { return c.removed }

func insertAt[T any](items []T, at int, item T) []T {
	var zero T
	items = append(items, zero)
	copy(items[at+1:], items[at:])
	items[at] = item
	return items
}

func removeAt[T any](items []T, at int) []T {
	var zero T
	copy(items[at:], items[at+1:])
	items[len(items)-1] = zero
	return items[:len(items)-1]
}
