package commands

// DefaultCapacity is the number of commands kept when no capacity is configured.
const DefaultCapacity = 100

// History is the undo/redo stack. Commands [0, position) are applied;
// [position, len) are undone and can be redone. History does no locking.
type History struct {
	commands []Command
	position int
	capacity int
	dirty    DirtyMarker
}

// Option configures a History.
type Option func(*History)

// WithCapacity limits how many commands are kept. Values <= 0 mean unlimited.
func WithCapacity(capacity int) Option {
	return func(h *History) {
		h.capacity = capacity
	}
}

// WithDirtyMarker registers the document to mark dirty after changes.
func WithDirtyMarker(marker DirtyMarker) Option {
	return func(h *History) {
		if marker != nil {
			h.dirty = marker
		}
	}
}

// NewHistory constructs an empty stack.
func NewHistory(opts ...Option) *History {
	h := &History{capacity: DefaultCapacity}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Do executes cmd and pushes it, dropping any redo tail. If Execute fails
// the stack is left as it was and the error is returned.
func (h *History) Do(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.commands = append(h.commands[:h.position], cmd)
	h.position++
	h.trim()
	h.markDirty()
	return nil
}

// Undo reverts the last applied command. It is a no-op returning false when
// there is nothing to undo. A failing Undo leaves the position unchanged.
func (h *History) Undo() (bool, error) {
	if h.position == 0 {
		return false, nil
	}
	if err := h.commands[h.position-1].Undo(); err != nil {
		return false, err
	}
	h.position--
	h.markDirty()
	return true, nil
}

// Redo re-applies the next undone command. It is a no-op returning false at
// the tail. A failing Execute leaves the position unchanged.
func (h *History) Redo() (bool, error) {
	if h.position >= len(h.commands) {
		return false, nil
	}
	if err := h.commands[h.position].Execute(); err != nil {
		return false, err
	}
	h.position++
	h.markDirty()
	return true, nil
}

// Clear discards every command. Dirty state is not touched.
func (h *History) Clear() {
	for i := range h.commands {
		h.commands[i] = nil
	}
	h.commands = h.commands[:0]
	h.position = 0
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return h.position > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return h.position < len(h.commands) }

// UndoDescription describes the command Undo would revert.
func (h *History) UndoDescription() (string, bool) {
	if !h.CanUndo() {
		return "", false
	}
	return h.commands[h.position-1].Description(), true
}

// RedoDescription describes the command Redo would apply.
func (h *History) RedoDescription() (string, bool) {
	if !h.CanRedo() {
		return "", false
	}
	return h.commands[h.position].Description(), true
}

// Len is the number of commands held.
func (h *History) Len() int { return len(h.commands) }

// Position is the number of applied commands.
func (h *History) Position() int { return h.position }

// Capacity is the configured limit, 0 when unlimited.
func (h *History) Capacity() int {
	if h.capacity < 0 {
		return 0
	}
	return h.capacity
}

func (h *History) trim() {
	if h.capacity <= 0 || len(h.commands) <= h.capacity {
		return
	}
	drop := len(h.commands) - h.capacity
	for i := 0; i < drop; i++ {
		h.commands[i] = nil
	}
	h.commands = append(h.commands[:0], h.commands[drop:]...)
	h.position -= drop
	if h.position < 0 {
		h.position = 0
	}
}

func (h *History) markDirty() {
	if h.dirty != nil {
		h.dirty.MarkDirty()
	}
}
