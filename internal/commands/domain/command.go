package commands

// Command is one reversible edit. Implementations capture the state they
// overwrite when Execute runs, not when they are constructed.
type Command interface {
	Description() string
	Execute() error
	Undo() error
}

// DirtyMarker is told when the owning document changed.
type DirtyMarker interface {
	MarkDirty()
}

// DirtyFunc adapts a function to DirtyMarker.
type DirtyFunc func()

// MarkDirty calls f.
func (f DirtyFunc) MarkDirty() {
	if f != nil {
		f()
	}
}
