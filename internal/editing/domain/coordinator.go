package editing

import (
	motors "motor-editor/internal/motors/domain"
)

// PointRef identifies one data point by curve and index. The curve pointer
// is never dereferenced by the coordinator; consumers must expect refs to
// removed curves or shrunk point slices.
type PointRef struct {
	Curve *motors.Curve
	Index int
}

// Listener is notified that the selection changed; it carries no payload.
type Listener func()

// Coordinator is the single shared selection of an editing session. It
// does no locking; callers serialize access.
type Coordinator struct {
	selected  map[PointRef]struct{}
	listeners map[int]Listener
	order     []int
	nextID    int
}

// NewCoordinator constructs an empty selection.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		selected:  make(map[PointRef]struct{}),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn for change notifications and returns a func that
// removes it.
func (c *Coordinator) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.order = append(c.order, id)
	return func() {
		delete(c.listeners, id)
		for i, existing := range c.order {
			if existing == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

// ClearSelection empties the selection. Clearing an empty selection does
// not notify.
func (c *Coordinator) ClearSelection() {
	if len(c.selected) == 0 {
		return
	}
	c.selected = make(map[PointRef]struct{})
	c.notify()
}

// SetSelection replaces the selection and always notifies, even when refs
// is empty or equal to the current selection.
func (c *Coordinator) SetSelection(refs []PointRef) {
	next := make(map[PointRef]struct{}, len(refs))
	for _, ref := range refs {
		next[ref] = struct{}{}
	}
	c.selected = next
	c.notify()
}

// CurrentSelection returns a copy of the selection. Order is unspecified.
func (c *Coordinator) CurrentSelection() []PointRef {
	refs := make([]PointRef, 0, len(c.selected))
	for ref := range c.selected {
		refs = append(refs, ref)
	}
	return refs
}

// Contains reports whether ref is selected.
func (c *Coordinator) Contains(ref PointRef) bool {
	_, ok := c.selected[ref]
	return ok
}

// Len is the number of selected points.
func (c *Coordinator) Len() int { return len(c.selected) }

func (c *Coordinator) notify() {
	ids := append([]int(nil), c.order...)
	for _, id := range ids {
		if fn, ok := c.listeners[id]; ok {
			fn()
		}
	}
}
