package commands

import (
	"fmt"

	"github.com/shopspring/decimal"

	motors "motor-editor/internal/motors/domain"
)

// PointEdit holds the new values of a point edit. Nil fields are left unchanged.
type PointEdit struct {
	Percent *int             `json:"percent,omitempty"`
	Speed   *decimal.Decimal `json:"speed,omitempty"`
	Torque  *decimal.Decimal `json:"torque,omitempty"`
}

// IsEmpty reports whether the edit changes nothing.
func (e PointEdit) IsEmpty() bool {
	return e.Percent == nil && e.Speed == nil && e.Torque == nil
}

// Apply returns p with the edit's non-nil fields applied.
func (e PointEdit) Apply(p motors.DataPoint) motors.DataPoint {
	if e.Percent != nil {
		p.Percent = *e.Percent
	}
	if e.Speed != nil {
		p.Speed = *e.Speed
	}
	if e.Torque != nil {
		p.Torque = *e.Torque
	}
	return p
}

// EditPointCommand changes one point of a curve.
type EditPointCommand struct {
	curve  *motors.Curve
	index  int
	edit   PointEdit
	before *motors.DataPoint
}

// NewEditPointCommand builds an edit of curve.Points[index].
func NewEditPointCommand(curve *motors.Curve, index int, edit PointEdit) *EditPointCommand {
	return &EditPointCommand{curve: curve, index: index, edit: edit}
}

// Description is shown in undo/redo menus.
func (c *EditPointCommand) Description() string {
	if c.curve == nil {
		return fmt.Sprintf("Edit point %d", c.index)
	}
	return fmt.Sprintf("Edit %s point %d", c.curve.Name, c.index)
}

// Execute snapshots the current point and applies the edit.
func (c *EditPointCommand) Execute() error {
	if err := c.check("execute"); err != nil {
		return err
	}
	current := c.curve.Points[c.index]
	c.before = &current
	c.curve.Points[c.index] = c.edit.Apply(current)
	return nil
}

// Undo restores the point captured by the last Execute.
func (c *EditPointCommand) Undo() error {
	if c.before == nil {
		return ErrNotExecuted
	}
	if err := c.check("undo"); err != nil {
		return err
	}
	c.curve.Points[c.index] = *c.before
	return nil
}

// Curve is the edited curve.
func (c *EditPointCommand) Curve() *motors.Curve { return c.curve }

// Index is the edited point index.
func (c *EditPointCommand) Index() int { return c.index }

func (c *EditPointCommand) check(op string) error {
	if c.curve == nil {
		return ErrNilTarget
	}
	if c.index < 0 || c.index >= len(c.curve.Points) {
		return &IndexError{Op: "edit point " + op, Index: c.index, Length: len(c.curve.Points)}
	}
	return nil
}
