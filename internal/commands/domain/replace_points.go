package commands

import (
	"fmt"

	motors "motor-editor/internal/motors/domain"
)

// ReplacePointsCommand swaps every point of a curve, e.g. for a regenerated curve.
type ReplacePointsCommand struct {
	curve    *motors.Curve
	points   []motors.DataPoint
	before   []motors.DataPoint
	executed bool
}

// NewReplacePointsCommand builds a replacement with a private copy of points.
func NewReplacePointsCommand(curve *motors.Curve, points []motors.DataPoint) *ReplacePointsCommand {
	return &ReplacePointsCommand{curve: curve, points: append([]motors.DataPoint(nil), points...)}
}

// Description is shown in undo/redo menus.
func (c *ReplacePointsCommand) Description() string {
	if c.curve == nil {
		return "Replace curve points"
	}
	return fmt.Sprintf("Replace %s points", c.curve.Name)
}

// Execute captures the current points and installs the new ones.
func (c *ReplacePointsCommand) Execute() error {
	if c.curve == nil {
		return ErrNilTarget
	}
	c.before = append([]motors.DataPoint(nil), c.curve.Points...)
	c.curve.Points = append([]motors.DataPoint(nil), c.points...)
	c.executed = true
	return nil
}

// Undo restores the captured points.
func (c *ReplacePointsCommand) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	c.curve.Points = append([]motors.DataPoint(nil), c.before...)
	return nil
}
