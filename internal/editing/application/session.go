package application

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	commands "motor-editor/internal/commands/domain"
	editing "motor-editor/internal/editing/domain"
	motors "motor-editor/internal/motors/domain"
	"motor-editor/internal/observability/metrics"
	unitsapp "motor-editor/internal/units/application"
	units "motor-editor/internal/units/domain"
)

const (
	documentEventNew   = "new"
	documentEventLoad  = "load"
	documentEventOpen  = "open"
	documentEventSave  = "save"
	documentEventClose = "close"
)

// Session is one open motor document with its history and selection.
// Every method is serialized by a single mutex; selection listeners run
// while it is held and must not call back into the session.
type Session struct {
	mu sync.Mutex

	cfg       Config
	motor     *motors.MotorDefinition
	history   *commands.History
	selection *editing.Coordinator
	converter *unitsapp.Service
	repo      motors.Repository
	logger    *log.Logger
	now       func() time.Time
	dirty     bool
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithRepository sets the document store used by Open and Save.
func WithRepository(repo motors.Repository) SessionOption {
	return func(s *Session) {
		s.repo = repo
	}
}

// WithClock overrides the save timestamp source.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession constructs an empty session.
func NewSession(cfg Config, logger *log.Logger, opts ...SessionOption) (*Session, error) {
	if logger == nil {
		return nil, errors.New("editing session: nil logger")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:       cfg,
		selection: editing.NewCoordinator(),
		converter: unitsapp.NewService(cfg.ConvertStoredData, logger),
		logger:    logger,
		now:       time.Now,
	}
	s.history = commands.NewHistory(
		commands.WithCapacity(cfg.UndoCapacity),
		commands.WithDirtyMarker(commands.DirtyFunc(func() { s.dirty = true })),
	)
	s.selection.Subscribe(metrics.IncSelectionChange)
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.converter.SetDisplayUnits(cfg.DefaultUnits); err != nil {
		return nil, err
	}
	return s, nil
}

// NewDocument replaces the open document with an empty motor.
func (s *Session) NewDocument(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	motor := motors.NewMotorDefinition(name)
	motor.Units = s.cfg.DefaultUnits
	s.replace(motor)
	metrics.IncDocumentEvent(documentEventNew)
	return motor.ID
}

// Load replaces the open document with motor after validating it.
func (s *Session) Load(motor *motors.MotorDefinition) error {
	if motor == nil {
		return motors.ErrNilMotor
	}
	if err := motor.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(motor)
	metrics.IncDocumentEvent(documentEventLoad)
	return nil
}

// Open loads the motor with id from the repository.
func (s *Session) Open(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return ErrNoRepository
	}
	motor, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := motor.Validate(); err != nil {
		return err
	}
	s.replace(motor)
	metrics.IncDocumentEvent(documentEventOpen)
	s.logger.Printf("editing: opened motor %s (%s)", motor.ID, motor.Name)
	return nil
}

// Save writes a snapshot of the open document and clears the dirty flag.
// History is kept.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return ErrNoRepository
	}
	if s.motor == nil {
		return ErrNoDocument
	}
	s.motor.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, s.motor.Clone()); err != nil {
		s.logger.Printf("editing: save motor %s failed: %v", s.motor.ID, err)
		return err
	}
	s.dirty = false
	metrics.IncDocumentEvent(documentEventSave)
	return nil
}

// Close drops the open document.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.motor == nil {
		return
	}
	s.replace(nil)
	metrics.IncDocumentEvent(documentEventClose)
}

// Snapshot returns a deep copy of the open document.
func (s *Session) Snapshot() (*motors.MotorDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.motor == nil {
		return nil, ErrNoDocument
	}
	return s.motor.Clone(), nil
}

// View is a consistent copy of the document with the units and selection
// it is presented with.
type View struct {
	Motor     *motors.MotorDefinition
	Display   units.Settings
	Places    int32
	Selection []PointAddress
}

// View captures the document, display units and selection under one lock.
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.motor == nil {
		return View{}, ErrNoDocument
	}
	return View{
		Motor:     s.motor.Clone(),
		Display:   s.displayUnits(),
		Places:    s.cfg.DisplayPlaces,
		Selection: s.selectedAddresses(),
	}, nil
}

// DocumentStatus summarizes the session for callers.
type DocumentStatus struct {
	Open              bool           `json:"open"`
	ID                string         `json:"id,omitempty"`
	Name              string         `json:"name,omitempty"`
	Dirty             bool           `json:"dirty"`
	CanUndo           bool           `json:"can_undo"`
	CanRedo           bool           `json:"can_redo"`
	UndoDescription   string         `json:"undo_description,omitempty"`
	RedoDescription   string         `json:"redo_description,omitempty"`
	UndoDepth         int            `json:"undo_depth"`
	RedoDepth         int            `json:"redo_depth"`
	SelectionSize     int            `json:"selection_size"`
	ConvertStoredData bool           `json:"convert_stored_data"`
	StoredUnits       units.Settings `json:"stored_units"`
	DisplayUnits      units.Settings `json:"display_units"`
}

// Status reports document, history and unit state.
func (s *Session) Status() DocumentStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := DocumentStatus{
		Open:              s.motor != nil,
		Dirty:             s.dirty,
		CanUndo:           s.history.CanUndo(),
		CanRedo:           s.history.CanRedo(),
		UndoDepth:         s.history.Position(),
		RedoDepth:         s.history.Len() - s.history.Position(),
		SelectionSize:     s.selection.Len(),
		ConvertStoredData: s.converter.ConvertsStoredData(),
		DisplayUnits:      s.displayUnits(),
	}
	status.UndoDescription, _ = s.history.UndoDescription()
	status.RedoDescription, _ = s.history.RedoDescription()
	if s.motor != nil {
		status.ID = s.motor.ID
		status.Name = s.motor.Name
		status.StoredUnits = s.motor.Units
	}
	return status
}

// IsDirty reports unsaved changes.
func (s *Session) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// UndoDepth is the number of commands that can be undone.
func (s *Session) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Position()
}

// RedoDepth is the number of commands that can be redone.
func (s *Session) RedoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len() - s.history.Position()
}

// SelectionSize is the number of selected points.
func (s *Session) SelectionSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Len()
}

// Undo reverts the last command. It returns the description of the undone
// command and false when there was nothing to undo.
func (s *Session) Undo() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	desc, _ := s.history.UndoDescription()
	undone, err := s.history.Undo()
	metrics.ObserveCommand(metrics.CommandOpUndo, commandResult(undone, err))
	if err != nil {
		s.logger.Printf("editing: undo %q failed: %v", desc, err)
		return "", false, err
	}
	if !undone {
		return "", false, nil
	}
	s.pruneSelection()
	return desc, true, nil
}

// Redo re-applies the last undone command.
func (s *Session) Redo() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	desc, _ := s.history.RedoDescription()
	redone, err := s.history.Redo()
	metrics.ObserveCommand(metrics.CommandOpRedo, commandResult(redone, err))
	if err != nil {
		s.logger.Printf("editing: redo %q failed: %v", desc, err)
		return "", false, err
	}
	if !redone {
		return "", false, nil
	}
	s.pruneSelection()
	return desc, true, nil
}

// execute runs cmd through the history. Callers hold s.mu.
func (s *Session) execute(cmd commands.Command) error {
	err := s.history.Do(cmd)
	metrics.ObserveCommand(metrics.CommandOpDo, metrics.Result(err))
	if err != nil {
		return err
	}
	s.pruneSelection()
	return nil
}

func (s *Session) replace(motor *motors.MotorDefinition) {
	s.motor = motor
	s.history.Clear()
	s.selection.ClearSelection()
	s.dirty = false
}

func (s *Session) document() (*motors.MotorDefinition, error) {
	if s.motor == nil {
		return nil, ErrNoDocument
	}
	return s.motor, nil
}

func (s *Session) displayUnits() units.Settings {
	if s.converter.ConvertsStoredData() && s.motor != nil {
		return s.motor.Units
	}
	return s.converter.DisplayUnits()
}

func commandResult(applied bool, err error) string {
	if err != nil {
		return metrics.ResultError
	}
	if !applied {
		return metrics.ResultNoop
	}
	return metrics.ResultSuccess
}
