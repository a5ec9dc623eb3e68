package memory

import (
	"context"
	"sync"

	motors "motor-editor/internal/motors/domain"
)

// MotorRepository is an in-memory repository for demo/testing.
// Stored motors are cloned on the way in and out.
type MotorRepository struct {
	mu   sync.RWMutex
	data map[string]*motors.MotorDefinition
}

// NewMotorRepository constructs a repository.
func NewMotorRepository() *MotorRepository {
	return &MotorRepository{
		data: make(map[string]*motors.MotorDefinition),
	}
}

// Save upserts a motor by id.
func (r *MotorRepository) Save(ctx context.Context, motor *motors.MotorDefinition) error {
	_ = ctx
	if motor == nil {
		return motors.ErrNilMotor
	}
	if motor.ID == "" {
		return motors.ErrEmptyID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[motor.ID] = motor.Clone()
	return nil
}

// Get loads a motor by id.
func (r *MotorRepository) Get(ctx context.Context, id string) (*motors.MotorDefinition, error) {
	_ = ctx
	if id == "" {
		return nil, motors.ErrEmptyID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	motor := r.data[id]
	if motor == nil {
		return nil, motors.ErrMotorNotFound
	}
	return motor.Clone(), nil
}

// List returns summaries ordered by name then id.
func (r *MotorRepository) List(ctx context.Context) ([]motors.Summary, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]motors.Summary, 0, len(r.data))
	for _, motor := range r.data {
		result = append(result, motors.SummaryOf(motor))
	}
	motors.SortSummaries(result)
	return result, nil
}

// Delete removes a motor by id.
func (r *MotorRepository) Delete(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return motors.ErrMotorNotFound
	}
	delete(r.data, id)
	return nil
}
