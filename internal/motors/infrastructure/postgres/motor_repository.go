package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	motors "motor-editor/internal/motors/domain"
)

// MotorRepository stores each motor definition as one JSONB document.
type MotorRepository struct {
	db *sql.DB
}

// NewMotorRepository constructs a repository.
func NewMotorRepository(db *sql.DB) *MotorRepository {
	return &MotorRepository{db: db}
}

// Save upserts the motor document.
func (r *MotorRepository) Save(ctx context.Context, motor *motors.MotorDefinition) error {
	if r == nil || r.db == nil {
		return errors.New("motor repo: nil db")
	}
	if motor == nil {
		return motors.ErrNilMotor
	}
	if motor.ID == "" {
		return motors.ErrEmptyID
	}
	document, err := json.Marshal(motor)
	if err != nil {
		return err
	}
	updatedAt := motor.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO motor_documents (id, name, part_number, document, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	part_number = EXCLUDED.part_number,
	document = EXCLUDED.document,
	updated_at = EXCLUDED.updated_at`,
		motor.ID, motor.Name, motor.PartNumber, document, updatedAt)
	return err
}

// Get loads a motor document by id.
func (r *MotorRepository) Get(ctx context.Context, id string) (*motors.MotorDefinition, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("motor repo: nil db")
	}
	if id == "" {
		return nil, motors.ErrEmptyID
	}
	var document []byte
	err := r.db.QueryRowContext(ctx, `
SELECT document
FROM motor_documents
WHERE id = $1`, id).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, motors.ErrMotorNotFound
	}
	if err != nil {
		return nil, err
	}
	var motor motors.MotorDefinition
	if err := json.Unmarshal(document, &motor); err != nil {
		return nil, err
	}
	return &motor, nil
}

// List returns summaries ordered by name then id.
func (r *MotorRepository) List(ctx context.Context) ([]motors.Summary, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("motor repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, part_number, updated_at
FROM motor_documents
ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []motors.Summary
	for rows.Next() {
		var row motors.Summary
		if err := rows.Scan(&row.ID, &row.Name, &row.PartNumber, &row.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a motor document.
func (r *MotorRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("motor repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM motor_documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return motors.ErrMotorNotFound
	}
	return nil
}
