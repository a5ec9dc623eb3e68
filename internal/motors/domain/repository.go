package motors

import (
	"context"
	"sort"
	"time"
)

// Summary is a listing row for a stored motor definition.
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PartNumber string    `json:"part_number"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SummaryOf builds the listing row of m.
func SummaryOf(m *MotorDefinition) Summary {
	return Summary{ID: m.ID, Name: m.Name, PartNumber: m.PartNumber, UpdatedAt: m.UpdatedAt}
}

// SortSummaries orders rows by name then id.
func SortSummaries(rows []Summary) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})
}

// Repository persists motor definitions as whole documents.
type Repository interface {
	Save(ctx context.Context, motor *MotorDefinition) error
	Get(ctx context.Context, id string) (*MotorDefinition, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
}
