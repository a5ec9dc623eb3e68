package yamlfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	motors "motor-editor/internal/motors/domain"
)

const fileExt = ".yaml"

// DirRepository keeps one YAML document per motor in a directory,
// named <id>.yaml.
type DirRepository struct {
	mu  sync.Mutex
	dir string
}

// NewDirRepository creates dir if needed and returns a repository over it.
func NewDirRepository(dir string) (*DirRepository, error) {
	if dir == "" {
		return nil, errors.New("yamlfile: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirRepository{dir: dir}, nil
}

// Save writes the motor document.
func (r *DirRepository) Save(ctx context.Context, motor *motors.MotorDefinition) error {
	_ = ctx
	if motor == nil {
		return motors.ErrNilMotor
	}
	path, err := r.path(motor.ID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return WriteFile(path, motor)
}

// Get reads the motor document with id.
func (r *DirRepository) Get(ctx context.Context, id string) (*motors.MotorDefinition, error) {
	_ = ctx
	path, err := r.path(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	motor, err := ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, motors.ErrMotorNotFound
	}
	return motor, err
}

// List decodes every document in the directory. Unreadable files are skipped.
func (r *DirRepository) List(ctx context.Context) ([]motors.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}
	result := make([]motors.Summary, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		motor, err := ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			continue
		}
		result = append(result, motors.SummaryOf(motor))
	}
	motors.SortSummaries(result)
	return result, nil
}

// Delete removes the document with id.
func (r *DirRepository) Delete(ctx context.Context, id string) error {
	_ = ctx
	path, err := r.path(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return motors.ErrMotorNotFound
		}
		return err
	}
	return nil
}

func (r *DirRepository) path(id string) (string, error) {
	if id == "" {
		return "", motors.ErrEmptyID
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", errors.New("yamlfile: invalid motor id")
	}
	return filepath.Join(r.dir, id+fileExt), nil
}
