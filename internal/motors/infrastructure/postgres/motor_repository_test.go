package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	motors "motor-editor/internal/motors/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestMotorRepositoryNilDB(t *testing.T) {
	var repo *MotorRepository
	if err := repo.Save(context.Background(), motors.NewMotorDefinition("x")); err == nil {
		t.Fatalf("expected nil db error")
	}
	if _, err := NewMotorRepository(nil).Get(context.Background(), "x"); err == nil {
		t.Fatalf("expected nil db error")
	}
}

func TestMotorRepositoryRoundTrip(t *testing.T) {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if !tableExists(db, "motor_documents") {
		t.Skip("motor_documents missing; run migrations")
	}

	ctx := context.Background()
	repo := NewMotorRepository(db)
	motor := motors.NewMotorDefinition("PG motor")
	motor.MaxSpeed = decimal.RequireFromString("4000.25")
	motor.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	motor.Drives = []*motors.Drive{{
		Name: "D1",
		Voltages: []*motors.VoltageConfiguration{{
			Voltage: decimal.RequireFromString("48"),
			Curves:  []*motors.Curve{motors.NewBlankCurve("Peak", decimal.RequireFromString("4000"))},
		}},
	}}
	defer func() { _ = repo.Delete(ctx, motor.ID) }()

	if err := repo.Save(ctx, motor); err != nil {
		t.Fatalf("save: %v", err)
	}
	motor.Name = "PG motor v2"
	if err := repo.Save(ctx, motor); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	loaded, err := repo.Get(ctx, motor.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Name != "PG motor v2" || !loaded.MaxSpeed.Equal(motor.MaxSpeed) {
		t.Fatalf("unexpected motor: %+v", loaded)
	}
	if !loaded.Drives[0].Voltages[0].Curves[0].PointsEqual(motor.Drives[0].Voltages[0].Curves[0]) {
		t.Fatalf("curve points mismatch")
	}

	rows, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, row := range rows {
		if row.ID == motor.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("saved motor missing from list")
	}

	if err := repo.Delete(ctx, motor.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, motor.ID); !errors.Is(err, motors.ErrMotorNotFound) {
		t.Fatalf("expected ErrMotorNotFound, got %v", err)
	}
}

func tableExists(db *sql.DB, table string) bool {
	var name sql.NullString
	if err := db.QueryRow(`SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false
	}
	return name.Valid
}
