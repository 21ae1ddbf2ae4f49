package db

import (
	"context"
	"database/sql/driver"
	"encoding/json"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
)

// Storage persists simulation runs and their per-step snapshots.
//
//go:generate mockgen -destination ../internal/controller/storage_mock.go -package controller . Storage
type Storage interface {
	// CreateRun records a new simulation run and returns its ID.
	CreateRun(ctx context.Context, run Run) (uint, error)
	// AppendSnapshot stores the body states at one simulation step.
	AppendSnapshot(ctx context.Context, runID uint, step int, bodies BodyStates) error
	// FinishRun marks a run as completed after the given number of steps.
	FinishRun(ctx context.Context, runID uint, steps int) error
}

// Run describes the parameters of one simulation run.
type Run struct {
	G         float64
	Theta     float64
	FrameTime float64
	Bodies    int
}

// BodyState is the persisted state of a single body at one step.
type BodyState struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Mass float64 `json:"mass"`
}

// BodyStates is stored as a single jsonb column per snapshot.
type BodyStates []BodyState

func (b BodyStates) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *BodyStates) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.Errorf("cannot scan %T into BodyStates", value)
	}
	return json.Unmarshal(bytes, b)
}

type Config struct {
	PGHost string `env:"DB_POSTGRES_HOST" envDefault:""`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}
