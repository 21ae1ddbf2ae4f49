package postgres

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/halbor/gravity-sim/db"
)

type Run struct {
	gorm.Model
	G         float64
	Theta     float64
	FrameTime float64
	Bodies    int
	Steps     int
	Finished  bool
}

type Snapshot struct {
	gorm.Model
	RunID  uint
	Run    Run `gorm:"constraint:OnDelete:CASCADE;not null"`
	Step   int
	Bodies db.BodyStates `gorm:"type:jsonb;default:'[]';not null"`
}

func NewPostgresDB(conf db.Config) (db.Storage, error) {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: fmt.Sprintf("host=%s user=gravitysim password=example dbname=gravitysim port=5432 sslmode=disable", conf.PGHost),
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	pg := &PostgresDB{db: gormDB}
	return pg.init()
}

type PostgresDB struct {
	db *gorm.DB
}

func (pg *PostgresDB) init() (db.Storage, error) {
	return pg, pg.db.AutoMigrate(&Run{}, &Snapshot{})
}

func (pg *PostgresDB) CreateRun(ctx context.Context, run db.Run) (uint, error) {
	r := Run{G: run.G, Theta: run.Theta, FrameTime: run.FrameTime, Bodies: run.Bodies}
	err := pg.db.WithContext(ctx).Create(&r).Error
	return r.ID, err
}

func (pg *PostgresDB) AppendSnapshot(ctx context.Context, runID uint, step int, bodies db.BodyStates) error {
	snapshot := Snapshot{RunID: runID, Step: step, Bodies: bodies}
	return pg.db.WithContext(ctx).Create(&snapshot).Error
}

func (pg *PostgresDB) FinishRun(ctx context.Context, runID uint, steps int) error {
	return pg.db.WithContext(ctx).Model(&Run{}).Where("id = ?", runID).
		Updates(map[string]interface{}{"steps": steps, "finished": true}).Error
}
