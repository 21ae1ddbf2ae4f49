// Package controller wires the physics simulation to storage and streaming.
package controller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/halbor/gravity-sim/db"
	"github.com/halbor/gravity-sim/live"
	"github.com/halbor/gravity-sim/physics"
)

// Broadcaster fans finished frames out to live viewers.
type Broadcaster interface {
	Broadcast(frame live.Frame) error
}

// Runner drives a simulation for a fixed number of steps, optionally
// persisting snapshots and broadcasting frames every snapshotEvery steps.
type Runner struct {
	sim           *physics.Simulation
	storage       db.Storage  // nil disables persistence
	broadcaster   Broadcaster // nil disables streaming
	snapshotEvery int
}

func NewRunner(sim *physics.Simulation, storage db.Storage, broadcaster Broadcaster, snapshotEvery int) *Runner {
	if snapshotEvery <= 0 {
		snapshotEvery = 1
	}
	return &Runner{sim: sim, storage: storage, broadcaster: broadcaster, snapshotEvery: snapshotEvery}
}

// Run advances bodies frame by frame until steps frames are done or ctx is
// cancelled. Storage and broadcast failures are logged, not fatal: the
// simulation itself stays authoritative.
func (r *Runner) Run(ctx context.Context, bodies []*physics.Body, steps int) (physics.Stats, error) {
	conf := r.sim.Config()
	var runID uint
	if r.storage != nil {
		var err error
		runID, err = r.storage.CreateRun(ctx, db.Run{
			G: conf.G, Theta: conf.Theta, FrameTime: conf.FrameTime, Bodies: len(bodies),
		})
		if err != nil {
			return physics.Stats{}, err
		}
	}

	startTime := time.Now()
	stats := physics.Stats{}
simulation:
	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			break simulation
		default:
			// continue looping
		}
		if err := r.sim.Step(bodies); err != nil {
			return stats, err
		}
		stats.Steps++
		if stats.Steps%r.snapshotEvery != 0 {
			continue
		}
		if r.storage != nil {
			if err := r.storage.AppendSnapshot(ctx, runID, stats.Steps, db.FromBodies(bodies)); err != nil {
				log.Error().Msgf("storing snapshot at step %d: %v", stats.Steps, err)
			}
		}
		if r.broadcaster != nil {
			if err := r.broadcaster.Broadcast(toFrame(stats.Steps, bodies)); err != nil {
				log.Error().Msgf("broadcasting step %d: %v", stats.Steps, err)
			}
		}
	}
	stats.TotalTime = time.Since(startTime)

	if r.storage != nil {
		if err := r.storage.FinishRun(ctx, runID, stats.Steps); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func toFrame(step int, bodies []*physics.Body) live.Frame {
	frame := live.Frame{Step: step, Bodies: make([]live.FrameBody, 0, len(bodies))}
	for _, body := range bodies {
		frame.Bodies = append(frame.Bodies, live.FrameBody{X: body.Pos.X(), Y: body.Pos.Y(), Mass: body.Mass})
	}
	return frame
}
