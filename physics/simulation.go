// Package physics advances a set of point masses under newtonian gravity,
// using the quadtree package to approximate the force sum per body.
package physics

import (
	"math"
	"time"

	"github.com/quartercastle/vector"
	"golang.org/x/exp/constraints"

	"github.com/halbor/gravity-sim/quadtree"
)

type SimulationConfig struct {
	// G is the gravitational constant of the inverse-square law. It is plain
	// configuration, nothing in the spatial index depends on it.
	G float64
	// Theta is the Barnes-Hut accuracy threshold and is taken as-is: 0 means
	// exact pairwise summation, larger values trade accuracy for speed.
	Theta float64
	// FrameTime is the simulated time passing per Step.
	FrameTime float64
	// MinDistance clamps the distance used in the force law, keeping
	// accelerations finite for near-coincident bodies.
	MinDistance float64
	// HalfSize is half the side length of the square handed to the spatial
	// index each step. Undersized bounds still work, at the cost of tree
	// restructuring on insert.
	HalfSize float64
}

var DefaultSimulationConfig = SimulationConfig{
	G:           1e-4,
	Theta:       0.75,
	FrameTime:   0.016,
	MinDistance: 1e-2,
	HalfSize:    1000,
}

// Simulation holds the parameters of one n-body run. Bodies are owned by the
// caller and mutated in place by Step.
type Simulation struct {
	conf SimulationConfig
}

func NewSimulation(conf SimulationConfig) *Simulation {
	s := &Simulation{}
	s.ApplyConfig(conf)
	return s
}

func (s *Simulation) ApplyConfig(conf SimulationConfig) {
	if conf.G == 0.0 {
		conf.G = DefaultSimulationConfig.G
	}
	if conf.FrameTime == 0.0 {
		conf.FrameTime = DefaultSimulationConfig.FrameTime
	}
	if conf.MinDistance == 0.0 {
		conf.MinDistance = DefaultSimulationConfig.MinDistance
	}
	if conf.HalfSize == 0.0 {
		conf.HalfSize = DefaultSimulationConfig.HalfSize
	}
	s.conf = conf
}

func (s *Simulation) Config() SimulationConfig {
	return s.conf
}

// Stats describes one finished run.
type Stats struct {
	Steps     int
	TotalTime time.Duration
}

// Step advances all bodies by one frame: positions move with the previous
// velocities, then a fresh tree is built over the new positions and every
// body's velocity is updated from its approximate gravitational
// acceleration. The tree is rebuilt from scratch on every call.
func (s *Simulation) Step(bodies []*Body) error {
	for _, body := range bodies {
		if len(body.Vel) == 0 {
			body.Vel = vector.Vector{0, 0}
		}
		vector.In(body.Pos).Add(body.Vel.Scale(s.conf.FrameTime))
	}

	tree, err := quadtree.New(vector.Vector{0, 0}, s.conf.HalfSize)
	if err != nil {
		return err
	}
	leafs := make([]int, len(bodies))
	for i, body := range bodies {
		leafs[i] = tree.Insert(body.Pos, body.Mass)
	}

	for i, body := range bodies {
		acc, err := s.acceleration(tree, body.Pos, leafs[i])
		if err != nil {
			return err
		}
		vector.In(body.Vel).Add(acc.Scale(s.conf.FrameTime))
	}
	return nil
}

// acceleration sums the inverse-square contributions of all bodies collected
// for pos. The body's own leaf is excluded by its arena index, never by
// comparing positions.
func (s *Simulation) acceleration(tree *quadtree.QuadTree, pos vector.Vector, self int) (vector.Vector, error) {
	others, err := tree.CollectBodies(pos, s.conf.Theta)
	if err != nil {
		return nil, err
	}
	acc := vector.Vector{0, 0}
	for _, other := range others {
		if other.Index == self || other.Mass == 0 {
			continue
		}
		delta := other.CenterOfMass.Sub(pos)
		if delta.Magnitude() == 0 {
			continue
		}
		dist := clamp(delta.Magnitude(), s.conf.MinDistance, math.Inf(+1))
		vector.In(acc).Add(delta.Unit().Scale(s.conf.G * other.Mass / (dist * dist)))
	}
	return acc, nil
}

func clamp[T constraints.Ordered](in, lo, hi T) T {
	if in > hi {
		return hi
	}
	if in < lo {
		return lo
	}
	return in
}
