package physics

import (
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
)

func TestNewSimulation_AppliesDefaults(t *testing.T) {
	assert := assert.New(t)
	sim := NewSimulation(SimulationConfig{})
	assert.Equal(DefaultSimulationConfig.G, sim.Config().G)
	assert.Equal(DefaultSimulationConfig.FrameTime, sim.Config().FrameTime)
	assert.Equal(DefaultSimulationConfig.MinDistance, sim.Config().MinDistance)
	assert.Equal(DefaultSimulationConfig.HalfSize, sim.Config().HalfSize)
	assert.Equal(0.0, sim.Config().Theta, "zero theta is a valid exact mode, not a missing value")
}

func TestSimulation_Step_MovesBodiesByVelocity(t *testing.T) {
	assert := assert.New(t)
	sim := NewSimulation(SimulationConfig{G: 1e-15, FrameTime: 0.5})
	bodies := []*Body{
		{Pos: vector.Vector{0, 0}, Vel: vector.Vector{1, 0}, Mass: 1},
		{Pos: vector.Vector{100, 100}, Vel: vector.Vector{0, 0}, Mass: 1},
	}
	assert.NoError(sim.Step(bodies))
	assert.InDelta(0.5, bodies[0].Pos.X(), 1e-9)
	assert.InDelta(0.0, bodies[0].Pos.Y(), 1e-9)
}

func TestSimulation_Step_InverseSquareAcceleration(t *testing.T) {
	assert := assert.New(t)
	sim := NewSimulation(SimulationConfig{G: 1e-4, FrameTime: 1, MinDistance: 1e-3})
	central := &Body{Pos: vector.Vector{0, 0}, Vel: vector.Vector{0, 0}, Mass: 1000}
	probe := &Body{Pos: vector.Vector{10, 0}, Vel: vector.Vector{0, 0}, Mass: 1}
	assert.NoError(sim.Step([]*Body{central, probe}))
	// a = G*m/d^2 towards the attractor
	assert.InDelta(-1e-4*1000/100, probe.Vel.X(), 1e-12)
	assert.InDelta(0.0, probe.Vel.Y(), 1e-12)
	assert.InDelta(1e-4*1/100, central.Vel.X(), 1e-12)
}

func TestSimulation_Step_SingleBodyFeelsNoForce(t *testing.T) {
	assert := assert.New(t)
	sim := NewSimulation(SimulationConfig{})
	body := &Body{Pos: vector.Vector{3, 3}, Vel: vector.Vector{0, 0}, Mass: 5}
	assert.NoError(sim.Step([]*Body{body}))
	assert.Equal(vector.Vector{0, 0}, body.Vel, "own leaf is excluded by index")
}

func TestSimulation_Step_InitializesMissingVelocity(t *testing.T) {
	assert := assert.New(t)
	sim := NewSimulation(SimulationConfig{})
	bodies := []*Body{
		{Pos: vector.Vector{0, 0}, Mass: 1},
		{Pos: vector.Vector{5, 5}, Mass: 1},
	}
	assert.NoError(sim.Step(bodies))
	assert.Len(bodies[0].Vel, 2)
}
