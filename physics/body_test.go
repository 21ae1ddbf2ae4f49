package physics

import (
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
)

func TestSpawnOrbit(t *testing.T) {
	assert := assert.New(t)
	bodies := SpawnOrbit(4, 100, 10, 1e9, 1)
	assert.Len(bodies, 5)
	assert.Equal(vector.Vector{0, 0}, bodies[0].Pos)
	assert.Equal(1e9, bodies[0].Mass)
	for _, orbiter := range bodies[1:] {
		assert.InDelta(100, orbiter.Pos.Magnitude(), 1e-9)
		assert.InDelta(10, orbiter.Vel.Magnitude(), 1e-9)
		assert.Equal(1.0, orbiter.Mass)
	}
}

func TestFromDegrees(t *testing.T) {
	assert := assert.New(t)
	assert.InDelta(1, fromDegrees(0).X(), 1e-9)
	assert.InDelta(0, fromDegrees(0).Y(), 1e-9)
	assert.InDelta(0, fromDegrees(90).X(), 1e-9)
	assert.InDelta(1, fromDegrees(90).Y(), 1e-9)
}
