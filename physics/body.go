package physics

import (
	"math"

	"github.com/quartercastle/vector"
)

// Body is a point mass moving under gravity.
type Body struct {
	Pos  vector.Vector `json:"pos"`
	Vel  vector.Vector `json:"vel,omitempty"`
	Mass float64       `json:"mass"`
}

// fromDegrees returns the unit vector pointing at the given angle.
func fromDegrees(degrees float64) vector.Vector {
	radians := degrees * math.Pi / 180
	return vector.Vector{math.Cos(radians), math.Sin(radians)}
}

// SpawnOrbit returns a heavy central body at the origin plus count orbiters
// evenly spread on a circle of the given radius.
func SpawnOrbit(count int, radius, speed, centralMass, orbiterMass float64) []*Body {
	bodies := []*Body{{
		Pos:  vector.Vector{0, 0},
		Vel:  vector.Vector{0, 0},
		Mass: centralMass,
	}}
	for i := 0; i < count; i++ {
		dir := fromDegrees(360 / float64(count) * float64(i))
		bodies = append(bodies, &Body{
			Pos:  dir.Scale(radius),
			Vel:  vector.Vector{-dir.X() * speed, dir.Y() * speed},
			Mass: orbiterMass,
		})
	}
	return bodies
}
