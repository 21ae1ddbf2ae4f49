package db

import "github.com/halbor/gravity-sim/physics"

// FromBodies flattens simulation bodies into their persisted form.
func FromBodies(bodies []*physics.Body) BodyStates {
	states := make(BodyStates, 0, len(bodies))
	for _, body := range bodies {
		states = append(states, BodyState{
			X:    body.Pos.X(),
			Y:    body.Pos.Y(),
			VX:   body.Vel.X(),
			VY:   body.Vel.Y(),
			Mass: body.Mass,
		})
	}
	return states
}
