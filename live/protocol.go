package live

// Frame is one broadcast tick of simulation state, encoded with msgpack.
type Frame struct {
	Step   int         `msgpack:"step"`
	Bodies []FrameBody `msgpack:"bodies"`
}

// FrameBody is the wire form of a single body. Velocity is omitted, viewers
// only draw positions.
type FrameBody struct {
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
	Mass float64 `msgpack:"mass"`
}
