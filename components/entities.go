package components

// Side identifies which end of the field a paddle guards.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Paddle is one player's paddle. Position.Y is the paddle centre.
type Paddle struct {
	Side      Side
	Position  Position
	Direction int8 // -1 up, 0 idle, +1 down
}

// Ball holds per-ball state stored alongside Position and Velocity.
type Ball struct {
	ID  uint32
	Out bool // Left the field this frame; purged before drawing
}
