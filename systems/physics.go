package systems

import "github.com/pthm-cable/multipong/components"

// Hit describes what a ball struck horizontally during a step.
type Hit uint8

const (
	HitNone Hit = iota
	HitLeft
	HitRight
	Escaped
)

// WallHit describes a vertical wall bounce during a step.
type WallHit uint8

const (
	WallNone WallHit = iota
	WallTop
	WallBottom
)

// Outcome reports the collisions resolved for one ball in one step.
type Outcome struct {
	Hit  Hit
	Wall WallHit
}

// MovePaddle advances a paddle along its direction and keeps it inside the walls.
// Idle paddles are left untouched.
func MovePaddle(p *components.Paddle, a Arena, dt float32) {
	if p.Direction == 0 {
		return
	}
	p.Position.Y += float32(p.Direction) * a.PaddleSpeed * dt
	p.Position.Y = clampFloat(p.Position.Y, a.PaddleMinY(), a.PaddleMaxY())
}

// StepBall integrates one ball and resolves paddle, escape and wall collisions.
// Paddle checks are exclusive in the order left, right, escape; the wall
// check always runs.
func StepBall(pos *components.Position, vel *components.Velocity, ball *components.Ball,
	left, right components.Position, a Arena, dt float32) Outcome {

	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	var out Outcome
	halfH := a.PaddleH / 2
	leftDiff := absFloat(left.Y - pos.Y)
	rightDiff := absFloat(right.Y - pos.Y)

	switch {
	case leftDiff <= halfH &&
		pos.X >= a.LeftFaceMin && pos.X <= a.LeftFaceMax &&
		vel.X < 0:
		vel.X *= -1
		out.Hit = HitLeft
	case rightDiff <= halfH &&
		pos.X >= a.RightFaceMin && pos.X <= a.RightFaceMax &&
		vel.X > 0:
		vel.X *= -1
		out.Hit = HitRight
	case pos.X <= 0 || pos.X >= a.FieldW:
		ball.Out = true
		out.Hit = Escaped
	}

	if pos.Y <= a.Wall && vel.Y < 0 {
		vel.Y *= -1
		out.Wall = WallTop
	} else if pos.Y >= a.FieldH-a.Wall && vel.Y > 0 {
		vel.Y *= -1
		out.Wall = WallBottom
	}

	return out
}
