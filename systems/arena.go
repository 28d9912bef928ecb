// Package systems contains the per-frame kinematics and collision rules.
package systems

import "github.com/pthm-cable/multipong/config"

// Arena holds the field geometry the resolver tests against.
// Face bands are inclusive x ranges in which a ball can strike a paddle.
type Arena struct {
	FieldW, FieldH float32
	Wall           float32
	PaddleH        float32
	PaddleSpeed    float32

	LeftFaceMin, LeftFaceMax   float32
	RightFaceMin, RightFaceMax float32
}

// ArenaFromConfig builds an Arena from the loaded configuration.
func ArenaFromConfig(cfg *config.Config) Arena {
	return Arena{
		FieldW:       cfg.Derived.FieldW32,
		FieldH:       cfg.Derived.FieldH32,
		Wall:         cfg.Derived.Wall32,
		PaddleH:      cfg.Derived.PaddleH32,
		PaddleSpeed:  float32(cfg.Paddle.Speed),
		LeftFaceMin:  float32(cfg.Paddle.FaceMin),
		LeftFaceMax:  float32(cfg.Paddle.FaceMax),
		RightFaceMin: cfg.Derived.RightFaceMin,
		RightFaceMax: cfg.Derived.RightFaceMax,
	}
}

// PaddleMinY is the smallest allowed paddle centre.
func (a Arena) PaddleMinY() float32 {
	return a.PaddleH/2 + a.Wall
}

// PaddleMaxY is the largest allowed paddle centre.
func (a Arena) PaddleMaxY() float32 {
	return a.FieldH - a.PaddleH/2 - a.Wall
}
