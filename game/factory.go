package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/multipong/components"
)

// spawnPaddles places both paddles at mid-height.
func (g *Game) spawnPaddles() {
	cfg := g.config()
	midY := cfg.Derived.FieldH32 / 2

	g.left = components.Paddle{
		Side:     components.SideLeft,
		Position: components.Position{X: cfg.Derived.LeftPaddleX, Y: midY},
	}
	g.right = components.Paddle{
		Side:     components.SideRight,
		Position: components.Position{X: cfg.Derived.RightPaddleX, Y: midY},
	}

	for _, p := range [...]*components.Paddle{&g.left, &g.right} {
		slog.Debug("paddle placed", "side", p.Side.String(), "x", p.Position.X, "y", p.Position.Y)
	}
}

// spawnInitialBalls creates the starting balls around the field centre.
// Position and velocity are jittered uniformly; the rng is not used after this.
func (g *Game) spawnInitialBalls() {
	cfg := g.config()
	cx := cfg.Derived.FieldW32 / 2
	cy := cfg.Derived.FieldH32 / 2

	for i := 0; i < cfg.Ball.Count; i++ {
		pos := components.Position{X: cx + g.jitter(), Y: cy + g.jitter()}
		vel := components.Velocity{
			X: float32(cfg.Ball.BaseVelX) + g.jitter(),
			Y: float32(cfg.Ball.BaseVelY) + g.jitter(),
		}
		g.spawnBall(pos, vel)
	}
}

// jitter returns a uniform sample in [-jitter, +jitter).
func (g *Game) jitter() float32 {
	j := g.config().Ball.Jitter
	return float32((g.rng.Float64()*2 - 1) * j)
}

// spawnBall creates a ball entity.
func (g *Game) spawnBall(pos components.Position, vel components.Velocity) ecs.Entity {
	ball := components.Ball{ID: g.nextID}
	g.nextID++

	entity := g.ballMapper.NewEntity(&pos, &vel, &ball)
	g.ballCount++
	return entity
}
