package game

import (
	"github.com/pthm-cable/multipong/systems"
	"github.com/pthm-cable/multipong/telemetry"
)

// Update runs one paced frame: input, clock wait, then the simulation step.
func (g *Game) Update(ctrl Controls) {
	if !g.running {
		return
	}
	g.perfCollector.BeginFrame()

	g.perfCollector.Mark(telemetry.PhaseInput)
	if !g.handleInput(ctrl) {
		return
	}

	g.perfCollector.Mark(telemetry.PhaseClock)
	dt := g.clock.Tick()

	g.Step(dt)
}

// UpdateHeadless runs one unpaced frame with the fixed headless dt and no input.
func (g *Game) UpdateHeadless() {
	if !g.running {
		return
	}
	g.perfCollector.BeginFrame()
	g.Step(g.config().Derived.HeadlessDT32)
	g.perfCollector.EndFrame()
}

// ResetClock discards time spent before the first frame.
func (g *Game) ResetClock() {
	g.clock.Reset()
}

// Step advances the session by dt seconds using the current paddle directions.
func (g *Game) Step(dt float32) {
	if !g.running {
		return
	}

	// 1. Paddles
	g.perfCollector.Mark(telemetry.PhasePaddles)
	systems.MovePaddle(&g.left, g.arena, dt)
	systems.MovePaddle(&g.right, g.arena, dt)

	// 2. Balls
	g.perfCollector.Mark(telemetry.PhaseBalls)
	g.updateBalls(dt)

	// 3. Compaction and end-of-game check
	g.perfCollector.Mark(telemetry.PhaseCompaction)
	g.cleanupOut()

	g.collector.RecordFrame(dt)
	g.tick++

	g.perfCollector.Mark(telemetry.PhaseTelemetry)
	g.flushTelemetry()
}

// updateBalls integrates every ball and resolves its collisions.
func (g *Game) updateBalls(dt float32) {
	left, right := g.left.Position, g.right.Position

	query := g.ballFilter.Query()
	for query.Next() {
		pos, vel, ball := query.Get()
		outcome := systems.StepBall(pos, vel, ball, left, right, g.arena, dt)
		g.collector.RecordOutcome(outcome)
	}
}
