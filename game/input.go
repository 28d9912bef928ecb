package game

import (
	"log/slog"

	"github.com/pthm-cable/multipong/input"
)

// handleInput processes window events and keyboard state.
// Returns false when the session was asked to quit.
func (g *Game) handleInput(ctrl Controls) bool {
	events := ctrl.PollEvents()
	if input.QuitRequested(events, ctrl, g.bindings) {
		g.running = false
		slog.Info("quit requested", "tick", g.tick, "balls", g.ballCount)
		return false
	}

	if g.hud != nil && ctrl.IsKeyPressed(g.hudKey) {
		g.hud.Toggle()
	}

	g.left.Direction, g.right.Direction = input.Directions(ctrl, g.bindings)
	return true
}
