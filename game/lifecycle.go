package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
)

// cleanupOut removes balls that left the field and ends the session when none remain.
func (g *Game) cleanupOut() {
	// First pass: collect out balls (must complete before modifying)
	var toRemove []ecs.Entity

	query := g.ballFilter.Query()
	for query.Next() {
		_, _, ball := query.Get()
		if ball.Out {
			toRemove = append(toRemove, query.Entity())
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, entity := range toRemove {
		g.ballMapper.Remove(entity)
		g.ballCount--
		g.lostCount++
	}

	if len(toRemove) > 0 {
		slog.Debug("balls lost", "tick", g.tick, "lost", len(toRemove), "remaining", g.ballCount)
	}

	if g.ballCount == 0 && g.running {
		g.running = false
		slog.Info("game over", "tick", g.tick, "balls_lost", g.lostCount)
	}
}
