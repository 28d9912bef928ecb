package game

import (
	"github.com/pthm-cable/multipong/renderer"
	"github.com/pthm-cable/multipong/telemetry"
	"github.com/pthm-cable/multipong/ui"
)

// Draw renders walls, paddles and balls, then presents the frame.
// It only reads session state.
func (g *Game) Draw(p Presenter) {
	g.perfCollector.Mark(telemetry.PhaseRender)

	cfg := g.config()
	fieldW := int32(cfg.Derived.FieldW32)
	fieldH := int32(cfg.Derived.FieldH32)
	wall := int32(cfg.Derived.Wall32)
	paddleH := g.arena.PaddleH

	p.Clear(renderer.Blue)

	// Walls
	p.FillRect(renderer.Rect{X: 0, Y: 0, W: fieldW, H: wall}, renderer.White)
	p.FillRect(renderer.Rect{X: 0, Y: fieldH - wall, W: fieldW, H: wall}, renderer.White)

	// Paddles
	for _, pad := range [...]struct{ x, y float32 }{
		{g.left.Position.X, g.left.Position.Y},
		{g.right.Position.X, g.right.Position.Y},
	} {
		p.FillRect(renderer.Rect{
			X: int32(pad.x),
			Y: int32(pad.y - paddleH/2),
			W: wall,
			H: int32(paddleH),
		}, renderer.White)
	}

	// Balls
	query := g.ballFilter.Query()
	for query.Next() {
		pos, _, ball := query.Get()
		if ball.Out {
			continue
		}
		p.FillRect(renderer.Rect{
			X: int32(pos.X) - wall/2,
			Y: int32(pos.Y) - wall/2,
			W: wall,
			H: wall,
		}, renderer.White)
	}

	if g.hud != nil {
		var fps int32
		if f, ok := p.(interface{ FPS() int32 }); ok {
			fps = f.FPS()
		}
		g.hud.Draw(ui.HUDData{
			Tick:         g.tick,
			Balls:        g.ballCount,
			FPS:          fps,
			LeftDir:      g.left.Direction,
			RightDir:     g.right.Direction,
			ScreenWidth:  int32(cfg.Screen.Width),
			ScreenHeight: int32(cfg.Screen.Height),
		})
	}

	p.Present()

	g.perfCollector.EndFrame()
}
