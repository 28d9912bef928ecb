package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/multipong/components"
	"github.com/pthm-cable/multipong/config"
	"github.com/pthm-cable/multipong/input"
	"github.com/pthm-cable/multipong/renderer"
	"github.com/pthm-cable/multipong/telemetry"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

// fakeSource advances a millisecond per read.
type fakeSource struct {
	t time.Duration
}

func (f *fakeSource) Now() time.Duration {
	f.t += time.Millisecond
	return f.t
}

func (f *fakeSource) Sleep(d time.Duration) { f.t += d }

// fakeControls replays fixed events and held keys.
type fakeControls struct {
	events []input.Event
	held   map[int32]bool
}

func (f *fakeControls) PollEvents() []input.Event {
	ev := f.events
	f.events = nil
	return ev
}

func (f *fakeControls) IsKeyDown(key int32) bool    { return f.held[key] }
func (f *fakeControls) IsKeyPressed(key int32) bool { return false }

// recorder captures draw calls.
type recorder struct {
	clears   []renderer.Color
	rects    []renderer.Rect
	presents int
}

func (r *recorder) Clear(c renderer.Color)                        { r.clears = append(r.clears, c) }
func (r *recorder) FillRect(rect renderer.Rect, _ renderer.Color) { r.rects = append(r.rects, rect) }
func (r *recorder) Present()                                      { r.presents++ }

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := NewGameWithOptions(Options{
		Seed:     seed,
		Headless: true,
		Clock:    &fakeSource{},
	})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

// clearBalls removes the spawned balls so tests can place their own.
func clearBalls(g *Game) {
	var all []ecs.Entity
	query := g.ballFilter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		g.ballMapper.Remove(e)
	}
	g.ballCount = 0
}

func TestNewGameSpawnsBalls(t *testing.T) {
	g := newTestGame(t, 42)
	cfg := config.Cfg()

	if !g.Running() {
		t.Fatal("new game should be running")
	}
	if g.BallCount() != cfg.Ball.Count {
		t.Fatalf("BallCount() = %d, want %d", g.BallCount(), cfg.Ball.Count)
	}

	j := float32(cfg.Ball.Jitter)
	cx, cy := cfg.Derived.FieldW32/2, cfg.Derived.FieldH32/2
	seen := map[uint32]bool{}
	for _, b := range g.Balls() {
		if seen[b.ID] {
			t.Errorf("duplicate ball id %d", b.ID)
		}
		seen[b.ID] = true

		if b.Position.X < cx-j || b.Position.X > cx+j || b.Position.Y < cy-j || b.Position.Y > cy+j {
			t.Errorf("ball %d spawned at %+v, outside centre jitter", b.ID, b.Position)
		}
		vx, vy := float32(cfg.Ball.BaseVelX), float32(cfg.Ball.BaseVelY)
		if b.Velocity.X < vx-j || b.Velocity.X > vx+j || b.Velocity.Y < vy-j || b.Velocity.Y > vy+j {
			t.Errorf("ball %d velocity %+v outside jitter range", b.ID, b.Velocity)
		}
	}

	left, right := g.Paddles()
	if left.Position.Y != cy || right.Position.Y != cy {
		t.Errorf("paddles at y=(%v, %v), want %v", left.Position.Y, right.Position.Y, cy)
	}
	if left.Position.X != cfg.Derived.LeftPaddleX || right.Position.X != cfg.Derived.RightPaddleX {
		t.Errorf("paddles at x=(%v, %v)", left.Position.X, right.Position.X)
	}
}

func TestStepEndsGameOnLastBall(t *testing.T) {
	tests := []struct {
		name        string
		balls       []components.Position
		velX        float32
		wantBalls   int
		wantRunning bool
	}{
		{
			name:        "single ball escapes left",
			balls:       []components.Position{{X: 1, Y: 200}},
			velX:        -200,
			wantBalls:   0,
			wantRunning: false,
		},
		{
			name: "all balls escape in one frame",
			balls: []components.Position{
				{X: 1, Y: 100}, {X: 1, Y: 200}, {X: 1, Y: 300}, {X: 1, Y: 500}, {X: 1, Y: 600},
			},
			velX:        -200,
			wantBalls:   0,
			wantRunning: false,
		},
		{
			name:        "one of two escapes",
			balls:       []components.Position{{X: 1, Y: 200}, {X: 500, Y: 300}},
			velX:        -200,
			wantBalls:   1,
			wantRunning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, 1)
			clearBalls(g)
			for _, p := range tt.balls {
				g.spawnBall(p, components.Velocity{X: tt.velX, Y: 0})
			}

			g.Step(0.016)

			if g.BallCount() != tt.wantBalls {
				t.Errorf("BallCount() = %d, want %d", g.BallCount(), tt.wantBalls)
			}
			if len(g.Balls()) != tt.wantBalls {
				t.Errorf("len(Balls()) = %d, want %d", len(g.Balls()), tt.wantBalls)
			}
			if g.Running() != tt.wantRunning {
				t.Errorf("Running() = %v, want %v", g.Running(), tt.wantRunning)
			}
			if g.Tick() != 1 {
				t.Errorf("Tick() = %d, want 1", g.Tick())
			}
		})
	}
}

func TestStepAfterGameOverIsNoOp(t *testing.T) {
	g := newTestGame(t, 1)
	clearBalls(g)
	g.spawnBall(components.Position{X: 1, Y: 200}, components.Velocity{X: -200})
	g.Step(0.016)
	if g.Running() {
		t.Fatal("expected game over")
	}

	g.Step(0.016)
	g.UpdateHeadless()
	if g.Tick() != 1 {
		t.Errorf("Tick() = %d after game over, want 1", g.Tick())
	}
}

func TestPaddleReturnsBall(t *testing.T) {
	g := newTestGame(t, 1)
	clearBalls(g)
	left, _ := g.Paddles()
	g.spawnBall(components.Position{X: 24, Y: left.Position.Y}, components.Velocity{X: -50, Y: 0})

	g.Step(0.016)

	balls := g.Balls()
	if len(balls) != 1 {
		t.Fatalf("len(Balls()) = %d, want 1", len(balls))
	}
	if balls[0].Velocity.X != 50 {
		t.Errorf("vx = %v, want 50 after left paddle hit", balls[0].Velocity.X)
	}
}

func TestUpdateQuitStopsBeforeStep(t *testing.T) {
	g := newTestGame(t, 1)
	before := g.Balls()

	g.Update(&fakeControls{events: []input.Event{{Type: input.EventQuit}}})

	if g.Running() {
		t.Error("quit event should stop the game")
	}
	if g.Tick() != 0 {
		t.Errorf("Tick() = %d, want 0", g.Tick())
	}
	after := g.Balls()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("ball %d moved after quit: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestUpdateQuitKey(t *testing.T) {
	g := newTestGame(t, 1)
	quit := config.Cfg().Derived.Bindings.Quit

	g.Update(&fakeControls{held: map[int32]bool{quit: true}})

	if g.Running() {
		t.Error("quit key should stop the game")
	}
}

func TestUpdateMovesPaddles(t *testing.T) {
	g := newTestGame(t, 1)
	b := config.Cfg().Derived.Bindings
	ctrl := &fakeControls{held: map[int32]bool{b.LeftUp: true, b.RightDown: true}}

	startL, startR := g.Paddles()
	g.Update(ctrl)
	left, right := g.Paddles()

	if left.Direction != -1 || right.Direction != 1 {
		t.Errorf("directions = (%d, %d), want (-1, 1)", left.Direction, right.Direction)
	}
	if left.Position.Y >= startL.Position.Y {
		t.Errorf("left paddle did not move up: %v -> %v", startL.Position.Y, left.Position.Y)
	}
	if right.Position.Y <= startR.Position.Y {
		t.Errorf("right paddle did not move down: %v -> %v", startR.Position.Y, right.Position.Y)
	}
	if g.Tick() != 1 {
		t.Errorf("Tick() = %d, want 1", g.Tick())
	}
}

func TestHeadlessDeterminism(t *testing.T) {
	run := func(seed int64) []BallState {
		g := newTestGame(t, seed)
		for i := 0; i < 300 && g.Running(); i++ {
			g.UpdateHeadless()
		}
		return g.Balls()
	}

	a, b := run(7), run(7)
	if len(a) != len(b) {
		t.Fatalf("ball counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("ball %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := newTestGame(t, 1).Balls()
	b := newTestGame(t, 2).Balls()
	if a[0] == b[0] {
		t.Error("different seeds produced identical first ball")
	}
}

func TestDrawSkipsOutBalls(t *testing.T) {
	g := newTestGame(t, 1)
	clearBalls(g)
	g.spawnBall(components.Position{X: 500, Y: 300}, components.Velocity{})
	g.spawnBall(components.Position{X: 600, Y: 400}, components.Velocity{})
	out := g.spawnBall(components.Position{X: -5, Y: 400}, components.Velocity{})
	_, _, ball := g.ballMapper.Get(out)
	ball.Out = true

	rec := &recorder{}
	g.Draw(rec)

	if len(rec.clears) != 1 || rec.clears[0] != renderer.Blue {
		t.Errorf("clears = %v, want one blue clear", rec.clears)
	}
	// 2 walls + 2 paddles + 2 live balls
	if len(rec.rects) != 6 {
		t.Errorf("drew %d rects, want 6", len(rec.rects))
	}
	if rec.presents != 1 {
		t.Errorf("presents = %d, want 1", rec.presents)
	}

	wall := int32(config.Cfg().Derived.Wall32)
	ballRect := rec.rects[4]
	if ballRect.W != wall || ballRect.H != wall {
		t.Errorf("ball rect %+v, want %dx%d", ballRect, wall, wall)
	}
}

func TestDrawPaddleRect(t *testing.T) {
	g := newTestGame(t, 1)
	rec := &recorder{}
	g.Draw(rec)

	cfg := config.Cfg()
	left := rec.rects[2]
	want := renderer.Rect{
		X: int32(cfg.Derived.LeftPaddleX),
		Y: int32(cfg.Derived.FieldH32/2 - cfg.Derived.PaddleH32/2),
		W: int32(cfg.Derived.Wall32),
		H: int32(cfg.Derived.PaddleH32),
	}
	if left != want {
		t.Errorf("left paddle rect = %+v, want %+v", left, want)
	}
}

func TestUnloadWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGameWithOptions(Options{Seed: 3, Headless: true, OutputDir: dir})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("telemetry.csv has %d lines, want header + 1 row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("unexpected header %q", lines[0])
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestPerfFrameSpansUpdateAndDraw(t *testing.T) {
	g := newTestGame(t, 1)

	// Draw without Update is not a timed frame
	g.Draw(&recorder{})
	if n := g.perfCollector.Stats().Frames; n != 0 {
		t.Fatalf("Frames = %d after bare Draw, want 0", n)
	}

	g.Update(&fakeControls{})
	g.Draw(&recorder{})

	s := g.perfCollector.Stats()
	if s.Frames != 1 {
		t.Fatalf("Frames = %d, want 1", s.Frames)
	}
	if s.AvgFrame < s.Phase[telemetry.PhaseRender] {
		t.Errorf("render phase %v exceeds frame %v", s.Phase[telemetry.PhaseRender], s.AvgFrame)
	}
}

func TestPaddleSides(t *testing.T) {
	g := newTestGame(t, 1)
	left, right := g.Paddles()
	if left.Side != components.SideLeft || right.Side != components.SideRight {
		t.Errorf("sides = (%v, %v), want (left, right)", left.Side, right.Side)
	}
	if left.Side.String() != "left" || right.Side.String() != "right" {
		t.Errorf("side names = (%s, %s)", left.Side, right.Side)
	}
}
