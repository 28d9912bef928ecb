// Package game holds the play session: paddles, the ball world and the
// per-frame input, pacing, simulation and drawing phases.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/multipong/clock"
	"github.com/pthm-cable/multipong/components"
	"github.com/pthm-cable/multipong/config"
	"github.com/pthm-cable/multipong/input"
	"github.com/pthm-cable/multipong/renderer"
	"github.com/pthm-cable/multipong/systems"
	"github.com/pthm-cable/multipong/telemetry"
	"github.com/pthm-cable/multipong/ui"
)

// Options configures a new game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	HUD            bool         // raygui status bar, windowed frontend only
	Clock          clock.Source // nil = system clock
}

// Controls is the per-frame input surface of the window.
type Controls interface {
	input.KeyState
	IsKeyPressed(key int32) bool
	PollEvents() []input.Event
}

// Presenter draws filled rectangles and swaps frames.
type Presenter interface {
	Clear(c renderer.Color)
	FillRect(r renderer.Rect, c renderer.Color)
	Present()
}

// Game holds the complete session state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	ballMapper *ecs.Map3[components.Position, components.Velocity, components.Ball]
	ballFilter *ecs.Filter3[components.Position, components.Velocity, components.Ball]

	arena       systems.Arena
	left, right components.Paddle

	// State
	running   bool
	tick      int32
	nextID    uint32
	ballCount int
	lostCount int

	clock    *clock.Clock
	bindings input.Bindings
	hudKey   int32
	hud      *ui.HUD

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
}

// NewGameWithOptions creates a new session. config.Init must have been called.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	world := ecs.NewWorld()
	g := &Game{
		world:      world,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		ballMapper: ecs.NewMap3[components.Position, components.Velocity, components.Ball](world),
		ballFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Ball](world),
		arena:      systems.ArenaFromConfig(cfg),
		running:    true,
		bindings:   cfg.Derived.Bindings,
		hudKey:     cfg.Derived.ToggleHUDKey,
		logStats:   opts.LogStats,
	}

	src := opts.Clock
	if src == nil {
		src = clock.System()
	}
	g.clock = clock.New(src,
		time.Duration(cfg.Clock.MinFrameMS)*time.Millisecond,
		float32(cfg.Clock.MaxDelta),
		time.Duration(cfg.Clock.SpinMS)*time.Millisecond,
	)

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow, float32(cfg.Clock.MaxDelta))
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	if opts.HUD && !opts.Headless {
		g.hud = ui.NewHUD()
	}

	g.spawnPaddles()
	g.spawnInitialBalls()

	slog.Debug("game created",
		"seed", opts.Seed,
		"balls", g.ballCount,
		"headless", opts.Headless,
		"output_dir", om.Dir(),
	)
	return g, nil
}

// config returns the global configuration.
func (g *Game) config() *config.Config {
	return config.Cfg()
}

// Running reports whether the session is still in play.
func (g *Game) Running() bool {
	return g.running
}

// Tick returns the number of simulated frames.
func (g *Game) Tick() int32 {
	return g.tick
}

// BallCount returns the number of balls still in play.
func (g *Game) BallCount() int {
	return g.ballCount
}

// Paddles returns copies of the left and right paddles.
func (g *Game) Paddles() (left, right components.Paddle) {
	return g.left, g.right
}

// BallState is a read-only view of one ball.
type BallState struct {
	ID       uint32
	Position components.Position
	Velocity components.Velocity
}

// Balls returns a snapshot of the balls in play.
func (g *Game) Balls() []BallState {
	balls := make([]BallState, 0, g.ballCount)
	query := g.ballFilter.Query()
	for query.Next() {
		pos, vel, ball := query.Get()
		balls = append(balls, BallState{ID: ball.ID, Position: *pos, Velocity: *vel})
	}
	return balls
}

// Unload flushes telemetry and releases output files.
func (g *Game) Unload() {
	g.flushFinal()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}
