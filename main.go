package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/pthm-cable/multipong/config"
	"github.com/pthm-cable/multipong/game"
	"github.com/pthm-cable/multipong/renderer"
	"github.com/pthm-cable/multipong/terminal"
)

// frontend is a window or terminal the game reads input from and draws to.
type frontend interface {
	game.Controls
	game.Presenter
	Close()
}

func init() {
	// Window and input calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window using the fixed headless dt")
	tty := flag.Bool("tty", false, "Play in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		HUD:            !*tty,
	}

	if *headless {
		os.Exit(runHeadless(opts, *maxTicks))
	}
	os.Exit(runInteractive(opts, *tty, *maxTicks))
}

// openFrontend opens the terminal or the raylib window.
func openFrontend(tty bool) (frontend, error) {
	cfg := config.Cfg()
	if tty {
		screen, err := terminal.Open(cfg.Derived.FieldW32, cfg.Derived.FieldH32,
			time.Duration(cfg.Terminal.KeyHoldMS)*time.Millisecond)
		if err != nil {
			return nil, err
		}
		// slog would scribble over the terminal grid
		slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
		return screen, nil
	}

	win, err := renderer.Open(cfg.Screen.Title, cfg.Screen.X, cfg.Screen.Y, cfg.Screen.Width, cfg.Screen.Height)
	if err != nil {
		return nil, err
	}
	win.SetTargetFPS(cfg.Screen.TargetFPS)
	slog.Info("window opened", "title", cfg.Screen.Title, "width", cfg.Screen.Width, "height", cfg.Screen.Height)
	return win, nil
}

// runInteractive plays a paced session in a window or terminal.
// Returns the process exit code.
func runInteractive(opts game.Options, tty bool, maxTicks int) int {
	front, err := openFrontend(tty)
	if err != nil {
		slog.Error("failed to open frontend", "tty", tty, "error", err)
		return 1
	}
	defer front.Close()

	return play(front, opts, maxTicks)
}

// play runs the game loop on an open frontend until the game ends.
func play(front frontend, opts game.Options, maxTicks int) int {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting game", "seed", opts.Seed, "balls", g.BallCount())

	// Don't count setup time against the first frame
	g.ResetClock()

	for g.Running() {
		g.Update(front)
		g.Draw(front)

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	return 0
}

// runHeadless steps the simulation without a window until the game ends.
func runHeadless(opts game.Options, maxTicks int) int {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"balls", g.BallCount(),
		"max_ticks", maxTicks,
	)

	for g.Running() {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	return 0
}
