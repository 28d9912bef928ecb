// Package renderer is the raylib-backed window, keyboard and rectangle drawing
// surface the game presents through.
package renderer

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/multipong/input"
)

// ErrWindowInit is returned when raylib cannot create the window or its GL context.
var ErrWindowInit = errors.New("renderer: window initialization failed")

// Rect is an integer screen rectangle.
type Rect struct {
	X, Y, W, H int32
}

// Color is an RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Common colours.
var (
	Blue  = Color{R: 0, G: 0, B: 255, A: 255}
	White = Color{R: 255, G: 255, B: 255, A: 255}
)

func (c Color) toRL() rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// Window owns the raylib window and its renderer.
// Only one Window may be open at a time; raylib keeps global state.
type Window struct {
	drawing bool
	closed  bool
}

// Open creates the window at (x, y) with the given size.
// Must be called from the main OS thread.
func Open(title string, x, y, width, height int) (*Window, error) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		rl.CloseWindow()
		return nil, ErrWindowInit
	}
	rl.SetWindowPosition(x, y)

	// Escape is handled by the input mapper, not raylib
	rl.SetExitKey(0)

	return &Window{}, nil
}

// SetTargetFPS caps the frame rate through raylib. Zero leaves it uncapped.
func (w *Window) SetTargetFPS(fps int) {
	rl.SetTargetFPS(int32(fps))
}

// PollEvents drains window events since the previous call.
func (w *Window) PollEvents() []input.Event {
	if rl.WindowShouldClose() {
		return []input.Event{{Type: input.EventQuit}}
	}
	return nil
}

// IsKeyDown reports whether key is held this frame.
func (w *Window) IsKeyDown(key int32) bool {
	return rl.IsKeyDown(key)
}

// IsKeyPressed reports whether key went down this frame.
func (w *Window) IsKeyPressed(key int32) bool {
	return rl.IsKeyPressed(key)
}

// FPS returns raylib's measured frame rate.
func (w *Window) FPS() int32 {
	return rl.GetFPS()
}

func (w *Window) begin() {
	if !w.drawing {
		rl.BeginDrawing()
		w.drawing = true
	}
}

// Clear fills the back buffer with c.
func (w *Window) Clear(c Color) {
	w.begin()
	rl.ClearBackground(c.toRL())
}

// FillRect draws a filled rectangle into the back buffer.
func (w *Window) FillRect(r Rect, c Color) {
	w.begin()
	rl.DrawRectangle(r.X, r.Y, r.W, r.H, c.toRL())
}

// Present swaps the back buffer to the screen.
func (w *Window) Present() {
	w.begin()
	rl.EndDrawing()
	w.drawing = false
}

// Close destroys the renderer and window. Safe to call more than once.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	rl.CloseWindow()
}
