// Package ui draws the debug overlay on top of the playfield.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const statusBarHeight = 24

// HUDData holds all the data needed to render the debug HUD.
type HUDData struct {
	Tick         int32
	Balls        int
	FPS          int32
	LeftDir      int8
	RightDir     int8
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders a raygui status bar along the bottom of the window.
type HUD struct {
	visible bool
}

// NewHUD creates a hidden HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Toggle flips HUD visibility.
func (h *HUD) Toggle() {
	h.visible = !h.visible
}

// Visible reports whether the HUD is drawn.
func (h *HUD) Visible() bool {
	return h.visible
}

// Draw renders the HUD. Must be called between frame begin and present.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}
	bounds := rl.Rectangle{
		X:      0,
		Y:      float32(data.ScreenHeight - statusBarHeight),
		Width:  float32(data.ScreenWidth),
		Height: statusBarHeight,
	}
	gui.StatusBar(bounds, StatusText(data))
}

// StatusText formats the status bar line.
func StatusText(data HUDData) string {
	return fmt.Sprintf("Tick: %d | Balls: %d | FPS: %d | Left: %s | Right: %s",
		data.Tick, data.Balls, data.FPS, dirLabel(data.LeftDir), dirLabel(data.RightDir))
}

func dirLabel(dir int8) string {
	switch {
	case dir < 0:
		return "up"
	case dir > 0:
		return "down"
	}
	return "idle"
}
