// Package input maps raw keyboard and window events to paddle directions
// and the quit signal.
package input

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// EventType identifies window events.
type EventType uint8

const (
	EventQuit EventType = iota
)

// Event is a drained window event.
type Event struct {
	Type EventType
}

// KeyState reports whether a key is currently held.
type KeyState interface {
	IsKeyDown(key int32) bool
}

// Bindings holds the raylib key codes for each action.
type Bindings struct {
	LeftUp    int32
	LeftDown  int32
	RightUp   int32
	RightDown int32
	Quit      int32
}

// Directions returns the left and right paddle directions in {-1, 0, +1}.
// Up is applied before down, so holding both cancels out.
func Directions(ks KeyState, b Bindings) (left, right int8) {
	return axis(ks, b.LeftUp, b.LeftDown), axis(ks, b.RightUp, b.RightDown)
}

func axis(ks KeyState, up, down int32) int8 {
	var dir int8
	if ks.IsKeyDown(up) {
		dir -= 1
	}
	if ks.IsKeyDown(down) {
		dir += 1
	}
	return dir
}

// QuitRequested reports whether this frame's events or held keys ask to end the session.
func QuitRequested(events []Event, ks KeyState, b Bindings) bool {
	for _, ev := range events {
		if ev.Type == EventQuit {
			return true
		}
	}
	return ks.IsKeyDown(b.Quit)
}

// keyNames maps config key names to raylib key codes.
var keyNames = map[string]int32{
	"ESCAPE": rl.KeyEscape,
	"SPACE":  rl.KeySpace,
	"UP":     rl.KeyUp,
	"DOWN":   rl.KeyDown,
	"F1":     rl.KeyF1,
	"F2":     rl.KeyF2,
	"F3":     rl.KeyF3,
	"A":      rl.KeyA,
	"B":      rl.KeyB,
	"C":      rl.KeyC,
	"D":      rl.KeyD,
	"E":      rl.KeyE,
	"F":      rl.KeyF,
	"G":      rl.KeyG,
	"H":      rl.KeyH,
	"I":      rl.KeyI,
	"J":      rl.KeyJ,
	"K":      rl.KeyK,
	"L":      rl.KeyL,
	"M":      rl.KeyM,
	"N":      rl.KeyN,
	"O":      rl.KeyO,
	"P":      rl.KeyP,
	"Q":      rl.KeyQ,
	"R":      rl.KeyR,
	"S":      rl.KeyS,
	"T":      rl.KeyT,
	"U":      rl.KeyU,
	"V":      rl.KeyV,
	"W":      rl.KeyW,
	"X":      rl.KeyX,
	"Y":      rl.KeyY,
	"Z":      rl.KeyZ,
}

// KeyCode resolves a case-insensitive key name to its raylib key code.
func KeyCode(name string) (int32, error) {
	code, ok := keyNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return code, nil
}
