package ui

import "testing"

func TestStatusText(t *testing.T) {
	got := StatusText(HUDData{Tick: 42, Balls: 3, FPS: 60, LeftDir: -1, RightDir: 0})
	want := "Tick: 42 | Balls: 3 | FPS: 60 | Left: up | Right: idle"
	if got != want {
		t.Errorf("StatusText() = %q, want %q", got, want)
	}
}

func TestHUDToggle(t *testing.T) {
	h := NewHUD()
	if h.Visible() {
		t.Fatal("HUD should start hidden")
	}
	h.Toggle()
	if !h.Visible() {
		t.Error("HUD should be visible after toggle")
	}
	// Hidden HUD draws nothing and must not touch raylib
	h.Toggle()
	h.Draw(HUDData{ScreenWidth: 1024, ScreenHeight: 768})
}
