// Package terminal is a text-mode frontend on tcell. It scales the playfield
// onto the terminal grid and turns key presses into held-key state.
package terminal

import (
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/multipong/input"
	"github.com/pthm-cable/multipong/renderer"
)

const block = '█'

// Screen draws rectangles as terminal cells and reports keyboard state
// using raylib key codes, so the same bindings work in both frontends.
type Screen struct {
	screen  tcell.Screen
	events  chan tcell.Event
	done    chan struct{} // closed by Close
	stopped chan struct{} // closed when the reader exits

	fieldW, fieldH float32
	cols, rows     int

	hold     time.Duration
	now      func() time.Time
	lastDown map[int32]time.Time
	pressed  map[int32]bool

	closeOnce sync.Once
}

// Open initializes the controlling terminal.
func Open(fieldW, fieldH float32, hold time.Duration) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return New(screen, fieldW, fieldH, hold), nil
}

// New wraps an initialized tcell screen and starts reading its events.
func New(screen tcell.Screen, fieldW, fieldH float32, hold time.Duration) *Screen {
	s := &Screen{
		screen:   screen,
		events:   make(chan tcell.Event, 100),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		fieldW:   fieldW,
		fieldH:   fieldH,
		hold:     hold,
		now:      time.Now,
		lastDown: make(map[int32]time.Time),
		pressed:  make(map[int32]bool),
	}
	s.cols, s.rows = screen.Size()
	screen.HideCursor()

	go func() {
		defer close(s.stopped)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(s.events)
				return
			}
			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
	}()

	return s
}

// PollEvents drains pending terminal events without blocking.
// Ctrl-C is reported as a quit event.
func (s *Screen) PollEvents() []input.Event {
	clear(s.pressed)

	var out []input.Event
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return append(out, input.Event{Type: input.EventQuit})
			}
			if s.handle(ev) {
				out = append(out, input.Event{Type: input.EventQuit})
			}
		default:
			return out
		}
	}
}

// handle records one event. Returns true on an interrupt.
func (s *Screen) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if code, ok := keyCode(ev); ok {
			s.lastDown[code] = s.now()
			s.pressed[code] = true
		}
	case *tcell.EventResize:
		s.screen.Sync()
		s.cols, s.rows = s.screen.Size()
	}
	return false
}

// keyCode maps a tcell key event to the matching raylib key code.
func keyCode(ev *tcell.EventKey) (int32, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return rl.KeyEscape, true
	case tcell.KeyUp:
		return rl.KeyUp, true
	case tcell.KeyDown:
		return rl.KeyDown, true
	case tcell.KeyF1:
		return rl.KeyF1, true
	case tcell.KeyF2:
		return rl.KeyF2, true
	case tcell.KeyF3:
		return rl.KeyF3, true
	case tcell.KeyRune:
		r := unicode.ToUpper(ev.Rune())
		switch {
		case r == ' ':
			return rl.KeySpace, true
		case r >= 'A' && r <= 'Z':
			// raylib letter codes are their ASCII capitals
			return int32(r), true
		}
	}
	return 0, false
}

// IsKeyDown reports whether key was pressed within the hold window.
func (s *Screen) IsKeyDown(key int32) bool {
	t, ok := s.lastDown[key]
	return ok && s.now().Sub(t) < s.hold
}

// IsKeyPressed reports whether key was pressed since the previous poll.
func (s *Screen) IsKeyPressed(key int32) bool {
	return s.pressed[key]
}

// Clear fills the terminal with the background colour.
func (s *Screen) Clear(c renderer.Color) {
	s.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(c)))
}

// FillRect paints the cells covered by a field-space rectangle.
// Every rectangle covers at least one cell.
func (s *Screen) FillRect(r renderer.Rect, c renderer.Color) {
	x0, y0 := s.toCell(r.X, r.Y)
	x1, y1 := s.toCell(r.X+r.W, r.Y+r.H)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	style := tcell.StyleDefault.Foreground(toTcell(c))
	for y := max(y0, 0); y < min(y1, s.rows); y++ {
		for x := max(x0, 0); x < min(x1, s.cols); x++ {
			s.screen.SetContent(x, y, block, nil, style)
		}
	}
}

func (s *Screen) toCell(x, y int32) (int, int) {
	return int(float32(x) * float32(s.cols) / s.fieldW),
		int(float32(y) * float32(s.rows) / s.fieldH)
}

// Present flushes the frame to the terminal.
func (s *Screen) Present() {
	s.screen.Show()
}

// Close restores the terminal. Safe to call more than once.
func (s *Screen) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.screen.Fini()
	})
}

func toTcell(c renderer.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
