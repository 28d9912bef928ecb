package telemetry

import (
	"log/slog"
	"math"
	"time"
)

// Phase is one step of a frame, listed in execution order.
type Phase uint8

const (
	PhaseInput Phase = iota
	PhaseClock
	PhasePaddles
	PhaseBalls
	PhaseCompaction
	PhaseTelemetry
	PhaseRender
	numPhases
)

var phaseNames = [numPhases]string{
	"input", "clock", "paddles", "balls", "compaction", "telemetry", "render",
}

func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// frameSample is the timing of one finished frame.
type frameSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times frame phases over a ring of recent frames.
// A frame runs from BeginFrame to EndFrame; Mark closes the running phase
// and opens the next one.
type PerfCollector struct {
	now func() time.Time

	ring  []frameSample
	next  int
	count int

	cur        frameSample
	inFrame    bool
	open       bool
	phase      Phase
	frameStart time.Time
	markStart  time.Time

	lastEnd  time.Time
	interval time.Duration
}

// NewPerfCollector creates a collector averaging over the last window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		now:  time.Now,
		ring: make([]frameSample, window),
	}
}

// BeginFrame starts timing a frame. An unfinished frame is discarded.
func (p *PerfCollector) BeginFrame() {
	p.cur = frameSample{}
	p.frameStart = p.now()
	p.inFrame = true
	p.open = false
}

// Mark switches the running phase. Ignored outside a frame.
func (p *PerfCollector) Mark(phase Phase) {
	if !p.inFrame {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.phase = phase
	p.markStart = t
	p.open = true
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.open {
		p.cur.phases[p.phase] += t.Sub(p.markStart)
	}
}

// EndFrame closes the running phase and stores the frame. Ignored outside a frame.
func (p *PerfCollector) EndFrame() {
	if !p.inFrame {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.cur.total = t.Sub(p.frameStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}

	if !p.lastEnd.IsZero() {
		p.interval = t.Sub(p.lastEnd)
	}
	p.lastEnd = t
	p.inFrame = false
	p.open = false
}

// PerfStats summarizes the frames in the window.
type PerfStats struct {
	Frames   int
	AvgFrame time.Duration
	MaxFrame time.Duration
	Phase    [numPhases]time.Duration // Mean per frame
	FPS      float64                  // From the latest frame interval
}

// Stats averages the frames currently held in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Frames: p.count}
	if p.interval > 0 {
		s.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phases [numPhases]time.Duration
	for _, f := range p.ring[:p.count] {
		total += f.total
		s.MaxFrame = max(s.MaxFrame, f.total)
		for i, d := range f.phases {
			phases[i] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgFrame = total / n
	for i, d := range phases {
		s.Phase[i] = d / n
	}
	return s
}

// Busy is the mean frame time spent outside the clock wait.
func (s PerfStats) Busy() time.Duration {
	return s.AvgFrame - s.Phase[PhaseClock]
}

// Share returns the percentage of the mean frame spent in phase.
func (s PerfStats) Share(phase Phase) float64 {
	if s.AvgFrame <= 0 {
		return 0
	}
	return float64(s.Phase[phase]) / float64(s.AvgFrame) * 100
}

// LogValue implements slog.LogValuer. Phases under 0.1% are omitted.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int64("busy_us", s.Busy().Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for p := PhaseInput; p < numPhases; p++ {
		if pct := s.Share(p); pct >= 0.1 {
			attrs = append(attrs, slog.Float64(p.String()+"_pct", math.Round(pct*10)/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the window through LogValue.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// PerfStatsCSV is one perf.csv row. Phase columns are mean microseconds per frame.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	Frames       int     `csv:"frames"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	BusyUS       int64   `csv:"busy_us"`
	FPS          float64 `csv:"fps"`
	InputUS      int64   `csv:"input_us"`
	ClockUS      int64   `csv:"clock_us"`
	PaddlesUS    int64   `csv:"paddles_us"`
	BallsUS      int64   `csv:"balls_us"`
	CompactionUS int64   `csv:"compaction_us"`
	TelemetryUS  int64   `csv:"telemetry_us"`
	RenderUS     int64   `csv:"render_us"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	us := func(p Phase) int64 { return s.Phase[p].Microseconds() }
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Frames:       s.Frames,
		AvgFrameUS:   s.AvgFrame.Microseconds(),
		MaxFrameUS:   s.MaxFrame.Microseconds(),
		BusyUS:       s.Busy().Microseconds(),
		FPS:          s.FPS,
		InputUS:      us(PhaseInput),
		ClockUS:      us(PhaseClock),
		PaddlesUS:    us(PhasePaddles),
		BallsUS:      us(PhaseBalls),
		CompactionUS: us(PhaseCompaction),
		TelemetryUS:  us(PhaseTelemetry),
		RenderUS:     us(PhaseRender),
	}
}
