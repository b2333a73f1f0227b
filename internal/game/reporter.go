package game

import (
	"fmt"
	"math"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour
// reports (~3.6s at the fixed 0.006s tick).
const reportWindowTicks = 600

// PursuerReport captures one pursuer's state at one point in time.
type PursuerReport struct {
	Label    string
	Distance float64 // gap to the quarry
	Speed    float64
}

// PursuitReport is a full snapshot of the simulation at one tick.
type PursuitReport struct {
	Tick     int
	Captures int // cumulative contact-triggered resets

	WandererPos   Vec3
	WandererSpeed float64

	Pursuers []PursuerReport

	// Aggregates over pursuers.
	MinDistance float64
	AvgDistance float64
	MaxDistance float64
}

// CaptureReporter collects periodic snapshots from the simulation and can
// produce summaries over sliding tick windows. Used by cmd/headless-report
// and by scenario tests via t.Log.
type CaptureReporter struct {
	history     []PursuitReport
	windowTicks int
}

// NewCaptureReporter creates a reporter with the given window size.
func NewCaptureReporter(windowTicks int) *CaptureReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &CaptureReporter{windowTicks: windowTicks}
}

// Collect gathers a snapshot from the current roster state.
// Call this periodically (e.g. every 100 ticks).
func (cr *CaptureReporter) Collect(r *Roster) {
	report := PursuitReport{
		Tick:          r.Tick(),
		Captures:      r.Captures(),
		WandererPos:   r.Wanderer().Position(),
		WandererSpeed: r.Wanderer().Speed(),
		MinDistance:   math.Inf(1),
	}

	w := r.Wanderer()
	for i := 1; i < r.AgentCount(); i++ {
		p := r.Agent(i)
		d := p.Position().Dist(w.Position())
		report.Pursuers = append(report.Pursuers, PursuerReport{
			Label:    p.Label(),
			Distance: d,
			Speed:    p.Speed(),
		})
		report.AvgDistance += d
		if d < report.MinDistance {
			report.MinDistance = d
		}
		if d > report.MaxDistance {
			report.MaxDistance = d
		}
	}
	if n := len(report.Pursuers); n > 0 {
		report.AvgDistance /= float64(n)
	} else {
		report.MinDistance = 0
	}

	cr.history = append(cr.history, report)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := cr.windowTicks / 100 * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(cr.history) > maxKeep {
		cr.history = cr.history[len(cr.history)-maxKeep:]
	}
}

// Latest returns the most recent snapshot, or false if none collected.
func (cr *CaptureReporter) Latest() (PursuitReport, bool) {
	if len(cr.history) == 0 {
		return PursuitReport{}, false
	}
	return cr.history[len(cr.history)-1], true
}

// FormatLatest renders the most recent snapshot as a short text block.
func (cr *CaptureReporter) FormatLatest() string {
	rep, ok := cr.Latest()
	if !ok {
		return "(no reports collected)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Pursuit report at T=%04d ---\n", rep.Tick)
	fmt.Fprintf(&sb, "captures=%d wanderer=(%.2f,%.2f) wspeed=%.2f\n",
		rep.Captures, rep.WandererPos.X, rep.WandererPos.Z, rep.WandererSpeed)
	fmt.Fprintf(&sb, "gap[min/avg/max]=%.2f/%.2f/%.2f\n",
		rep.MinDistance, rep.AvgDistance, rep.MaxDistance)
	for _, p := range rep.Pursuers {
		fmt.Fprintf(&sb, "  %s: d=%.2f speed=%.2f\n", p.Label, p.Distance, p.Speed)
	}
	return sb.String()
}

// WindowReport summarizes behaviour over the most recent window.
type WindowReport struct {
	FromTick, ToTick int
	Captures         int // captures fired within the window
	AvgGap           float64
	MinGap           float64
}

// WindowSummary computes a summary over the trailing window, or nil when
// fewer than two snapshots exist.
func (cr *CaptureReporter) WindowSummary() *WindowReport {
	if len(cr.history) < 2 {
		return nil
	}
	last := cr.history[len(cr.history)-1]
	first := cr.history[0]
	for i := len(cr.history) - 1; i >= 0; i-- {
		if last.Tick-cr.history[i].Tick > cr.windowTicks {
			break
		}
		first = cr.history[i]
	}

	wr := &WindowReport{
		FromTick: first.Tick,
		ToTick:   last.Tick,
		Captures: last.Captures - first.Captures,
		MinGap:   math.Inf(1),
	}
	n := 0
	for _, rep := range cr.history {
		if rep.Tick < first.Tick || rep.Tick > last.Tick {
			continue
		}
		wr.AvgGap += rep.AvgDistance
		if rep.MinDistance < wr.MinGap {
			wr.MinGap = rep.MinDistance
		}
		n++
	}
	if n > 0 {
		wr.AvgGap /= float64(n)
	}
	return wr
}

// Format renders the window report.
func (wr *WindowReport) Format() string {
	return fmt.Sprintf("window T=%04d..%04d: captures=%d gap[avg]=%.2f gap[min]=%.2f",
		wr.FromTick, wr.ToTick, wr.Captures, wr.AvgGap, wr.MinGap)
}
