package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// rosterDebugReport builds a plain-text snapshot of the simulation for bug
// reports: seed, tick, capture count, per-agent kinematics, and the tail of
// the event log.
func rosterDebugReport(r *Roster, sl *SimLog, seed int64, lastEntries int) string {
	if lastEntries <= 0 {
		lastEntries = 40
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Pursuit-Ring debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d captures=%d agents=%d\n\n",
		seed, r.Tick(), r.Captures(), r.AgentCount())

	w := r.Wanderer()
	for i := 0; i < r.AgentCount(); i++ {
		a := r.Agent(i)
		pos := a.Position()
		fwd := a.Forward()
		fmt.Fprintf(&b, "%-3s %-8s pos=(%7.2f,%7.2f) fwd=(%5.2f,%5.2f) speed=%.3f",
			a.Label(), a.Role(), pos.X, pos.Z, fwd.X, fwd.Z, a.Speed())
		if a.Role() == RolePursuer {
			fmt.Fprintf(&b, " gap=%.2f", pos.Dist(w.Position()))
		}
		b.WriteByte('\n')
	}

	if sl != nil {
		entries := sl.Entries()
		from := len(entries) - lastEntries
		if from < 0 {
			from = 0
		}
		fmt.Fprintf(&b, "\n== last %d events ==\n", len(entries)-from)
		for _, e := range entries[from:] {
			b.WriteString(e.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// copyDebugReport puts the report on the system clipboard.
func copyDebugReport(r *Roster, sl *SimLog, seed int64) error {
	return clipboard.WriteAll(rosterDebugReport(r, sl, seed, 40))
}
