package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation.
type SimLogEntry struct {
	Tick     int
	Agent    string  // label e.g. "W", "P3", or "--" for global events
	Category string  // contact, reset, move, step
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] P0   contact   caught   d=0.871 < r=1.000
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-4s %-8s %-10s %s",
		e.Tick, e.Agent, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless simulation. It is
// unbounded and machine-readable, meant for tests and the headless report
// tool rather than the on-screen HUD.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position/speed
// entries are also recorded (useful for trajectory-level assertions).
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, agent, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Agent:    agent,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, agent, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, agent, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAgent returns entries for a specific agent label.
func (sl *SimLog) FilterAgent(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Agent == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the roster state:
// tick, capture count, and each pursuer's current gap to the quarry.
func (sl *SimLog) Summary(r *Roster) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", r.Tick())
	fmt.Fprintf(&sb, "Captures: %d\n", r.Captures())

	w := r.Wanderer()
	fmt.Fprintf(&sb, "Wanderer: pos=(%.2f,%.2f) speed=%.2f\n",
		w.Position().X, w.Position().Z, w.Speed())
	for i := 1; i < r.AgentCount(); i++ {
		p := r.Agent(i)
		fmt.Fprintf(&sb, "%s: d=%.2f speed=%.2f\n",
			p.Label(), p.Position().Dist(w.Position()), p.Speed())
	}
	return sb.String()
}
