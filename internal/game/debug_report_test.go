package game

import (
	"strings"
	"testing"
)

func TestRosterDebugReport(t *testing.T) {
	ts := NewTestSim(WithSeed(13), WithPursuers(2), WithAutonomousWander(true))
	ts.RunTicks(200)

	report := rosterDebugReport(ts.Roster, ts.SimLog, 13, 10)

	for _, want := range []string{"seed=13", "tick=200", "W", "P0", "P1", "gap="} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}
