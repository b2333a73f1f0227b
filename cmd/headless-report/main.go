package main

import (
	"flag"
	"fmt"
	"math"
	"sort"

	"github.com/Garsondee/Pursuit-Ring/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	captures         int
	firstCaptureTick int
	perPursuer       map[string]int

	finalMinGap float64
	finalAvgGap float64
	windowLine  string
}

func main() {
	var runs int
	var ticks int
	var pursuers int
	var seedBase int64
	var seedStep int64
	var wander bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 20000, "ticks per run (0.006s each)")
	flag.IntVar(&pursuers, "pursuers", 6, "pursuers per roster")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&wander, "wander", true, "wanderer steers itself (false = stationary quarry)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if pursuers < 0 {
		fmt.Println("error: -pursuers must be >= 0")
		return
	}

	fmt.Printf("=== Headless Pursuit Report ===\n")
	fmt.Printf("runs=%d ticks=%d pursuers=%d wander=%v seed_base=%d seed_step=%d\n\n",
		runs, ticks, pursuers, wander, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runOnce(i+1, seed, ticks, pursuers, wander)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runOnce(runIndex int, seed int64, ticks, pursuers int, wander bool) runStats {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithPursuers(pursuers),
		game.WithAutonomousWander(wander),
	)
	reporter := game.NewCaptureReporter(0)

	for t := 0; t < ticks; t += 100 {
		step := 100
		if remaining := ticks - t; remaining < step {
			step = remaining
		}
		ts.RunTicks(step)
		reporter.Collect(ts.Roster)
	}

	stats := runStats{
		runIndex:         runIndex,
		seed:             seed,
		captures:         ts.Roster.Captures(),
		firstCaptureTick: -1,
		perPursuer:       map[string]int{},
	}

	for _, e := range ts.SimLog.Filter("contact", "caught") {
		if stats.firstCaptureTick < 0 {
			stats.firstCaptureTick = e.Tick
		}
		stats.perPursuer[e.Agent]++
	}

	if rep, ok := reporter.Latest(); ok {
		stats.finalMinGap = rep.MinDistance
		stats.finalAvgGap = rep.AvgDistance
	}
	if wr := reporter.WindowSummary(); wr != nil {
		stats.windowLine = wr.Format()
	}
	return stats
}

func printRun(s runStats) {
	fmt.Printf("--- run %d (seed=%d) ---\n", s.runIndex, s.seed)
	fmt.Printf("captures=%d first_capture_tick=%d\n", s.captures, s.firstCaptureTick)
	if len(s.perPursuer) > 0 {
		labels := make([]string, 0, len(s.perPursuer))
		for label := range s.perPursuer {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		fmt.Printf("per-pursuer:")
		for _, label := range labels {
			fmt.Printf(" %s=%d", label, s.perPursuer[label])
		}
		fmt.Println()
	}
	fmt.Printf("final gap[min/avg]=%.2f/%.2f\n", s.finalMinGap, s.finalAvgGap)
	if s.windowLine != "" {
		fmt.Println(s.windowLine)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	if len(all) == 0 {
		return
	}
	totalCaptures := 0
	minCaptures := math.MaxInt
	maxCaptures := 0
	for _, s := range all {
		totalCaptures += s.captures
		if s.captures < minCaptures {
			minCaptures = s.captures
		}
		if s.captures > maxCaptures {
			maxCaptures = s.captures
		}
	}
	fmt.Printf("=== Aggregate over %d runs ===\n", len(all))
	fmt.Printf("captures: total=%d mean=%.1f min=%d max=%d\n",
		totalCaptures, float64(totalCaptures)/float64(len(all)), minCaptures, maxCaptures)
}
