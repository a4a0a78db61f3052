package main

import (
	"encoding/json"
	"sort"
	"sync"

	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/rules"
	"turmites/internal/turmite"
	pcore "turmites/pkg/core"
)

// job is one random table to evaluate.
type job struct {
	index int
	seed  int64
	table rules.Table
}

// result is one CSV row.
type result struct {
	Index    int    `csv:"index"`
	Seed     int64  `csv:"seed"`
	States   int    `csv:"states"`
	Colors   int    `csv:"colors"`
	Ticks    uint64 `csv:"ticks"`
	Cells    int    `csv:"cells"`
	SpanW    int    `csv:"span_w"`
	SpanH    int    `csv:"span_h"`
	BBoxArea int    `csv:"bbox_area"`
	Halted   int    `csv:"halted"`
	Writes   uint64 `csv:"writes"`
	Rules    string `csv:"rules"`
}

// makeJobs draws n random tables from seed within the random bounds of cfg.
func makeJobs(cfg *config.Config, n int) []job {
	rng := pcore.NewRNG(cfg.Simulation.Seed)
	moves := cfg.Random.Moves.Moves()
	jobs := make([]job, n)
	for i := range jobs {
		states := rng.Between(cfg.Random.MinStates, cfg.Random.MaxStates)
		colors := rng.Between(cfg.Random.MinColors, cfg.Random.MaxColors)
		jobs[i] = job{
			index: i,
			seed:  rng.Int63(),
			table: rules.Generate(rng, states, colors, moves),
		}
	}
	return jobs
}

// runTable simulates one table headless for up to ticks ticks, stopping
// early once every ant has halted.
func runTable(cfg *config.Config, j job, ticks int) result {
	rng := pcore.NewRNG(j.seed)
	placement, _ := turmite.ParsePlacement(cfg.Simulation.Placement)
	heading, _ := turmite.ParseHeadingMode(cfg.Simulation.Heading)

	view := core.Size{W: cfg.View.Cols, H: cfg.View.Rows}
	positions := turmite.Place(rng, placement, cfg.Simulation.Ants, view)
	ants := make([]turmite.Ant, len(positions))
	for i, p := range positions {
		ants[i] = turmite.Ant{Pos: p, Heading: heading.Pick(rng)}
	}

	// Reset leaves the full-redraw flag set, so per-cell marks are dropped
	// and nothing accumulates without a viewer.
	s := turmite.NewState(j.table)
	s.Reset(ants)
	engine := turmite.NewEngine(rng)
	for i := 0; i < ticks; i++ {
		if s.HaltedCount() == len(s.Ants) {
			break
		}
		engine.Tick(s)
	}

	body, _ := json.Marshal(j.table)
	res := result{
		Index:  j.index,
		Seed:   j.seed,
		States: j.table.NumStates(),
		Colors: j.table.NumColors(),
		Ticks:  s.Ticks,
		Cells:  s.Grid.Len(),
		Halted: s.HaltedCount(),
		Writes: s.Writes,
		Rules:  string(body),
	}
	if lo, hi, ok := s.Grid.Bounds(); ok {
		res.SpanW = hi.X - lo.X + 1
		res.SpanH = hi.Y - lo.Y + 1
		res.BBoxArea = res.SpanW * res.SpanH
	}
	return res
}

// sweep fans jobs out to workers and returns the results in job order.
func sweep(cfg *config.Config, jobs []job, ticks, workers int) []result {
	workers = max(workers, 1)
	in := make(chan job)
	out := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range in {
				out <- runTable(cfg, j, ticks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	go func() {
		for _, j := range jobs {
			in <- j
		}
		close(in)
	}()

	all := make([]result, 0, len(jobs))
	for r := range out {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return all
}

// top returns the n results with the largest bounding box.
func top(results []result, n int) []result {
	ranked := append([]result(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].BBoxArea > ranked[j].BBoxArea })
	return ranked[:min(n, len(ranked))]
}
