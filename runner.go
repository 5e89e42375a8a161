package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mode selects the horizon and aggregation of a run.
type Mode string

const (
	// ModeQuality sums (index+1)*optimum over every blueprint.
	ModeQuality Mode = "quality"
	// ModeTopProduct multiplies the optima of the first TopCount blueprints.
	ModeTopProduct Mode = "top"
)

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeQuality, ModeTopProduct:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeQuality, ModeTopProduct)
}

// Horizon returns the minutes searched in mode m under cfg.
func (m Mode) Horizon(cfg Config) int {
	if m == ModeTopProduct {
		return cfg.TopHorizon
	}
	return cfg.QualityHorizon
}

// ScenarioResult is the optimum of one blueprint within a run.
type ScenarioResult struct {
	Index       int           `json:"index"`
	BlueprintID int           `json:"blueprintId"`
	Optimum     int           `json:"optimum"`
	Stats       SearchStats   `json:"stats"`
	Elapsed     time.Duration `json:"-"`
	TimeMs      int64         `json:"timeMs"`
}

// RunReport is the outcome of evaluating a set of blueprints in one mode.
type RunReport struct {
	RunID     string           `json:"runId"`
	Mode      Mode             `json:"mode"`
	Horizon   int              `json:"horizon"`
	Answer    int              `json:"answer"`
	Scenarios []ScenarioResult `json:"scenarios"`
	Workers   int              `json:"workers"`
	Elapsed   time.Duration    `json:"-"`
	TotalMs   int64            `json:"totalMs"`
}

// selectScenarios returns the blueprints mode m evaluates.
func selectScenarios(blueprints []Blueprint, m Mode, cfg Config) []Blueprint {
	if m == ModeTopProduct && len(blueprints) > cfg.TopCount {
		return blueprints[:cfg.TopCount]
	}
	return blueprints
}

// aggregate folds per-scenario optima into the mode's answer. Results must be
// ordered by index.
func aggregate(m Mode, results []ScenarioResult) int {
	if m == ModeTopProduct {
		product := 1
		for _, r := range results {
			product *= r.Optimum
		}
		return product
	}
	sum := 0
	for _, r := range results {
		sum += (r.Index + 1) * r.Optimum
	}
	return sum
}

func workerCount(cfg Config, jobs int) int {
	n := cfg.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > jobs {
		n = jobs
	}
	return n
}

// RunScenarios searches every blueprint selected by mode m in parallel and
// aggregates their optima. Each search owns its cache and best value; the
// only shared step is the final fold.
func RunScenarios(blueprints []Blueprint, m Mode, cfg Config) *RunReport {
	start := time.Now()
	scenarios := selectScenarios(blueprints, m, cfg)
	horizon := m.Horizon(cfg)
	numWorkers := workerCount(cfg, len(scenarios))

	fmt.Fprintf(logw(), "[init] mode=%s horizon=%d blueprints=%d workers=%d\n",
		m, horizon, len(scenarios), numWorkers)

	resultCh := make(chan ScenarioResult, len(scenarios))
	jobCh := make(chan int, len(scenarios))
	for i := range scenarios {
		jobCh <- i
	}
	close(jobCh)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				bp := &scenarios[idx]
				res := Search(bp, horizon, SearchOptions{})
				resultCh <- ScenarioResult{
					Index:       idx,
					BlueprintID: bp.ID,
					Optimum:     res.Best,
					Stats:       res.Stats,
					Elapsed:     res.Elapsed,
					TimeMs:      res.Elapsed.Milliseconds(),
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]ScenarioResult, 0, len(scenarios))
	for r := range resultCh {
		fmt.Fprintf(logw(), "[scenario] blueprint %d done, optimum=%d in %v\n", r.BlueprintID, r.Optimum, r.Elapsed)
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	elapsed := time.Since(start)
	report := &RunReport{
		RunID:     uuid.NewString(),
		Mode:      m,
		Horizon:   horizon,
		Answer:    aggregate(m, results),
		Scenarios: results,
		Workers:   numWorkers,
		Elapsed:   elapsed,
		TotalMs:   elapsed.Milliseconds(),
	}
	fmt.Fprintf(logw(), "[done] mode=%s answer=%d, elapsed=%v\n", m, report.Answer, elapsed)
	return report
}

func logw() *os.File { return os.Stderr }
