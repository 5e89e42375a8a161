//go:build !lambda

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// resultSink receives finished run reports.
type resultSink interface {
	Record(r *RunReport) error
	Close() error
}

func runModes(blueprints []Blueprint, modes []Mode, cfg Config) []*RunReport {
	var reports []*RunReport
	for _, m := range modes {
		reports = append(reports, RunScenarios(blueprints, m, cfg))
	}
	return reports
}

func runSingle(blueprints []Blueprint, id, horizon int, jsonOut bool) error {
	bp := FindBlueprint(blueprints, id)
	if bp == nil {
		return fmt.Errorf("blueprint %d not found", id)
	}
	fmt.Fprintf(logw(), "%s\n", FormatBlueprint(bp))
	res := Search(bp, horizon, SearchOptions{})

	if jsonOut {
		return writeJSON(os.Stdout, ScenarioResult{
			BlueprintID: bp.ID,
			Optimum:     res.Best,
			Stats:       res.Stats,
			TimeMs:      res.Elapsed.Milliseconds(),
		})
	}
	fmt.Printf("Blueprint %d, %d minutes: %d in %.1fs\n", bp.ID, horizon, res.Best, res.Elapsed.Seconds())
	fmt.Printf("  calls=%d pruned=%d cacheHits=%d cacheSize=%d\n",
		res.Stats.Calls, res.Stats.Pruned, res.Stats.CacheHits, res.Stats.CacheSize)
	return nil
}

func openSinks(store bool, dsn, mqttURL, topic string) ([]resultSink, error) {
	var sinks []resultSink
	if store {
		s, err := OpenResultStore(dsn)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if mqttURL != "" {
		p := NewPublisher(mqttURL, topic)
		if err := p.Connect(); err != nil {
			for _, s := range sinks {
				s.Close()
			}
			return nil, fmt.Errorf("mqtt: connect %s: %w", mqttURL, err)
		}
		sinks = append(sinks, p)
	}
	return sinks, nil
}

const usage = `Usage: blueprint-optimizer [flags] <blueprints.txt|blueprints.json> [blueprintId]

Positional arguments:
  blueprints      Path to blueprints, prose or JSON
  blueprintId     Search a single blueprint (omitted = run the selected modes)

Flags:
`

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	modeName := flag.String("mode", "both", "Run mode: quality, top or both")
	configPath := flag.String("config", "", "YAML config file")
	jsonOut := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("verbose", false, "Print detailed search progress to stderr")
	workers := flag.Int("workers", -1, "Blueprints searched in parallel (0 = GOMAXPROCS)")
	horizon := flag.Int("horizon", 0, "Minutes for a single-blueprint search (default: quality horizon)")
	store := flag.Bool("store", false, "Record results in Postgres (PG* environment variables)")
	dsn := flag.String("dsn", "", "Postgres connection string, implies -store")
	mqttURL := flag.String("mqtt", "", "Publish results to this MQTT broker, e.g. tcp://localhost:1883")
	topic := flag.String("topic", "blueprints", "MQTT topic prefix")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			fail("config: %v", err)
		}
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	Verbose = *verbose || cfg.Verbose

	blueprints, err := LoadBlueprintFile(args[0])
	if err != nil {
		fail("%v", err)
	}
	fmt.Fprintf(logw(), "[load] %d blueprints from %s\n", len(blueprints), args[0])

	if len(args) >= 2 {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			fail("invalid blueprintId %q", args[1])
		}
		h := *horizon
		if h == 0 {
			h = cfg.QualityHorizon
		}
		if h < 1 || h > MaxHorizon {
			fail("horizon %d outside 1..%d", h, MaxHorizon)
		}
		if err := runSingle(blueprints, id, h, *jsonOut); err != nil {
			fail("%v", err)
		}
		return
	}

	var modes []Mode
	if *modeName == "both" {
		modes = []Mode{ModeQuality, ModeTopProduct}
	} else {
		m, err := ParseMode(*modeName)
		if err != nil {
			fail("%v", err)
		}
		modes = []Mode{m}
	}

	sinks, err := openSinks(*store || *dsn != "", *dsn, *mqttURL, *topic)
	if err != nil {
		fail("%v", err)
	}
	defer func() {
		for _, s := range sinks {
			s.Close()
		}
	}()

	reports := runModes(blueprints, modes, cfg)
	for _, r := range reports {
		for _, s := range sinks {
			if err := s.Record(r); err != nil {
				fmt.Fprintf(logw(), "[sink] record run %s: %v\n", r.RunID, err)
			}
		}
	}

	if *jsonOut {
		writeJSON(os.Stdout, BenchOutput{
			Date:    time.Now().UTC().Format(time.RFC3339),
			Input:   args[0],
			Reports: reports,
		})
		return
	}
	for i, r := range reports {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Mode %s, %d minutes\n", r.Mode, r.Horizon)
		printTable(os.Stdout, r)
	}
}
