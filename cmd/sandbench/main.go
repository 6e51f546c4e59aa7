package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"falling-sand/internal/config"
	"falling-sand/internal/logging"
	"falling-sand/internal/sims/sand"
	"falling-sand/internal/telemetry"
)

type job struct {
	index    int
	scenario sand.Scenario
	run      int
	cfg      sand.Config
}

func (j job) label() string {
	if j.run == 0 {
		return j.scenario.Name
	}
	return fmt.Sprintf("%s#%d", j.scenario.Name, j.run)
}

type result struct {
	job     job
	ticks   []telemetry.TickRecord
	summary telemetry.Summary
	final   sand.WorldStats
	err     error
}

func main() {
	var flags config.Flags
	flags.Bind(flag.CommandLine)
	steps := flag.Int("steps", 600, "ticks to simulate per run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	runs := flag.Int("runs", 1, "runs per scenario, each with its own seed")
	chunk := flag.Int("chunk", 0, "chunk size override (0 keeps the configured size)")
	names := flag.String("scenarios", "", "comma-separated scenarios to run (default all)")
	out := flag.String("out", "", "directory for ticks.csv, summary.csv and config.yaml")
	list := flag.Bool("list", false, "list the scenarios and exit")
	flag.Parse()

	if *list {
		for _, sc := range sand.Scenarios() {
			fmt.Printf("%-8s %s\n", sc.Name, sc.Description)
		}
		return
	}

	settings, err := flags.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *chunk > 0 {
		settings.Sim.ChunkSize = *chunk
	}
	log, err := logging.New(settings.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	selected, err := pickScenarios(*names)
	if err != nil {
		log.Fatal("selecting scenarios", zap.Error(err))
	}
	if err := settings.Sim.Validate(); err != nil {
		log.Fatal("invalid simulation config", zap.Error(err))
	}

	output, err := telemetry.NewOutput(*out)
	if err != nil {
		log.Fatal("opening output", zap.Error(err))
	}
	if err := output.WriteSettings(settings); err != nil {
		log.Fatal("writing settings", zap.Error(err))
	}

	var queue []job
	for _, sc := range selected {
		for run := 0; run < max(*runs, 1); run++ {
			cfg := settings.Sim
			cfg.Seed += int64(run)
			queue = append(queue, job{index: len(queue), scenario: sc, run: run, cfg: cfg})
		}
	}

	log.Info("benchmark starting",
		zap.Int("jobs", len(queue)),
		zap.Int("workers", *workers),
		zap.Int("steps", *steps),
		zap.Int("chunk_size", settings.Sim.ChunkSize),
	)

	jobs := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < max(*workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runJob(j, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range queue {
			jobs <- j
		}
		close(jobs)
	}()

	start := time.Now()
	var all []result
	for res := range results {
		if res.err != nil {
			log.Error("run failed", zap.String("scenario", res.job.label()), zap.Error(res.err))
			continue
		}
		log.Info("run finished", res.summary.Field(), zap.Int("particles", total(res.final)))
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].job.index < all[j].job.index })

	failed := len(queue) - len(all)
	for _, res := range all {
		if err := output.WriteTicks(res.ticks); err != nil {
			log.Fatal("writing ticks", zap.Error(err))
		}
		if err := output.WriteSummary(res.summary); err != nil {
			log.Fatal("writing summary", zap.Error(err))
		}
	}

	if err := output.Close(); err != nil {
		log.Error("closing output", zap.Error(err))
	}

	fmt.Printf("\n%-12s %10s %10s %10s %12s %12s\n", "scenario", "mean_us", "p95_us", "tps", "active", "dirty")
	for _, res := range all {
		s := res.summary
		fmt.Printf("%-12s %10.1f %10.1f %10.0f %12.2f %12.0f\n",
			s.Scenario, s.MeanDurationUS, s.P95DurationUS, s.TicksPerSecond, s.MeanActiveChunks, s.MeanDirtyArea)
	}
	log.Info("benchmark finished",
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		os.Exit(1)
	}
}

func runJob(j job, steps int) result {
	label := j.label()
	perf := telemetry.NewCollector(steps)
	final, err := j.scenario.Run(j.cfg, steps, func(s sand.WorldStats, d time.Duration) {
		perf.Add(telemetry.NewTickRecord(label, s, d))
	})
	if err != nil {
		return result{job: j, err: err}
	}
	return result{
		job:     j,
		ticks:   perf.Samples(),
		summary: perf.Summary(),
		final:   final,
	}
}

func pickScenarios(names string) ([]sand.Scenario, error) {
	if strings.TrimSpace(names) == "" {
		return sand.Scenarios(), nil
	}
	var out []sand.Scenario
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sc, ok := sand.FindScenario(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		out = append(out, sc)
	}
	return out, nil
}

func total(s sand.WorldStats) int {
	n := 0
	for k, c := range s.Counts {
		if sand.Kind(k) != sand.KindEmpty {
			n += c
		}
	}
	return n
}
