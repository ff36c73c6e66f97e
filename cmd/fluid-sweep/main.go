package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/guptarohit/asciigraph"

	"stable-fluids/internal/app"
	"stable-fluids/internal/sims/smoke"
)

type paramSet struct {
	viscosity  float64
	diffusion  float64
	iterations int
}

func (p paramSet) String() string {
	return fmt.Sprintf("viscosity=%.0e diffusion=%.0e iterations=%d", p.viscosity, p.diffusion, p.iterations)
}

type scenarioResult struct {
	params        paramSet
	maxDivergence float64
	totalDensity  float64
	maxSpeed      float64
	divergence    []float64
	elapsed       time.Duration
	err           error
}

func main() {
	steps := flag.Int("steps", 120, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	preset := flag.String("preset", smoke.PresetPlume, fmt.Sprintf("scenario preset %v", smoke.Presets()))
	width := flag.Int("width", 96, "grid width including the ghost ring")
	height := flag.Int("height", 96, "grid height including the ghost ring")
	var overrides app.Overrides
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	baseCfg := smoke.Apply(smoke.DefaultConfig(), overrides.ToMap())
	baseCfg.Preset = *preset
	baseCfg.Width = *width
	baseCfg.Height = *height

	viscosityOptions := []float64{0, 1e-7, 1e-5, 1e-3}
	diffusionOptions := []float64{0, 1e-7, 1e-5}
	iterationOptions := []int{5, 10, 20, 40}

	var sets []paramSet
	for _, visc := range viscosityOptions {
		for _, diff := range diffusionOptions {
			for _, iters := range iterationOptions {
				sets = append(sets, paramSet{viscosity: visc, diffusion: diff, iterations: iters})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets on %q (%d workers, %d steps, %dx%d)\n",
		len(sets), baseCfg.Preset, *workers, *steps, baseCfg.Width, baseCfg.Height)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Printf("%s: %v", res.params, res.err)
			continue
		}
		all = append(all, res)
	}
	if len(all) == 0 {
		log.Fatal("no scenario finished")
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].maxDivergence != all[j].maxDivergence {
			return all[i].maxDivergence < all[j].maxDivergence
		}
		return all[i].elapsed < all[j].elapsed
	})
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) maxDiv=%.3e density=%.3f maxSpeed=%.3f run=%s params=%s\n",
			i+1, res.maxDivergence, res.totalDensity, res.maxSpeed, res.elapsed.Round(time.Millisecond), res.params)
	}

	best := all[0]
	fmt.Printf("\nBest overall: maxDiv=%.3e params=%s\n\n", best.maxDivergence, best.params)
	fmt.Println(asciigraph.Plot(best.divergence,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("max divergence per step")))
}

func runScenario(base smoke.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.Viscosity = params.viscosity
	cfg.Params.Diffusion = params.diffusion
	cfg.Params.Iterations = params.iterations

	res := scenarioResult{params: params}
	sim, err := smoke.New(cfg)
	if err != nil {
		res.err = err
		return res
	}

	start := time.Now()
	res.divergence = make([]float64, 0, steps)
	for step := 0; step < steps; step++ {
		sim.Step()
		if err := sim.State().CheckFinite(); err != nil {
			res.err = fmt.Errorf("step %d: %w", step+1, err)
			return res
		}
		res.divergence = append(res.divergence, sim.Stats().MaxDivergence)
	}
	res.elapsed = time.Since(start)

	stats := sim.Stats()
	res.maxDivergence = stats.MaxDivergence
	res.totalDensity = stats.TotalDensity
	res.maxSpeed = stats.MaxSpeed
	if math.IsNaN(res.maxDivergence) {
		res.err = fmt.Errorf("divergence is NaN")
	}
	return res
}
