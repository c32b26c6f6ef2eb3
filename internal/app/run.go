// Package app runs a simulation from the command line, printing frames as
// text and optionally writing the final frame as an image.
package app

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/apex/log"

	"cellcore/internal/core"
	"cellcore/internal/render"
	"cellcore/internal/scenario"
)

// Paced runs read the time from clock and wait with sleep.
var (
	clock = time.Now
	sleep = sleepContext
)

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type terminator interface {
	Terminal() bool
}

// Run builds the configured simulation and advances it, printing frames to
// out. Cancelling ctx stops the run after the current generation; the final
// frame is still printed and Run returns nil.
func Run(ctx context.Context, cfg *Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	sim, steps, seed, err := build(cfg)
	if err != nil {
		return err
	}
	if err := sim.Reset(seed); err != nil {
		return err
	}

	size := sim.Size()
	logger := log.WithFields(log.Fields{
		"sim":   sim.Name(),
		"size":  fmt.Sprintf("%dx%d", size.W, size.H),
		"steps": steps,
		"seed":  seed,
	})
	logger.Info("starting simulation")

	palette := []rune(cfg.Palette)
	if len(palette) == 0 {
		palette = render.DefaultRunes
	}
	printed := -1
	frame := func(step int) error {
		printed = step
		if _, err := fmt.Fprintf(out, "generation %d\n", step); err != nil {
			return err
		}
		return render.Palette(out, sim.Cells(), size.W, palette)
	}

	var pace *core.FixedStep
	if cfg.TPS > 0 {
		pace = core.NewFixedStep(cfg.TPS, clock)
	}

	if cfg.Every > 0 {
		if err := frame(0); err != nil {
			return err
		}
	}
	step := 0
loop:
	for steps < 0 || step < steps {
		if t, ok := sim.(terminator); ok && t.Terminal() {
			logger.WithField("generation", step).Debug("last row reached")
			break
		}
		if ctx.Err() != nil {
			break
		}
		if pace != nil {
			for !pace.ShouldStep() {
				if err := sleep(ctx, pace.Remaining()); err != nil {
					break loop
				}
			}
		}
		sim.Step()
		step++
		if cfg.Every > 0 && step%cfg.Every == 0 {
			if err := frame(step); err != nil {
				return err
			}
		}
	}
	if ctx.Err() != nil {
		logger.WithField("generation", step).Warn("interrupted")
	}
	if printed != step {
		if err := frame(step); err != nil {
			return err
		}
	}

	if cfg.PNG != "" {
		if err := writePNG(cfg.PNG, sim, cfg.Mono); err != nil {
			return err
		}
		logger.WithField("path", cfg.PNG).Info("wrote final frame")
	}
	if p, ok := sim.(core.ParameterProvider); ok {
		fields := log.Fields{}
		for _, g := range p.Parameters().Groups {
			for _, param := range g.Params {
				fields[param.Key] = param.Value
			}
		}
		logger.WithFields(fields).Debug("final parameters")
	}
	logger.WithField("generation", step).Info("simulation finished")
	return nil
}

func build(cfg *Config) (core.Sim, int, int64, error) {
	steps := cfg.Steps
	if cfg.Scenario == "" {
		sim, err := core.Sims()[cfg.Sim](cfg.Params.Map())
		if err != nil {
			return nil, 0, 0, fmt.Errorf("build %s: %w", cfg.Sim, err)
		}
		if steps == 0 {
			steps = DefaultSteps
		}
		return sim, steps, cfg.Seed, nil
	}

	all, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return nil, 0, 0, err
	}
	sc, err := scenario.Find(all, cfg.Name)
	if err != nil {
		return nil, 0, 0, err
	}
	sim, err := scenario.Build(sc)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("build scenario %q: %w", sc.Name, err)
	}
	for key, value := range cfg.Params.Map() {
		n, err := strconv.Atoi(value)
		if err != nil || !sim.SetIntParameter(key, n) {
			return nil, 0, 0, fmt.Errorf("%w: cannot set %s=%s on scenario %q", core.ErrPrecondition, key, value, sc.Name)
		}
	}
	if steps == 0 {
		steps = sc.Steps
	}
	if steps == 0 {
		steps = DefaultSteps
	}
	return sim, steps, sc.Seed, nil
}

func writePNG(path string, sim core.Sim, mono bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if mono {
		img, err := render.Binary(sim.Cells(), sim.Size(), color.White, color.Black)
		if err != nil {
			return err
		}
		return png.Encode(f, img)
	}
	return render.PNG(f, sim.Cells(), sim.Size(), render.DefaultPalette)
}
