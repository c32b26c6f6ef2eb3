// Package sweep runs every elementary ruleset in a range on its own automaton
// and summarises how each one evolves.
package sweep

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"cellcore/internal/automat"
	"cellcore/internal/core"
	"cellcore/internal/topology"
)

// Options selects the rules to sweep and the automaton each one runs on.
type Options struct {
	From, To int
	Width    int
	Height   int
	Edge     topology.Edge
	// Random seeds the first row at random instead of a single centre cell.
	Random  bool
	Seed    int64
	Workers int
	Logger  log.Interface
}

// DefaultOptions sweeps all 256 elementary rules on a 64x64 grid.
func DefaultOptions() Options {
	return Options{From: 0, To: 255, Width: 64, Height: 64, Seed: 1, Workers: runtime.NumCPU()}
}

// Result describes one rule's run from the first row to the last.
type Result struct {
	Rule      uint8
	Live      int
	FinalLive int
	Extinct   bool
	// RepeatsAt is the first row identical to an earlier row, or -1.
	RepeatsAt int
}

func (r Result) String() string {
	return fmt.Sprintf("rule=%d live=%d final=%d extinct=%v repeats=%d", r.Rule, r.Live, r.FinalLive, r.Extinct, r.RepeatsAt)
}

// Validate checks the sweep range and grid size.
func (o Options) Validate() error {
	if o.From < 0 || o.To > 255 || o.From > o.To {
		return fmt.Errorf("%w: rule range [%d,%d] outside [0,255]", core.ErrPrecondition, o.From, o.To)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", core.ErrPrecondition, o.Width, o.Height)
	}
	return nil
}

// Run sweeps rules From..To on a bounded pool of workers. Every rule gets an
// independent automaton, so no state is shared between goroutines. Results
// are ordered by rule.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Log
	}

	results := make([]Result, opts.To-opts.From+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	start := time.Now()
	for rule := opts.From; rule <= opts.To; rule++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := runRule(uint8(rule), opts, logger)
			if err != nil {
				return fmt.Errorf("rule %d: %w", rule, err)
			}
			results[rule-opts.From] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.WithFields(log.Fields{
		"rules":   len(results),
		"workers": workers,
		"elapsed": time.Since(start).String(),
	}).Info("sweep finished")
	return results, nil
}

func runRule(rule uint8, opts Options, logger log.Interface) (Result, error) {
	a, err := automat.New(automat.Config[uint8]{
		Kind:   core.OneDimensional,
		Width:  opts.Width,
		Height: opts.Height,
		Fill:   []uint8{1},
		Edge:   opts.Edge,
	}, automat.WithLogger(logger), automat.WithSeed(opts.Seed))
	if err != nil {
		return Result{}, err
	}
	if err := a.SetRulesetDecimal(uint64(rule)); err != nil {
		return Result{}, err
	}
	if opts.Random {
		err = a.Randomize()
	} else {
		err = a.Paint(opts.Width/2, 0)
	}
	if err != nil {
		return Result{}, err
	}
	for !a.Terminal() {
		a.Step()
	}
	return summarise(rule, a.Cells(), opts.Width), nil
}

func summarise(rule uint8, cells []uint8, w int) Result {
	res := Result{Rule: rule, RepeatsAt: -1}
	h := len(cells) / w
	seen := make(map[string]bool, h)
	for y := 0; y < h; y++ {
		row := cells[y*w : (y+1)*w]
		live := len(row) - bytes.Count(row, []byte{0})
		res.Live += live
		if y == h-1 {
			res.FinalLive = live
		}
		key := string(row)
		if res.RepeatsAt < 0 && seen[key] {
			res.RepeatsAt = y
		}
		seen[key] = true
	}
	res.Extinct = res.FinalLive == 0
	return res
}

// Top returns the n results with the most live cells, ties broken by rule.
func Top(results []Result, n int) []Result {
	sorted := append([]Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Live != sorted[j].Live {
			return sorted[i].Live > sorted[j].Live
		}
		return sorted[i].Rule < sorted[j].Rule
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Summary is the digest of a sweep: the rows to show and how many rules
// died out by the last row.
type Summary struct {
	Rules   int
	Extinct int
	Shown   []Result
}

// Summarize keeps the top n results by live cells, or every result in rule
// order when n is negative.
func Summarize(results []Result, n int) Summary {
	s := Summary{Rules: len(results), Shown: results}
	if n >= 0 {
		s.Shown = Top(results, n)
	}
	for _, r := range results {
		if r.Extinct {
			s.Extinct++
		}
	}
	return s
}

// Write prints one line per shown result and a closing tally.
func (s Summary) Write(w io.Writer) error {
	for _, r := range s.Shown {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d rules swept, %d extinct by the last row\n", s.Rules, s.Extinct)
	return err
}
