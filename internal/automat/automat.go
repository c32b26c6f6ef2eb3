// Package automat drives a cellular automaton one generation at a time.
//
// An Automaton owns its buffers, topology, rule and ruleset. It performs no
// concurrency of its own: a single external tick loop is expected to call
// Step, and the slice returned by Cells stays valid until the next Step,
// Restart or Reconfigure.
package automat

import (
	"fmt"

	"github.com/apex/log"

	"cellcore/internal/core"
	"cellcore/internal/rules"
	"cellcore/internal/ruleset"
	"cellcore/internal/topology"
)

// Config describes the shape and value domain of an automaton.
type Config[T comparable] struct {
	Kind   core.Kind
	Width  int
	Height int
	// Zero is the empty/dead value.
	Zero T
	// Fill lists the occupied values; Fill[0] is the default fill.
	Fill []T
	Edge topology.Edge
	// Cells optionally seeds the grid and the restart snapshot.
	Cells []T
}

// Validate checks the configuration without allocating anything.
func (c Config[T]) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: unknown automaton kind %v", core.ErrPrecondition, c.Kind)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", core.ErrPrecondition, c.Width, c.Height)
	}
	if len(c.Fill) == 0 {
		return fmt.Errorf("%w: at least one fill value is required", core.ErrPrecondition)
	}
	if c.Cells != nil && len(c.Cells) != c.Width*c.Height {
		return fmt.Errorf("%w: expected %d cells, got %d", core.ErrPrecondition, c.Width*c.Height, len(c.Cells))
	}
	return nil
}

// Option customises an Automaton at construction time.
type Option func(*options)

type options struct {
	logger log.Interface
	seed   int64
}

// WithLogger routes the automaton's debug logging to l.
func WithLogger(l log.Interface) Option {
	return func(o *options) { o.logger = l }
}

// WithSeed seeds the random source used by Randomize and stochastic rules.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// Automaton is the simulation controller. The zero value is unconfigured:
// Step is a no-op and mutators, the ruleset setters included, report
// core.ErrPrecondition until Reconfigure succeeds.
type Automaton[T comparable] struct {
	kind  core.Kind
	zero  T
	fill  []T
	topo  *topology.Topology
	buf   *core.Buffers[T]
	rule  rules.Rule[T]
	rs    ruleset.Ruleset
	gen   int
	steps int
	rng   *core.RNG
	log   log.Interface
	env   rules.Env[T]
}

// New configures an automaton. 1-D automata start with the elementary rule
// and an empty ruleset; 2-D automata start with the Game of Life rule.
func New[T comparable](cfg Config[T], opts ...Option) (*Automaton[T], error) {
	o := options{logger: log.Log, seed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	a := &Automaton[T]{rng: core.NewRNG(o.seed), log: o.logger}
	if err := a.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// Reconfigure tears down the current buffers and rebuilds topology, buffers
// and the default rule for cfg. Generation resets to 0 and the ruleset is
// kept. On error the automaton is left exactly as it was.
func (a *Automaton[T]) Reconfigure(cfg Config[T]) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	topo, err := topology.New(cfg.Kind, cfg.Width, cfg.Height, cfg.Edge)
	if err != nil {
		return err
	}
	buf, err := core.NewBuffers(cfg.Width, cfg.Height, cfg.Zero)
	if err != nil {
		return err
	}
	if cfg.Cells != nil {
		if err := buf.SetCells(cfg.Cells); err != nil {
			return err
		}
	}
	rule, err := defaultRule[T](cfg.Kind)
	if err != nil {
		return err
	}

	a.kind = cfg.Kind
	a.zero = cfg.Zero
	a.fill = append([]T(nil), cfg.Fill...)
	a.topo = topo
	a.buf = buf
	a.rule = rule
	a.gen = 0
	a.steps = 0
	if a.rng == nil {
		a.rng = core.NewRNG(1)
	}
	a.resetRule()
	a.logger().WithFields(log.Fields{
		"kind":   cfg.Kind.String(),
		"width":  cfg.Width,
		"height": cfg.Height,
		"edge":   cfg.Edge.String(),
		"fills":  len(cfg.Fill),
		"rule":   rule.Kind().String(),
	}).Debug("automaton configured")
	return nil
}

func defaultRule[T comparable](kind core.Kind) (rules.Rule[T], error) {
	if kind == core.OneDimensional {
		return rules.New[T](rules.KindElementary)
	}
	return rules.New[T](rules.KindLife)
}

// Configured reports whether buffers have been allocated.
func (a *Automaton[T]) Configured() bool { return a.buf != nil }

func (a *Automaton[T]) logger() log.Interface {
	if a.log == nil {
		return log.Log
	}
	return a.log
}

func (a *Automaton[T]) requireConfigured(op string) error {
	if a.buf == nil {
		return fmt.Errorf("%w: %s on an unconfigured automaton", core.ErrPrecondition, op)
	}
	return nil
}

// Kind returns the automaton kind.
func (a *Automaton[T]) Kind() core.Kind { return a.kind }

// Size returns the grid dimensions.
func (a *Automaton[T]) Size() core.Size {
	if a.buf == nil {
		return core.Size{}
	}
	return a.buf.Size()
}

// Edge returns the boundary policy.
func (a *Automaton[T]) Edge() topology.Edge {
	if a.topo == nil {
		return topology.Bounded
	}
	return a.topo.Edge()
}

// Topology returns the neighborhood description.
func (a *Automaton[T]) Topology() *topology.Topology { return a.topo }

// Generation returns the row the next 1-D step reads from. It is always in
// [0, height) and stays 0 for 2-D automata.
func (a *Automaton[T]) Generation() int { return a.gen }

// Steps returns the number of effective steps since the grid was last
// configured, restarted or replaced.
func (a *Automaton[T]) Steps() int { return a.steps }

// Zero returns the empty value.
func (a *Automaton[T]) Zero() T { return a.zero }

// Fill returns a copy of the fill values.
func (a *Automaton[T]) Fill() []T { return append([]T(nil), a.fill...) }

// DefaultFill returns the fill value used for births and drawing.
func (a *Automaton[T]) DefaultFill() T {
	if len(a.fill) == 0 {
		var zero T
		return zero
	}
	return a.fill[0]
}

// Cells exposes the current buffer for reading. Callers must not write to
// it; use SetCell or SetCells instead.
func (a *Automaton[T]) Cells() []T {
	if a.buf == nil {
		return nil
	}
	return a.buf.Current()
}

// Initial returns a copy of the restart snapshot.
func (a *Automaton[T]) Initial() []T {
	if a.buf == nil {
		return nil
	}
	return append([]T(nil), a.buf.Initial()...)
}

// Terminal reports whether a 1-D automaton has filled its last row.
func (a *Automaton[T]) Terminal() bool {
	return a.buf != nil && a.kind == core.OneDimensional && a.gen >= a.buf.Size().H-1
}

// Step advances one generation. 2-D automata run the rule into the scratch
// buffer, swap it in and clear the old buffer. 1-D automata derive the next
// row in place; once the last row is filled Step does nothing until Restart.
func (a *Automaton[T]) Step() {
	if a.buf == nil || a.rule == nil {
		return
	}
	if a.kind == core.OneDimensional {
		if a.Terminal() {
			return
		}
		a.rule.Apply(a.envFor())
		a.gen++
		a.steps++
		return
	}
	a.rule.Apply(a.envFor())
	a.buf.Swap()
	a.buf.ClearScratch()
	a.steps++
}

func (a *Automaton[T]) envFor() *rules.Env[T] {
	a.env = rules.Env[T]{
		Cur:        a.buf.Current(),
		Next:       a.buf.Scratch(),
		Topo:       a.topo,
		Zero:       a.zero,
		Fill:       a.fill,
		Generation: a.gen,
		Ruleset:    a.rs,
		RNG:        a.rng,
	}
	return &a.env
}

func (a *Automaton[T]) resetRule() {
	if r, ok := a.rule.(rules.Resetter); ok && a.buf != nil {
		r.Reset(a.buf.Len())
	}
}

// Restart restores the snapshot captured by the last configure, Randomize
// or SetCells call and resets the generation counter.
func (a *Automaton[T]) Restart() {
	if a.buf == nil {
		return
	}
	a.buf.RestoreInitial()
	a.buf.ClearScratch()
	a.gen = 0
	a.steps = 0
	a.resetRule()
	a.logger().Debug("automaton restarted")
}

// Clear empties the current grid. The restart snapshot and the generation
// counter are kept.
func (a *Automaton[T]) Clear() error {
	if err := a.requireConfigured("clear"); err != nil {
		return err
	}
	a.buf.Clear()
	a.resetRule()
	return nil
}

// Randomize fills each addressable cell with a random fill value with
// probability one half. Only the first row is addressable for 1-D automata.
// The result becomes the restart snapshot.
func (a *Automaton[T]) Randomize() error {
	if err := a.requireConfigured("randomize"); err != nil {
		return err
	}
	limit := a.buf.Len()
	if a.kind == core.OneDimensional {
		limit = a.buf.Size().W
	}
	if err := a.buf.Randomize(a.rng, a.fill, limit); err != nil {
		return err
	}
	a.gen = 0
	a.steps = 0
	a.resetRule()
	return nil
}

// Reseed restarts the random source.
func (a *Automaton[T]) Reseed(seed int64) {
	if a.rng == nil {
		a.rng = core.NewRNG(seed)
		return
	}
	a.rng.Seed(seed)
}

// RNG exposes the random source shared by Randomize and stochastic rules.
// Seeders draw from it so that a Reseed reproduces the same board.
func (a *Automaton[T]) RNG() *core.RNG {
	if a.rng == nil {
		a.rng = core.NewRNG(1)
	}
	return a.rng
}

// SetCells replaces the current grid and the restart snapshot.
func (a *Automaton[T]) SetCells(values []T) error {
	if err := a.requireConfigured("set cells"); err != nil {
		return err
	}
	if err := a.buf.SetCells(values); err != nil {
		return err
	}
	a.gen = 0
	a.steps = 0
	a.resetRule()
	return nil
}

// SetCell writes a single cell of the current grid and drops any state the
// rule keeps for that cell.
func (a *Automaton[T]) SetCell(x, y int, v T) error {
	if err := a.requireConfigured("set cell"); err != nil {
		return err
	}
	g := a.buf.Grid()
	if !g.Contains(x, y) {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", core.ErrPrecondition, x, y, g.W, g.H)
	}
	idx := g.Index(x, y)
	g.Cells()[idx] = v
	if r, ok := a.rule.(rules.CellResetter); ok {
		r.ResetCell(idx)
	}
	return nil
}

// Paint sets a single cell to the default fill value.
func (a *Automaton[T]) Paint(x, y int) error {
	return a.SetCell(x, y, a.DefaultFill())
}

// Rule returns the active rule.
func (a *Automaton[T]) Rule() rules.Rule[T] { return a.rule }

// SetRule selects r. Its dimensionality must match the automaton kind.
func (a *Automaton[T]) SetRule(r rules.Rule[T]) error {
	if err := a.requireConfigured("set rule"); err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%w: nil rule", core.ErrPrecondition)
	}
	if r.Dims() != a.kind {
		return fmt.Errorf("%w: %v rule cannot drive a %v automaton", core.ErrPrecondition, r.Kind(), a.kind)
	}
	a.rule = r
	a.resetRule()
	a.logger().WithField("rule", r.Kind().String()).Debug("rule selected")
	return nil
}

// UseRule selects the built-in rule of kind k.
func (a *Automaton[T]) UseRule(k rules.Kind) error {
	r, err := rules.New[T](k)
	if err != nil {
		return err
	}
	return a.SetRule(r)
}

// UseLife selects the Game of Life rule.
func (a *Automaton[T]) UseLife() error { return a.UseRule(rules.KindLife) }

// UseSand selects the granular fall rule.
func (a *Automaton[T]) UseSand() error { return a.UseRule(rules.KindSand) }

// Ruleset returns the elementary ruleset.
func (a *Automaton[T]) Ruleset() ruleset.Ruleset { return a.rs }

// SetRulesetDecimal stores v as the ruleset.
func (a *Automaton[T]) SetRulesetDecimal(v uint64) error {
	if err := a.requireConfigured("set ruleset"); err != nil {
		return err
	}
	a.rs = ruleset.FromDecimal(v)
	a.logger().WithField("ruleset", a.rs.String()).Debug("decimal ruleset set")
	return nil
}

// SetRulesetBits decodes an MSB-first bit string into the ruleset. Malformed
// strings are rejected and the previous ruleset is kept.
func (a *Automaton[T]) SetRulesetBits(s string) error {
	if err := a.requireConfigured("set ruleset"); err != nil {
		return err
	}
	rs, err := ruleset.Parse(s)
	if err != nil {
		return err
	}
	a.rs = rs
	a.logger().WithFields(log.Fields{"bits": s, "ruleset": rs.String()}).Debug("bit string ruleset set")
	return nil
}

// FlipRulesetBit toggles the outcome of pattern i.
func (a *Automaton[T]) FlipRulesetBit(i int) error {
	if err := a.requireConfigured("flip ruleset bit"); err != nil {
		return err
	}
	if i < 0 || i >= ruleset.Width {
		return fmt.Errorf("%w: ruleset bit %d outside [0,%d)", core.ErrPrecondition, i, ruleset.Width)
	}
	a.rs = a.rs.Flip(i)
	return nil
}

// Clone returns an independent copy including buffers, generation, rule
// selection and ruleset. Stateful rules are reset in the copy.
func (a *Automaton[T]) Clone() *Automaton[T] {
	c := &Automaton[T]{
		kind:  a.kind,
		zero:  a.zero,
		fill:  append([]T(nil), a.fill...),
		topo:  a.topo,
		rs:    a.rs,
		gen:   a.gen,
		steps: a.steps,
		rng:   core.NewRNG(1),
		log:   a.log,
	}
	if a.buf != nil {
		c.buf = a.buf.Clone()
	}
	if a.rule != nil {
		c.rule = a.rule
		if _, ok := a.rule.(rules.Resetter); ok {
			if fresh, err := rules.New[T](a.rule.Kind()); err == nil {
				c.rule = fresh
			}
		}
	}
	c.resetRule()
	return c
}

// String summarises the automaton for logs and debugging.
func (a *Automaton[T]) String() string {
	if a.buf == nil {
		return "automaton(unconfigured)"
	}
	s := a.buf.Size()
	rule := "none"
	if a.rule != nil {
		rule = a.rule.Kind().String()
	}
	return fmt.Sprintf("automaton(kind=%v size=%dx%d edge=%v rule=%s ruleset=%v generation=%d steps=%d fills=%d neighbors=%d)",
		a.kind, s.W, s.H, a.Edge(), rule, a.rs, a.gen, a.steps, len(a.fill), a.topo.Len())
}
