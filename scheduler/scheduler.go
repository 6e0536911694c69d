package scheduler

import (
	"time"

	"github.com/uir-sat/uirsat/egraph"
	"github.com/uir-sat/uirsat/rules"
)

// EGraph is the surface Saturate needs: enough for rules to read and
// write the graph (rules.EGraph[D]), plus Rebuild to restore
// congruence and Stats to detect a fixpoint between passes.
type EGraph[D any] interface {
	rules.EGraph[D]
	Rebuild()
	Stats() egraph.Stats
}

// EventKind tags what a Scheduler's Trace hook is being told about.
type EventKind int

const (
	RuleApplied EventKind = iota
	FixpointReached
	TimeoutReached
	FuelExhausted
)

func (k EventKind) String() string {
	switch k {
	case RuleApplied:
		return "RuleApplied"
	case FixpointReached:
		return "FixpointReached"
	case TimeoutReached:
		return "TimeoutReached"
	case FuelExhausted:
		return "FuelExhausted"
	default:
		return "EventKind(invalid)"
	}
}

// Event is one notification delivered to a Scheduler's Trace hook
// during a Saturate run. Rule is only set on RuleApplied.
type Event struct {
	Iteration int
	Rule      string
	Kind      EventKind
}

const (
	// DefaultFuel bounds the number of apply-rebuild passes a run will
	// make before giving up even if it never reaches a fixpoint.
	DefaultFuel = 10
	// DefaultTimeout bounds a run's wall-clock time regardless of fuel
	// remaining, so a pathological rule set can't hang a caller.
	DefaultTimeout = 5 * time.Second
)

// Scheduler holds one run's fuel, timeout, and optional Trace hook.
// Zero value is not ready to use; construct via options passed to
// Saturate, which fills in DefaultFuel/DefaultTimeout first.
type Scheduler struct {
	Fuel    int
	Timeout time.Duration
	Trace   func(Event)
}

// SchedulerOption configures a Scheduler at Saturate call time.
type SchedulerOption func(*Scheduler)

// WithFuel overrides the maximum number of apply-rebuild passes.
func WithFuel(fuel int) SchedulerOption {
	return func(s *Scheduler) { s.Fuel = fuel }
}

// WithTimeout overrides the wall-clock budget for a run.
func WithTimeout(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.Timeout = d }
}

// WithTrace sets the hook Saturate calls on every rule application and
// on whichever of FixpointReached/TimeoutReached/FuelExhausted ends
// the run, matching how egraph.Stats() exposes a queryable snapshot
// rather than writing to a logger.
func WithTrace(fn func(Event)) SchedulerOption {
	return func(s *Scheduler) { s.Trace = fn }
}

func (s *Scheduler) trace(e Event) {
	if s.Trace != nil {
		s.Trace(e)
	}
}

// Saturate applies every rule in registry, in registration order, then
// rebuilds congruence, repeating until a pass changes neither the
// class count nor the memo size (a fixpoint), or until fuel or timeout
// runs out first.
//
// Complexity: each pass is O(sum of each rule's Apply cost) plus one
// Rebuild; at most Fuel passes run.
func Saturate[D any](g EGraph[D], registry *rules.Registry[D], opts ...SchedulerOption) {
	s := &Scheduler{Fuel: DefaultFuel, Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}

	start := time.Now()
	for i := 0; i < s.Fuel; i++ {
		if time.Since(start) > s.Timeout {
			s.trace(Event{Iteration: i, Kind: TimeoutReached})
			return
		}

		before := g.Stats()

		for _, rule := range registry.All() {
			rule.Apply(g)
			s.trace(Event{Iteration: i, Rule: rule.Name(), Kind: RuleApplied})
		}

		g.Rebuild()

		after := g.Stats()
		if after.MemoSize == before.MemoSize && after.Classes == before.Classes {
			s.trace(Event{Iteration: i, Kind: FixpointReached})
			return
		}
	}

	s.trace(Event{Iteration: s.Fuel, Kind: FuelExhausted})
}
