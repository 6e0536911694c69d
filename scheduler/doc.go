// Package scheduler runs rules to a fixpoint: apply every registered
// rule in registration order, rebuild congruence, and stop either when
// a pass adds no new class or node or when fuel/timeout runs out.
package scheduler
