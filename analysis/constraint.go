package analysis

import (
	"github.com/uir-sat/uirsat/lang"
)

// ConstraintSet is the per-class datum ConstraintAnalysis computes: the
// effect lattice point the class's nodes can produce, plus at most one
// ownership/type annotation and an atomicity flag. nil fields mean
// "unconstrained", not "conflicting".
type ConstraintSet struct {
	Effect    lang.Effect
	Ownership *lang.Ownership
	IsAtomic  bool
	Type      *string
}

// Merge folds other into s in place, returning whether s changed.
// Ownership and Type are first-writer-wins: once s has one, a
// differing value from other is a conflict IsCompatible will catch
// before Merge is ever called on it, not something Merge silently
// overwrites.
func (s *ConstraintSet) Merge(other ConstraintSet) bool {
	changed := false

	joined := s.Effect.Join(other.Effect)
	if joined != s.Effect {
		s.Effect = joined
		changed = true
	}

	if other.Ownership != nil && s.Ownership == nil {
		s.Ownership = other.Ownership
		changed = true
	}

	if other.IsAtomic && !s.IsAtomic {
		s.IsAtomic = true
		changed = true
	}

	if other.Type != nil && s.Type == nil {
		s.Type = other.Type
		changed = true
	}

	return changed
}

// CheckConflict reports the first irreconcilable difference between s
// and other (distinct ownerships, or distinct types), if any.
func (s ConstraintSet) CheckConflict(other ConstraintSet) string {
	if s.Ownership != nil && other.Ownership != nil && *s.Ownership != *other.Ownership {
		return "ownership conflict: " + s.Ownership.String() + " vs " + other.Ownership.String()
	}
	if s.Type != nil && other.Type != nil && *s.Type != *other.Type {
		return "type conflict: " + *s.Type + " vs " + *other.Type
	}
	return ""
}

// CanMerge reports whether s and other have no irreconcilable conflict.
func (s ConstraintSet) CanMerge(other ConstraintSet) bool {
	return s.CheckConflict(other) == ""
}

// ConstraintAnalysis propagates the effect/ownership/type/atomicity
// lattice bottom-up over the e-graph: most nodes inherit the join of
// their children's constraints, with explicit constraint atoms
// (EffectConstraint, OwnershipConstraint, ...) seeding the lattice and
// a handful of nodes (StateUpdate, CrossLangCall, resource ops)
// escalating the effect themselves.
type ConstraintAnalysis struct{}

func (ConstraintAnalysis) Make(g ClassData[ConstraintSet], n lang.Node) ConstraintSet {
	var set ConstraintSet

	switch n.Op {
	case lang.EffectConstraint:
		set.Effect = n.Eff

	case lang.OwnershipConstraint:
		own := n.Own
		set.Ownership = &own

	case lang.TypeConstraint:
		t := n.Str
		set.Type = &t

	case lang.AtomicConstraint:
		set.IsAtomic = true

	case lang.WithConstraint:
		for _, kid := range n.Kids {
			set.Merge(g.Data(kid))
		}

	case lang.Map, lang.Filter:
		for _, kid := range n.Kids {
			set.Merge(g.Data(kid))
		}

	case lang.Seq:
		for _, kid := range n.Kids {
			set.Merge(g.Data(kid))
		}

	case lang.StateUpdate:
		for _, kid := range n.Kids {
			set.Merge(g.Data(kid))
		}
		set.Effect = set.Effect.Join(lang.WriteOnly)

	case lang.ResourceClone, lang.ResourceDrop:
		for _, kid := range n.Kids {
			set.Merge(g.Data(kid))
		}
		set.Effect = set.Effect.Join(lang.ReadWrite)

	case lang.CrossLangCall:
		for _, kid := range n.Kids {
			set.Merge(g.Data(kid))
		}
		set.Effect = set.Effect.Join(lang.ReadWrite)

	case lang.Apply:
		for _, kid := range n.Kids {
			set.Merge(g.Data(kid))
		}

	case lang.Lambda, lang.Closure:
		set.Effect = lang.Pure

	case lang.Constant, lang.FloatConstant, lang.BooleanConstant, lang.StringConstant, lang.Symbol:
		set.Effect = lang.Pure

	default:
		for _, kid := range n.Children() {
			set.Merge(g.Data(kid))
		}
	}

	return set
}

func (ConstraintAnalysis) Merge(to *ConstraintSet, from ConstraintSet) bool {
	return to.Merge(from)
}

func (ConstraintAnalysis) OnAdd(*ConstraintSet, Loc) {}

func (ConstraintAnalysis) IsCompatible(a, b ConstraintSet) bool {
	return a.CanMerge(b)
}
