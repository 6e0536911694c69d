// Package lang defines L, the closed-world e-node language for the UIR
// optimizer: one Node type tagged by Op, covering data atoms
// (constants, symbols), structural intents (Map, Filter, Reduce,
// Choice, ...), context/constraint wrappers, the concretization layer
// (SoALayout, Tiled, Vectorized, ...), and the function/closure and
// cross-language extension points.
//
// Node is intentionally a single struct rather than forty implementing
// types: every variant needs the same two operations (Children,
// MapChildren) and the same hash-consing contract (a canonical,
// orderable, comparable-by-value identity), and a closed switch over an
// Op tag reads the same either way. Construct nodes through the typed
// constructors (NewMap, NewConstant, ...), never by assembling a Node
// literal by hand — the constructors are the only place that know which
// fields a given Op actually uses.
package lang
