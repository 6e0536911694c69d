// Package analysis defines the abstract-interpretation contract an
// e-graph analysis must satisfy (Make/Merge/OnAdd/IsCompatible), plus
// three concrete analyses: ConstraintAnalysis (effect/ownership/type
// lattice), LayoutAnalysis (concretization/backend lattice), and
// DebugAnalysis (source-location provenance) — and Product, which runs
// all three as one analysis so a
// single e-graph instance can be gated on all of them at once.
package analysis
