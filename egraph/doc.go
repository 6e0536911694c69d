// Package egraph implements the e-graph: a union-find of e-classes, each
// holding a set of structurally-congruent e-nodes plus one analysis
// datum, with hash-consing so that adding the same canonical node twice
// is a no-op.
//
// Graph is generic over the analysis data type D and the analysis
// implementation A (analysis.Analysis[D]); see package analysis for the
// Make/Merge/OnAdd/IsCompatible contract a caller's analysis type must
// satisfy.
//
// Concurrency: Graph guards classes, memo, and dirty behind a single
// sync.RWMutex. Union and Rebuild touch all three maps together as one
// unit of work, so splitting the lock would only add complexity without
// reducing contention on the operations that matter.
package egraph
