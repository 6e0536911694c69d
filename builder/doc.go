// Package builder provides Intent: a thin, fluent wrapper over an
// *egraph.Graph that turns the e-node constructors in package lang
// into readable calls (b.AddOp(b.Constant(7), x)) instead of
// hand-assembling lang.Node values and threading ids through Add
// calls by hand.
//
// It also provides the ContextInjector family: one-line helpers that
// wrap an existing id in WithContext(GpuContext|CpuContext|
// AsyncContext|SpatialContext, id), for tests and callers that want to
// steer the context-directed rewrite rules (rules.LayoutTransformation,
// which reads SpatialContext/GpuContext) without building the
// WithContext node by hand each time.
package builder
