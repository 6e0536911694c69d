package builder

import (
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// ContextGraph is the surface ContextInjector needs: bare Add, no
// location bookkeeping, since context wrapping is a structural rewrite
// rather than a user-authored statement.
type ContextGraph interface {
	Add(enode lang.Node) unionfind.Id
}

// ContextInjector wraps an existing id in a WithContext node carrying
// one of the built-in context markers, for tests and callers steering
// the context-directed rewrite rules (layout transformation) without
// constructing WithContext by hand.
type ContextInjector struct{}

// InjectGpu wraps id as WithContext(GpuContext, id).
func (ContextInjector) InjectGpu(g ContextGraph, id unionfind.Id) unionfind.Id {
	ctx := g.Add(lang.NewGpuContext())
	return g.Add(lang.NewWithContext(ctx, id))
}

// InjectCpu wraps id as WithContext(CpuContext, id).
func (ContextInjector) InjectCpu(g ContextGraph, id unionfind.Id) unionfind.Id {
	ctx := g.Add(lang.NewCpuContext())
	return g.Add(lang.NewWithContext(ctx, id))
}

// InjectAsync wraps id as WithContext(AsyncContext, id).
func (ContextInjector) InjectAsync(g ContextGraph, id unionfind.Id) unionfind.Id {
	ctx := g.Add(lang.NewAsyncContext())
	return g.Add(lang.NewWithContext(ctx, id))
}

// InjectSpatial wraps id as WithContext(SpatialContext, id).
func (ContextInjector) InjectSpatial(g ContextGraph, id unionfind.Id) unionfind.Id {
	ctx := g.Add(lang.NewSpatialContext())
	return g.Add(lang.NewWithContext(ctx, id))
}

// InjectContext wraps id in WithContext(context, id) for an arbitrary
// context node, for cases InjectGpu/InjectCpu/InjectAsync/InjectSpatial
// don't name directly (e.g. ComptimeContext, SafeContext).
func (ContextInjector) InjectContext(g ContextGraph, id unionfind.Id, context lang.Node) unionfind.Id {
	ctx := g.Add(context)
	return g.Add(lang.NewWithContext(ctx, id))
}
