package analysis

import "github.com/uir-sat/uirsat/lang"

// DebugData collects the distinct source locations that have ever
// contributed a node to a class, in first-seen order.
type DebugData struct {
	Locs []Loc
}

// HasDebugInfo lets a caller fetch location provenance from any
// analysis datum, including () / unit-like analyses that carry none.
type HasDebugInfo interface {
	GetLocs() []Loc
}

func (d DebugData) GetLocs() []Loc { return d.Locs }

func (d *DebugData) addLoc(loc Loc) bool {
	for _, existing := range d.Locs {
		if existing == loc {
			return false
		}
	}
	d.Locs = append(d.Locs, loc)
	return true
}

// DebugAnalysis attaches no structural information of its own; it
// exists purely to accumulate OnAdd's location hints as nodes are
// added under AddWithLoc.
type DebugAnalysis struct{}

func (DebugAnalysis) Make(ClassData[DebugData], lang.Node) DebugData {
	return DebugData{}
}

func (DebugAnalysis) Merge(to *DebugData, from DebugData) bool {
	changed := false
	for _, loc := range from.Locs {
		if to.addLoc(loc) {
			changed = true
		}
	}
	return changed
}

func (DebugAnalysis) OnAdd(data *DebugData, loc Loc) {
	data.addLoc(loc)
}

func (DebugAnalysis) IsCompatible(DebugData, DebugData) bool { return true }
