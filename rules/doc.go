// Package rules implements the rewrite-rule framework and the concrete
// rule set: a Rule reads the current e-graph state, collects a buffer
// of matches, and only then writes (Add/Union) them back — never
// mutating the graph while iterating its classes, since an e-graph's
// classes/memo can change shape mid-iteration once a rule calls Add or
// Union.
package rules
