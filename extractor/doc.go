// Package extractor implements bottom-up cost-based extraction: given
// a saturated e-graph, pick the cheapest e-node in each class
// (recursively, by a cheapest-children-first fixpoint) and materialize
// the result as a Tree.
package extractor
